// Package config loads and validates the YAML inventory source file.
// All options are resolved once at startup into an immutable Config
// that the rest of the pipeline receives explicitly.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "GNS3_INVENTORY"

const (
	NamingName   = "name"
	NamingNodeID = "node_id"

	BackendFile   = "file"
	BackendValkey = "valkey"

	DefaultGroup = "gns3"
)

type Config struct {
	Plugin          string `mapstructure:"plugin"`
	URL             string `mapstructure:"url"`
	ProjectID       string `mapstructure:"project_id"`
	ProjectName     string `mapstructure:"project_name"`
	ValidateCerts   bool   `mapstructure:"validate_certs"`
	Group           string `mapstructure:"group"`
	HostNaming      string `mapstructure:"host_naming"`
	PortOffset      int    `mapstructure:"port_offset"`
	GroupByNodeType bool   `mapstructure:"group_by_node_type"`
	Strict          bool   `mapstructure:"strict"`

	Cache       CacheConfig       `mapstructure:"cache"`
	Compose     map[string]string `mapstructure:"compose"`
	Groups      map[string]string `mapstructure:"groups"`
	KeyedGroups []KeyedGroup      `mapstructure:"keyed_groups"`

	// Derived once at load time, never read from the file.
	ControllerHost string `mapstructure:"-"`
	CacheKey       string `mapstructure:"-"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	Dir      string        `mapstructure:"dir"`
	URL      string        `mapstructure:"url"`
	Password string        `mapstructure:"password"`
}

type KeyedGroup struct {
	Key          string `mapstructure:"key"`
	Prefix       string `mapstructure:"prefix"`
	Separator    string `mapstructure:"separator"`
	DefaultValue string `mapstructure:"default_value"`
}

// Load reads the inventory source file given as parameter.
func Load(confFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(confFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read inventory source %s: %w", confFile, err)
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory source %s: %w", confFile, err)
	}

	if err := conf.normalize(confFile); err != nil {
		return nil, err
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("validate_certs", true)
	v.SetDefault("group", DefaultGroup)
	v.SetDefault("host_naming", NamingName)
	v.SetDefault("port_offset", 0)
	v.SetDefault("group_by_node_type", true)
	v.SetDefault("strict", false)
	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.ttl", time.Hour)
}

func (c *Config) normalize(confFile string) error {
	if c.Plugin != "" && c.Plugin != "gns3" && !strings.HasSuffix(c.Plugin, ".gns3") {
		return fmt.Errorf("inventory source declares plugin %q, expected gns3", c.Plugin)
	}

	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	c.URL = strings.TrimRight(c.URL, "/")
	c.ControllerHost = controllerHost(c.URL)

	if c.HostNaming != NamingName && c.HostNaming != NamingNodeID {
		return fmt.Errorf("invalid host_naming %q: must be %q or %q", c.HostNaming, NamingName, NamingNodeID)
	}

	if c.Group == "" {
		c.Group = DefaultGroup
	}

	switch c.Cache.Backend {
	case BackendFile, BackendValkey:
	default:
		return fmt.Errorf("invalid cache backend %q: must be %q or %q", c.Cache.Backend, BackendFile, BackendValkey)
	}
	if c.Cache.Enabled && c.Cache.Backend == BackendValkey && c.Cache.URL == "" {
		return fmt.Errorf("cache.url is required for the valkey backend")
	}

	// The cache key spans runs against the same inventory source.
	abs, err := filepath.Abs(confFile)
	if err != nil {
		abs = confFile
	}
	c.CacheKey = abs

	return nil
}

// controllerHost extracts the hostname the controller is reachable at,
// used as a fallback when nodes report a wildcard console address.
func controllerHost(base string) string {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Hostname() == "" {
		return base
	}
	return parsed.Hostname()
}
