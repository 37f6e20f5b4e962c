package inventory

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/canardconfit/gns3-inventory/internal/cache"
	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/constructed"
)

// TypeGroupPrefix names the per-node-type groups.
const TypeGroupPrefix = "gns3_type_"

// Builder runs the whole pipeline: fetch (or reuse) the node list, map
// each node to a host, assign groups, then apply constructed rules.
type Builder struct {
	Config *config.Config
	API    ControllerAPI
	Cache  cache.Cache
	Log    logr.Logger
}

func (b *Builder) Build(ctx context.Context) (*Inventory, error) {
	cfg := b.Config

	fetcher := &Fetcher{
		API:      b.API,
		Cache:    b.Cache,
		UseCache: cfg.Cache.Enabled,
		CacheKey: cfg.CacheKey,
		Log:      b.Log,
	}
	src, err := fetcher.Fetch(ctx, cfg.ProjectID, cfg.ProjectName)
	if err != nil {
		return nil, err
	}

	hook := constructed.New(constructed.Rules{
		Compose:     cfg.Compose,
		Groups:      cfg.Groups,
		KeyedGroups: cfg.KeyedGroups,
		Strict:      cfg.Strict,
	})

	inv := New()
	inv.AddGroup(cfg.Group)

	mapper := &Mapper{
		Naming:         cfg.HostNaming,
		PortOffset:     cfg.PortOffset,
		ControllerHost: cfg.ControllerHost,
		ProjectID:      src.ProjectID,
	}

	used := map[string]struct{}{}
	for _, node := range src.Nodes {
		host, vars, ok := mapper.Map(node, used)
		if !ok {
			b.Log.V(1).Info("skipping node without name or id", "node_type", node.Type)
			continue
		}

		inv.AddHost(host, cfg.Group)
		for key, value := range vars {
			inv.SetVariable(host, key, value)
		}

		if cfg.GroupByNodeType && node.Type != "" {
			inv.AddChild(TypeGroupPrefix+node.Type, host)
		}

		if err := hook.Apply(inv, host); err != nil {
			return nil, err
		}
	}

	return inv, nil
}
