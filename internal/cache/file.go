package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
)

const cacheDirName = "gns3-inventory"

// FileCache keeps one JSON payload per key under the user cache
// directory. Freshness is judged by file mtime against the TTL.
type FileCache struct {
	dir   string
	ttl   time.Duration
	clock clockwork.Clock
}

// NewFileCache creates a file-backed cache. An empty dir falls back to
// os.UserCacheDir, then the system temp dir. A zero ttl never expires.
func NewFileCache(dir string, ttl time.Duration, clock clockwork.Clock) *FileCache {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil || base == "" {
			base = os.TempDir()
		}
		dir = filepath.Join(base, cacheDirName)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FileCache{dir: dir, ttl: ttl, clock: clock}
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if c.ttl > 0 && c.clock.Since(info.ModTime()) > c.ttl {
		return nil, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *FileCache) Set(_ context.Context, key string, payload []byte) error {
	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf("nodes-%s.json", hashKey(key)))
}
