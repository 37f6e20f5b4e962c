package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/canardconfit/gns3-inventory/internal/cache"
	"github.com/canardconfit/gns3-inventory/internal/gns3"
)

// ControllerAPI is the remote surface the fetcher needs: two calls,
// both blocking, neither retried.
type ControllerAPI interface {
	ListProjects(ctx context.Context) ([]gns3.Project, error)
	ListNodes(ctx context.Context, projectID string) ([]gns3.Node, error)
}

// Source is the fetched payload a run maps into hosts. It is also the
// cache entry format, stored as JSON.
type Source struct {
	ProjectID string      `json:"project_id"`
	Nodes     []gns3.Node `json:"nodes"`
}

// Fetcher obtains the (project id, node list) pair, from the cache
// when allowed and populated, from the controller otherwise.
type Fetcher struct {
	API      ControllerAPI
	Cache    cache.Cache
	UseCache bool
	CacheKey string
	Log      logr.Logger
}

// Fetch returns the source for the given project selector. A cache hit
// returns the stored payload unchanged and performs zero remote calls.
func (f *Fetcher) Fetch(ctx context.Context, projectID, projectName string) (Source, error) {
	if f.UseCache && f.Cache != nil {
		payload, ok, err := f.Cache.Get(ctx, f.CacheKey)
		if err != nil {
			return Source{}, fmt.Errorf("cache read failed: %w", err)
		}
		if ok {
			src, err := decodeSource(payload)
			if err != nil {
				return Source{}, fmt.Errorf("invalid cache entry: %w", err)
			}
			f.Log.V(1).Info("using cached node list", "project_id", src.ProjectID, "nodes", len(src.Nodes))
			return src, nil
		}
	}

	projects, err := f.API.ListProjects(ctx)
	if err != nil {
		return Source{}, err
	}

	pid, err := gns3.ResolveProject(projects, projectID, projectName)
	if err != nil {
		return Source{}, err
	}

	nodes, err := f.API.ListNodes(ctx, pid)
	if err != nil {
		return Source{}, err
	}

	src := Source{ProjectID: pid, Nodes: nodes}
	f.Log.V(1).Info("fetched node list", "project_id", pid, "nodes", len(nodes))

	if f.UseCache && f.Cache != nil {
		payload, err := json.Marshal(src)
		if err != nil {
			return Source{}, fmt.Errorf("failed to encode cache entry: %w", err)
		}
		if err := f.Cache.Set(ctx, f.CacheKey, payload); err != nil {
			return Source{}, fmt.Errorf("cache write failed: %w", err)
		}
	}

	return src, nil
}

// decodeSource keeps console ports as json.Number so a cached payload
// maps exactly like a fresh one.
func decodeSource(payload []byte) (Source, error) {
	var src Source
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(&src); err != nil {
		return Source{}, err
	}
	return src, nil
}
