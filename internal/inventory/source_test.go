package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-logr/logr"

	"github.com/canardconfit/gns3-inventory/internal/gns3"
)

type fakeAPI struct {
	projects     []gns3.Project
	nodes        map[string][]gns3.Node
	err          error
	projectCalls int
	nodeCalls    int
}

func (f *fakeAPI) ListProjects(context.Context) ([]gns3.Project, error) {
	f.projectCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.projects, nil
}

func (f *fakeAPI) ListNodes(_ context.Context, projectID string) ([]gns3.Node, error) {
	f.nodeCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.nodes[projectID], nil
}

type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	payload, ok := c.data[key]
	return payload, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, payload []byte) error {
	c.data[key] = payload
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func newTestAPI() *fakeAPI {
	return &fakeAPI{
		projects: []gns3.Project{{ID: "p1", Name: "Lab"}},
		nodes: map[string][]gns3.Node{
			"p1": {{ID: "n1", Name: "R1", Type: "router", Status: "started", Console: json.Number("5000")}},
		},
	}
}

func TestFetchRemoteAndStore(t *testing.T) {
	api := newTestAPI()
	store := newMapCache()
	fetcher := &Fetcher{API: api, Cache: store, UseCache: true, CacheKey: "key", Log: logr.Discard()}

	src, err := fetcher.Fetch(context.Background(), "", "Lab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.ProjectID != "p1" || len(src.Nodes) != 1 {
		t.Fatalf("unexpected source: %+v", src)
	}
	if _, ok := store.data["key"]; !ok {
		t.Fatal("expected payload to be cached")
	}
}

func TestFetchCacheHitSkipsRemoteCalls(t *testing.T) {
	api := newTestAPI()
	store := newMapCache()
	fetcher := &Fetcher{API: api, Cache: store, UseCache: true, CacheKey: "key", Log: logr.Discard()}

	first, err := fetcher.Fetch(context.Background(), "", "Lab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := fetcher.Fetch(context.Background(), "", "Lab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if api.projectCalls != 1 || api.nodeCalls != 1 {
		t.Fatalf("expected exactly one remote round, got %d/%d", api.projectCalls, api.nodeCalls)
	}
	if second.ProjectID != first.ProjectID || len(second.Nodes) != len(first.Nodes) {
		t.Fatalf("cached source differs: %+v vs %+v", first, second)
	}
	// Console ports survive the cache round-trip as json.Number.
	if _, ok := second.Nodes[0].Console.(json.Number); !ok {
		t.Fatalf("expected json.Number console after cache reuse, got %T", second.Nodes[0].Console)
	}
}

func TestFetchCacheDisabledDoesNotStore(t *testing.T) {
	api := newTestAPI()
	store := newMapCache()
	fetcher := &Fetcher{API: api, Cache: store, UseCache: false, CacheKey: "key", Log: logr.Discard()}

	if _, err := fetcher.Fetch(context.Background(), "p1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.data) != 0 {
		t.Fatal("expected nothing cached when caching is disabled")
	}
}

func TestFetchPropagatesTransportError(t *testing.T) {
	api := newTestAPI()
	api.err = &gns3.TransportError{URL: "http://gns3.example.com/v2/projects", Err: errors.New("refused")}
	fetcher := &Fetcher{API: api, Log: logr.Discard()}

	_, err := fetcher.Fetch(context.Background(), "p1", "")
	var transportErr *gns3.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if api.projectCalls != 1 {
		t.Fatalf("expected no retry, got %d calls", api.projectCalls)
	}
}

func TestFetchPropagatesResolveError(t *testing.T) {
	api := newTestAPI()
	fetcher := &Fetcher{API: api, Log: logr.Discard()}

	_, err := fetcher.Fetch(context.Background(), "", "Nope")
	var resolveErr *gns3.ResolveError
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected ResolveError, got %v", err)
	}
	if api.nodeCalls != 0 {
		t.Fatal("node list must not be fetched when resolution fails")
	}
}
