package inventory

import (
	"encoding/json"
	"testing"

	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/gns3"
)

func newTestMapper() *Mapper {
	return &Mapper{
		Naming:         config.NamingName,
		ControllerHost: "gns3.example.com",
		ProjectID:      "p1",
	}
}

func TestMapStandardVariables(t *testing.T) {
	mapper := newTestMapper()
	node := gns3.Node{
		ID:          "n1",
		Name:        "R1",
		Type:        "router",
		Status:      "started",
		ConsoleType: "telnet",
		ConsoleHost: "10.0.0.5",
		Console:     json.Number("5000"),
	}

	host, vars, ok := mapper.Map(node, map[string]struct{}{})
	if !ok {
		t.Fatal("expected node to map")
	}
	if host != "R1" {
		t.Fatalf("expected host R1, got %s", host)
	}
	if vars["gns3_project_id"] != "p1" || vars["gns3_node_id"] != "n1" || vars["gns3_node_type"] != "router" {
		t.Fatalf("unexpected standard vars: %v", vars)
	}
	if vars["ansible_host"] != "10.0.0.5" {
		t.Fatalf("expected console host to pass through, got %v", vars["ansible_host"])
	}
	if vars["ansible_port"] != 5000 {
		t.Fatalf("expected port 5000, got %v", vars["ansible_port"])
	}
}

func TestMapNodeIDNaming(t *testing.T) {
	mapper := newTestMapper()
	mapper.Naming = config.NamingNodeID

	host, _, ok := mapper.Map(gns3.Node{ID: "n1", Name: "R1"}, map[string]struct{}{})
	if !ok || host != "n1" {
		t.Fatalf("expected host n1, got %s (ok=%v)", host, ok)
	}
}

func TestMapFallsBackToOtherField(t *testing.T) {
	mapper := newTestMapper()

	host, _, ok := mapper.Map(gns3.Node{ID: "n1"}, map[string]struct{}{})
	if !ok || host != "n1" {
		t.Fatalf("expected fallback to node id, got %s (ok=%v)", host, ok)
	}

	mapper.Naming = config.NamingNodeID
	host, _, ok = mapper.Map(gns3.Node{Name: "R1"}, map[string]struct{}{})
	if !ok || host != "R1" {
		t.Fatalf("expected fallback to name, got %s (ok=%v)", host, ok)
	}
}

func TestMapSkipsNodeWithoutIdentifiers(t *testing.T) {
	mapper := newTestMapper()

	if _, _, ok := mapper.Map(gns3.Node{Type: "cloud"}, map[string]struct{}{}); ok {
		t.Fatal("expected node without name and id to be skipped")
	}
}

func TestMapDeduplicatesWithNodeIDSuffix(t *testing.T) {
	mapper := newTestMapper()
	used := map[string]struct{}{}

	first, _, _ := mapper.Map(gns3.Node{ID: "aaaa-111111", Name: "R1"}, used)
	second, _, _ := mapper.Map(gns3.Node{ID: "bbbb-222222", Name: "R1"}, used)

	if first != "R1" {
		t.Fatalf("first occurrence must keep the unsuffixed name, got %s", first)
	}
	if second != "R1_222222" {
		t.Fatalf("expected R1_222222, got %s", second)
	}
	if _, ok := used["R1_222222"]; !ok {
		t.Fatal("suffixed identifier must be recorded in the used set")
	}
}

func TestMapDeduplicatesWithoutNodeID(t *testing.T) {
	mapper := newTestMapper()
	used := map[string]struct{}{"R1": {}}

	host, _, _ := mapper.Map(gns3.Node{Name: "R1"}, used)
	if host != "R1_dup" {
		t.Fatalf("expected R1_dup, got %s", host)
	}
}

func TestMapShortNodeIDSuffix(t *testing.T) {
	mapper := newTestMapper()
	used := map[string]struct{}{"R1": {}}

	host, _, _ := mapper.Map(gns3.Node{ID: "abc", Name: "R1"}, used)
	if host != "R1_abc" {
		t.Fatalf("expected R1_abc, got %s", host)
	}
}

func TestMapPortOffset(t *testing.T) {
	mapper := newTestMapper()
	mapper.PortOffset = 1

	_, vars, _ := mapper.Map(gns3.Node{ID: "n1", Name: "R1", Console: json.Number("5000")}, map[string]struct{}{})
	if vars["ansible_port"] != 5001 {
		t.Fatalf("expected port 5001, got %v", vars["ansible_port"])
	}
}

func TestMapNegativePortOffset(t *testing.T) {
	mapper := newTestMapper()
	mapper.PortOffset = -2

	_, vars, _ := mapper.Map(gns3.Node{ID: "n1", Name: "R1", Console: json.Number("5000")}, map[string]struct{}{})
	if vars["ansible_port"] != 4998 {
		t.Fatalf("expected port 4998, got %v", vars["ansible_port"])
	}
}

func TestMapNonIntegerConsoleOmitsPort(t *testing.T) {
	mapper := newTestMapper()

	for _, console := range []any{nil, "none", json.Number("50.5")} {
		_, vars, _ := mapper.Map(gns3.Node{ID: "n1", Name: "R1", Console: console}, map[string]struct{}{})
		if _, ok := vars["ansible_port"]; ok {
			t.Fatalf("expected no ansible_port for console %v", console)
		}
		if vars["ansible_host"] != "gns3.example.com" {
			t.Fatalf("ansible_host must still be set, got %v", vars["ansible_host"])
		}
	}
}

func TestMapWildcardConsoleHost(t *testing.T) {
	mapper := newTestMapper()

	for _, wildcard := range []string{"0.0.0.0", "::", ""} {
		_, vars, _ := mapper.Map(gns3.Node{ID: "n1", Name: "R1", ConsoleHost: wildcard}, map[string]struct{}{})
		if vars["ansible_host"] != "gns3.example.com" {
			t.Fatalf("expected controller host for console host %q, got %v", wildcard, vars["ansible_host"])
		}
		// The raw value is still exposed untouched.
		if vars["gns3_console_host"] != wildcard {
			t.Fatalf("expected raw console host %q, got %v", wildcard, vars["gns3_console_host"])
		}
	}
}

func TestMapRegularConsoleHostPassesThrough(t *testing.T) {
	mapper := newTestMapper()

	_, vars, _ := mapper.Map(gns3.Node{ID: "n1", Name: "R1", ConsoleHost: "192.0.2.9"}, map[string]struct{}{})
	if vars["ansible_host"] != "192.0.2.9" {
		t.Fatalf("expected 192.0.2.9, got %v", vars["ansible_host"])
	}
}
