package inventory

import (
	"encoding/json"
	"strconv"

	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/gns3"
)

// Wildcard console addresses the controller hands out when a node
// listens on every interface. They are unusable as connection targets.
const (
	wildcardIPv4 = "0.0.0.0"
	wildcardIPv6 = "::"
)

const dedupSuffixLen = 6

// Mapper turns one node record into a host identifier and its variable
// map. It owns naming policy, duplicate handling, wildcard-address
// substitution and port-offset arithmetic.
type Mapper struct {
	Naming         string
	PortOffset     int
	ControllerHost string
	ProjectID      string
}

// Map converts node into (identifier, variables). The used set is
// shared across all nodes in a run; the first holder of a name keeps
// the unsuffixed form. A node with neither name nor id is skipped:
// ok=false and nothing else.
func (m *Mapper) Map(node gns3.Node, used map[string]struct{}) (string, map[string]any, bool) {
	host := node.Name
	if m.Naming == config.NamingNodeID {
		host = node.ID
	}
	if host == "" {
		host = firstNonEmpty(node.Name, node.ID)
	}
	if host == "" {
		return "", nil, false
	}

	if _, dup := used[host]; dup {
		host = host + "_" + dedupSuffix(node.ID)
	}
	used[host] = struct{}{}

	vars := map[string]any{
		"gns3_project_id":   m.ProjectID,
		"gns3_node_id":      node.ID,
		"gns3_node_name":    node.Name,
		"gns3_node_type":    node.Type,
		"gns3_status":       node.Status,
		"gns3_console_type": node.ConsoleType,
		"gns3_console_host": node.ConsoleHost,
		"gns3_console_port": node.Console,
	}

	consoleHost := node.ConsoleHost
	if consoleHost == "" || consoleHost == wildcardIPv4 || consoleHost == wildcardIPv6 {
		consoleHost = m.ControllerHost
	}
	vars["ansible_host"] = consoleHost

	if port, ok := consolePort(node.Console); ok {
		vars["ansible_port"] = port + m.PortOffset
	}

	return host, vars, true
}

// dedupSuffix keeps later duplicates distinguishable without renaming
// the first occurrence. Repeated collisions on both name and suffix
// are not retried further; that matches the controller's practical
// uniqueness of node ids.
func dedupSuffix(nodeID string) string {
	if nodeID == "" {
		return "dup"
	}
	if len(nodeID) > dedupSuffixLen {
		return nodeID[len(nodeID)-dedupSuffixLen:]
	}
	return nodeID
}

// consolePort reports whether the raw console value is an integer.
// Fresh API responses carry json.Number; values rebuilt from Go code
// or tests may be native ints.
func consolePort(raw any) (int, bool) {
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return int(n), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
