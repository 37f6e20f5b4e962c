package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/canardconfit/gns3-inventory/internal/inventory"
)

// RenderInventory writes the built inventory. JSON and YAML emit the
// `ansible-inventory --list` document; the table shows the connection
// parameters per host.
func RenderInventory(w io.Writer, inv *inventory.Inventory, mode Mode) error {
	switch mode {
	case ModeYAML:
		return EmitYAML(w, inv.ToAnsible())
	case ModeTable:
		return renderInventoryTable(inv)
	default:
		return EmitJSON(w, inv.ToAnsible())
	}
}

func renderInventoryTable(inv *inventory.Inventory) error {
	columns := []string{"Host", "Groups", "Ansible Host", "Ansible Port", "Status"}

	hosts := inv.Hosts()
	rows := make([][]string, 0, len(hosts))
	for _, host := range hosts {
		vars := inv.HostVars(host)
		rows = append(rows, []string{
			host,
			strings.Join(inv.HostGroups(host), ","),
			stringVar(vars, "ansible_host"),
			stringVar(vars, "ansible_port"),
			stringVar(vars, "gns3_status"),
		})
	}
	return renderTable(columns, rows)
}

// RenderHostVars writes one host's variable map, the `--host` side of
// the dynamic inventory contract. Unknown hosts emit an empty map.
func RenderHostVars(w io.Writer, vars map[string]any, mode Mode) error {
	if vars == nil {
		vars = map[string]any{}
	}
	if mode == ModeYAML {
		return EmitYAML(w, vars)
	}
	return EmitJSON(w, vars)
}

func stringVar(vars map[string]any, key string) string {
	value, ok := vars[key]
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}
