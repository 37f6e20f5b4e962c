package output

import (
	"fmt"
	"io"

	"github.com/canardconfit/gns3-inventory/internal/gns3"
)

func RenderNodes(w io.Writer, nodes []gns3.Node, mode Mode) error {
	switch mode {
	case ModeJSON:
		return EmitJSON(w, nodes)
	case ModeYAML:
		return EmitYAML(w, nodes)
	default:
		return renderNodesTable(nodes)
	}
}

func renderNodesTable(nodes []gns3.Node) error {
	columns := []string{"Name", "Node ID", "Type", "Status", "Console", "Console Host"}

	rows := make([][]string, 0, len(nodes))
	for _, node := range nodes {
		console := ""
		if node.Console != nil {
			console = fmt.Sprintf("%v", node.Console)
		}
		rows = append(rows, []string{node.Name, node.ID, node.Type, node.Status, console, node.ConsoleHost})
	}
	return renderTable(columns, rows)
}

func RenderProjects(w io.Writer, projects []gns3.Project, mode Mode) error {
	switch mode {
	case ModeJSON:
		return EmitJSON(w, projects)
	case ModeYAML:
		return EmitYAML(w, projects)
	default:
		return renderProjectsTable(projects)
	}
}

func renderProjectsTable(projects []gns3.Project) error {
	columns := []string{"Project ID", "Name"}

	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, []string{project.ID, project.Name})
	}
	return renderTable(columns, rows)
}
