// Package gns3 talks to a GNS3 controller over its REST API v2 and
// resolves which project a run operates on.
package gns3

// Project is a named collection of nodes on the controller.
type Project struct {
	ID   string `json:"project_id"`
	Name string `json:"name"`
}

// Node is one simulated device within a project. Console carries the
// raw API value: the controller reports an integer port, null, or in
// odd setups a string, and downstream mapping depends on which one.
// Numbers decode as json.Number.
type Node struct {
	ID          string `json:"node_id"`
	Name        string `json:"name"`
	Type        string `json:"node_type"`
	Status      string `json:"status"`
	ConsoleType string `json:"console_type"`
	ConsoleHost string `json:"console_host"`
	Console     any    `json:"console"`
}
