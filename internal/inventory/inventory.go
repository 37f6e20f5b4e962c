// Package inventory builds the host and group aggregate from the node
// list of one resolved project.
package inventory

import "sort"

// Inventory is the mutable aggregate the pipeline writes into. Access
// is single-threaded; insertion order is preserved so output is
// deterministic for a given node list.
type Inventory struct {
	groups     map[string][]string
	groupOrder []string
	members    map[string]map[string]struct{}
	hostVars   map[string]map[string]any
	hostOrder  []string
}

func New() *Inventory {
	return &Inventory{
		groups:   map[string][]string{},
		members:  map[string]map[string]struct{}{},
		hostVars: map[string]map[string]any{},
	}
}

// AddGroup creates a group. Creating an existing group is a no-op.
func (inv *Inventory) AddGroup(name string) {
	if _, ok := inv.groups[name]; ok {
		return
	}
	inv.groups[name] = nil
	inv.members[name] = map[string]struct{}{}
	inv.groupOrder = append(inv.groupOrder, name)
}

// AddHost registers a host and places it in group.
func (inv *Inventory) AddHost(host, group string) {
	if _, ok := inv.hostVars[host]; !ok {
		inv.hostVars[host] = map[string]any{}
		inv.hostOrder = append(inv.hostOrder, host)
	}
	inv.AddChild(group, host)
}

// AddChild adds a host to a group, creating the group if needed.
func (inv *Inventory) AddChild(group, host string) {
	inv.AddGroup(group)
	if _, ok := inv.members[group][host]; ok {
		return
	}
	inv.members[group][host] = struct{}{}
	inv.groups[group] = append(inv.groups[group], host)
}

// SetVariable sets one variable on a known host. Unknown hosts are
// ignored rather than created implicitly.
func (inv *Inventory) SetVariable(host, key string, value any) {
	vars, ok := inv.hostVars[host]
	if !ok {
		return
	}
	vars[key] = value
}

// HostVars returns a copy of a host's variables, or nil for an unknown
// host. The copy keeps expression evaluation from mutating the store
// behind its back.
func (inv *Inventory) HostVars(host string) map[string]any {
	vars, ok := inv.hostVars[host]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out
}

func (inv *Inventory) HasHost(host string) bool {
	_, ok := inv.hostVars[host]
	return ok
}

// Hosts returns all hosts in insertion order.
func (inv *Inventory) Hosts() []string {
	return append([]string(nil), inv.hostOrder...)
}

// Groups returns all group names in insertion order.
func (inv *Inventory) Groups() []string {
	return append([]string(nil), inv.groupOrder...)
}

// GroupHosts returns the members of one group in insertion order.
func (inv *Inventory) GroupHosts(group string) []string {
	return append([]string(nil), inv.groups[group]...)
}

// HostGroups returns the groups a host belongs to, sorted by name.
func (inv *Inventory) HostGroups(host string) []string {
	var out []string
	for group, members := range inv.members {
		if _, ok := members[host]; ok {
			out = append(out, group)
		}
	}
	sort.Strings(out)
	return out
}

// ToAnsible renders the aggregate as the document `ansible-inventory
// --list` expects: one entry per group plus _meta.hostvars.
func (inv *Inventory) ToAnsible() map[string]any {
	doc := make(map[string]any, len(inv.groupOrder)+2)

	children := make([]string, 0, len(inv.groupOrder)+1)
	children = append(children, "ungrouped")
	for _, group := range inv.groupOrder {
		doc[group] = map[string]any{"hosts": inv.GroupHosts(group)}
		children = append(children, group)
	}
	doc["all"] = map[string]any{"children": children}

	hostvars := make(map[string]any, len(inv.hostOrder))
	for _, host := range inv.hostOrder {
		hostvars[host] = inv.hostVars[host]
	}
	doc["_meta"] = map[string]any{"hostvars": hostvars}

	return doc
}
