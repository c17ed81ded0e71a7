package statechart

import (
	"bytes"
	"fmt"
	"sort"
)

// DOT renders the registered state tree as Graphviz DOT source. Nested
// states are drawn inside their parent's cluster and the states on the
// active path are filled. name maps StateIDs to labels; pass nil for the
// default "s<id>" form.
func (m *Machine) DOT(name func(StateID) string) string {
	if name == nil {
		name = func(id StateID) string { return fmt.Sprintf("s%d", id) }
	}

	children := make(map[StateID][]StateID)
	var roots []StateID
	for id, d := range m.reg.descs {
		if d.parent == StateIDNone {
			roots = append(roots, id)
		} else {
			children[d.parent] = append(children[d.parent], id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	for _, kids := range children {
		sort.Slice(kids, func(i, j int) bool { return kids[i] < kids[j] })
	}

	active := make(map[StateID]bool, m.path.depth())
	for _, e := range m.path.entries {
		active[e.id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph statechart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	for _, id := range roots {
		renderNode(&buf, id, name, children, active, "  ")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func renderNode(buf *bytes.Buffer, id StateID, name func(StateID) string, children map[StateID][]StateID, active map[StateID]bool, indent string) {
	style := ""
	if active[id] {
		style = ` style="rounded,filled" fillcolor=lightgreen`
	}
	kids := children[id]
	if len(kids) == 0 {
		fmt.Fprintf(buf, "%s%q [label=%q%s];\n", indent, name(id), name(id), style)
		return
	}
	fmt.Fprintf(buf, "%ssubgraph \"cluster_%s\" {\n", indent, name(id))
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, name(id))
	fmt.Fprintf(buf, "%s  %q [label=%q shape=ellipse%s];\n", indent, name(id), name(id), style)
	for _, kid := range kids {
		renderNode(buf, kid, name, children, active, indent+"  ")
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}
