package support

// Node is a vertex of a support graph: a network variable paired with the
// forbidden set in force when the builder reached it. The same variable can
// appear several times in one graph under different forbidden sets, and
// each appearance is a distinct node.
//
// Node is a value type. Compare nodes with Equal, not ==: the forbidden
// sets must be compared by membership.
type Node struct {
	Variable  string
	Forbidden ForbiddenSet
}

// Equal reports whether both nodes name the same variable under the same
// forbidden set.
func (n Node) Equal(other Node) bool {
	return n.Variable == other.Variable && n.Forbidden.Equal(other.Forbidden)
}

// String renders the node as "Var {A, B}".
func (n Node) String() string {
	return n.Variable + " " + n.Forbidden.String()
}

// key is the canonical identity of the node within a graph.
func (n Node) key() string {
	return n.Variable + "\x00" + n.Forbidden.fingerprint()
}

// Edge is a supporter→supported link between two nodes of a support graph:
// the supporter lends evidence to the supported node's variable.
type Edge struct {
	Supporter Node
	Supported Node
}

// Equal reports whether both edges join the same pair of nodes.
func (e Edge) Equal(other Edge) bool {
	return e.Supporter.Equal(other.Supporter) && e.Supported.Equal(other.Supported)
}

// String renders the edge as "Supporter -> Supported" by variable name.
func (e Edge) String() string {
	return e.Supporter.Variable + " -> " + e.Supported.Variable
}
