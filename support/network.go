package support

// Network is the read-only view of a Bayesian network the builder works
// against. bayes.Network satisfies it; so does any fixture that answers
// these four questions consistently for an acyclic directed graph.
//
// Implementations must return Parents and Children in a stable order: the
// builder's determinism guarantee is only as good as theirs.
type Network interface {
	// Contains reports whether v is a variable of the network.
	Contains(v string) bool

	// Parents returns the variables with an edge into v.
	Parents(v string) []string

	// Children returns the variables v has an edge to.
	Children(v string) []string

	// HasEdge reports whether the parent→child edge exists.
	HasEdge(parent, child string) bool
}
