// Package support builds and prunes support graphs: explanatory argument
// structures extracted from a Bayesian network. A build starts from a root
// variable and walks Markov blankets outward, producing an immutable graph
// whose nodes pair a variable with the set of variables its subtree may not
// revisit. Prune then strips the graph down to what a given body of
// evidence can actually sustain.
package support

import "log/slog"

// Build constructs the support graph of root over the given network. The
// graph starts at the node (root, {root}) and grows by expanding each new
// node's Markov blanket: parents support directly, children bring their
// other parents into the forbidden set, and spouses support once per shared
// child. A blanket member already in a node's forbidden set is not asked
// for support again on that branch, which is what makes the walk terminate.
//
// The network must be acyclic and must not change during the build. The
// result is deterministic for a given network and root. A root the network
// does not contain yields a NotFoundError.
func Build(net Network, root string, opts ...Option) (*Graph, error) {
	if !net.Contains(root) {
		return nil, &NotFoundError{Variable: root}
	}
	o := applyOptions(opts)
	b := &builder{
		net:      net,
		blankets: make(map[string][]string),
		logger:   o.logger,
	}

	rootNode := Node{Variable: root, Forbidden: NewForbiddenSet(root)}
	b.graph = newGraph(rootNode)
	b.frontier = append(b.frontier, rootNode)
	for len(b.frontier) > 0 {
		node := b.frontier[0]
		b.frontier = b.frontier[1:]
		b.expand(node)
	}

	b.logger.Debug("support graph built",
		"root", root,
		"nodes", b.graph.NodeCount(),
		"edges", b.graph.EdgeCount())
	return b.graph, nil
}

type builder struct {
	net      Network
	graph    *Graph
	frontier []Node
	blankets map[string][]string
	logger   *slog.Logger
}

// expand walks the Markov blanket of node's variable and requests support
// from every member the node's forbidden set still allows.
func (b *builder) expand(node Node) {
	v := node.Variable
	for _, w := range b.blanket(v) {
		if node.Forbidden.Contains(w) {
			continue
		}
		switch {
		case b.net.HasEdge(w, v):
			// Parent: only w itself becomes forbidden downstream.
			b.requestSupport(node, w, node.Forbidden.Extend(w))
		case b.net.HasEdge(v, w):
			// Child: w and its other parents become forbidden, so the
			// branch cannot climb back over the same v-structure.
			members := []string{w}
			for _, p := range b.net.Parents(w) {
				if p != v {
					members = append(members, p)
				}
			}
			b.requestSupport(node, w, node.Forbidden.Extend(members...))
		default:
			// Spouse: one request per child shared with v, each closing
			// off its own child as well.
			for _, k := range b.net.Children(v) {
				if b.net.HasEdge(w, k) {
					b.requestSupport(node, w, node.Forbidden.Extend(w, k))
				}
			}
		}
	}
}

// requestSupport registers the node (w, forbidden) as a supporter of the
// given node. A node is entered into the graph before it is queued for
// expansion, so a second request for the same node only adds the edge.
func (b *builder) requestSupport(supported Node, w string, forbidden ForbiddenSet) {
	node := Node{Variable: w, Forbidden: forbidden}
	if !b.graph.Contains(node) {
		b.graph.insertNode(node)
		b.graph.insertEdge(node, supported)
		b.frontier = append(b.frontier, node)
		b.logger.Debug("node added",
			"variable", w,
			"forbidden", forbidden.String(),
			"supports", supported.Variable)
		return
	}
	if !b.graph.HasEdge(node, supported) {
		b.graph.insertEdge(node, supported)
		b.logger.Debug("edge added",
			"supporter", w,
			"supported", supported.Variable)
	}
}

func (b *builder) blanket(v string) []string {
	if members, ok := b.blankets[v]; ok {
		return members
	}
	members := blanketOf(b.net, v)
	b.blankets[v] = members
	return members
}
