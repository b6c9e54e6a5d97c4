package support

import (
	"fmt"
	"sort"
	"strings"
)

// Graph is a support graph: nodes reached from a root variable, joined by
// supporter→supported edges. Build and Prune return graphs that no caller
// mutates afterwards; every query is read-only and every slice-returning
// query is sorted, so two equal graphs report identical contents.
type Graph struct {
	root     string
	nodes    map[string]Node
	out      map[string]map[string]struct{}
	in       map[string]map[string]struct{}
	numEdges int
}

func newGraph(root Node) *Graph {
	g := &Graph{
		root:  root.key(),
		nodes: make(map[string]Node),
		out:   make(map[string]map[string]struct{}),
		in:    make(map[string]map[string]struct{}),
	}
	g.insertNode(root)
	return g
}

func (g *Graph) insertNode(n Node) {
	key := n.key()
	if _, ok := g.nodes[key]; ok {
		return
	}
	g.nodes[key] = n
	g.out[key] = make(map[string]struct{})
	g.in[key] = make(map[string]struct{})
}

func (g *Graph) insertEdge(supporter, supported Node) {
	from, to := supporter.key(), supported.key()
	if _, ok := g.out[from][to]; ok {
		return
	}
	g.out[from][to] = struct{}{}
	g.in[to][from] = struct{}{}
	g.numEdges++
}

func (g *Graph) removeNode(key string) {
	for to := range g.out[key] {
		delete(g.in[to], key)
		g.numEdges--
	}
	for from := range g.in[key] {
		delete(g.out[from], key)
		g.numEdges--
	}
	delete(g.out, key)
	delete(g.in, key)
	delete(g.nodes, key)
}

func (g *Graph) clone() *Graph {
	c := &Graph{
		root:     g.root,
		nodes:    make(map[string]Node, len(g.nodes)),
		out:      make(map[string]map[string]struct{}, len(g.out)),
		in:       make(map[string]map[string]struct{}, len(g.in)),
		numEdges: g.numEdges,
	}
	for key, n := range g.nodes {
		c.nodes[key] = n
	}
	for key, set := range g.out {
		c.out[key] = make(map[string]struct{}, len(set))
		for to := range set {
			c.out[key][to] = struct{}{}
		}
	}
	for key, set := range g.in {
		c.in[key] = make(map[string]struct{}, len(set))
		for from := range set {
			c.in[key][from] = struct{}{}
		}
	}
	return c
}

// Root returns the node the graph was built from.
func (g *Graph) Root() Node {
	return g.nodes[g.root]
}

// Contains reports whether the graph holds a node equal to n.
func (g *Graph) Contains(n Node) bool {
	_, ok := g.nodes[n.key()]
	return ok
}

// HasEdge reports whether the supporter→supported edge exists.
func (g *Graph) HasEdge(supporter, supported Node) bool {
	_, ok := g.out[supporter.key()][supported.key()]
	return ok
}

// Supporters returns the nodes with an edge into n, sorted.
func (g *Graph) Supporters(n Node) []Node {
	return g.collect(g.in[n.key()])
}

// Supported returns the nodes n has an edge to, sorted.
func (g *Graph) Supported(n Node) []Node {
	return g.collect(g.out[n.key()])
}

func (g *Graph) collect(set map[string]struct{}) []Node {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Node, len(keys))
	for i, key := range keys {
		out[i] = g.nodes[key]
	}
	return out
}

// Nodes returns every node, sorted by variable then forbidden set.
func (g *Graph) Nodes() []Node {
	keys := make([]string, 0, len(g.nodes))
	for key := range g.nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Node, len(keys))
	for i, key := range keys {
		out[i] = g.nodes[key]
	}
	return out
}

// NodesFor returns every node carrying the given variable, sorted. A
// variable absent from the graph yields nil.
func (g *Graph) NodesFor(variable string) []Node {
	var keys []string
	for key, n := range g.nodes {
		if n.Variable == variable {
			keys = append(keys, key)
		}
	}
	if keys == nil {
		return nil
	}
	sort.Strings(keys)
	out := make([]Node, len(keys))
	for i, key := range keys {
		out[i] = g.nodes[key]
	}
	return out
}

// Edges returns every edge, sorted by supporter then supported.
func (g *Graph) Edges() []Edge {
	type pair struct{ from, to string }
	pairs := make([]pair, 0, g.numEdges)
	for from, set := range g.out {
		for to := range set {
			pairs = append(pairs, pair{from, to})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].from != pairs[j].from {
			return pairs[i].from < pairs[j].from
		}
		return pairs[i].to < pairs[j].to
	})
	out := make([]Edge, len(pairs))
	for i, p := range pairs {
		out[i] = Edge{Supporter: g.nodes[p.from], Supported: g.nodes[p.to]}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.numEdges
}

// Equal reports whether both graphs have the same root, nodes and edges.
func (g *Graph) Equal(other *Graph) bool {
	if g.root != other.root {
		return false
	}
	if len(g.nodes) != len(other.nodes) || g.numEdges != other.numEdges {
		return false
	}
	for key := range g.nodes {
		if _, ok := other.nodes[key]; !ok {
			return false
		}
	}
	for from, set := range g.out {
		for to := range set {
			if _, ok := other.out[from][to]; !ok {
				return false
			}
		}
	}
	return true
}

// String renders a readable report: nodes with the largest forbidden sets
// first, so the fringe of the graph reads top-down toward the root, then
// the edge list.
func (g *Graph) String() string {
	nodes := g.Nodes()
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Forbidden.Len() > nodes[j].Forbidden.Len()
	})

	var b strings.Builder
	fmt.Fprintf(&b, "support graph rooted at %s (%d nodes, %d edges)\n",
		g.Root().Variable, g.NodeCount(), g.EdgeCount())
	b.WriteString("nodes:\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, "  %s\n", n)
	}
	b.WriteString("edges:\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	return b.String()
}
