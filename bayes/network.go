// Package bayes provides the directed acyclic graph of a Bayesian network:
// variables joined by parent→child edges. It is the collaborator handed to
// the support package, which only ever reads it.
package bayes

import (
	"fmt"
	"sort"
)

// Network is a directed graph over variable identifiers. A Network is
// mutable while its owner assembles it and must be treated as read-only for
// the duration of any build that consumes it. Create one with NewNetwork.
type Network struct {
	parents  map[string]map[string]struct{}
	children map[string]map[string]struct{}
	numEdges int
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		parents:  make(map[string]map[string]struct{}),
		children: make(map[string]map[string]struct{}),
	}
}

// AddVariable registers a variable with no edges. Adding a variable that
// already exists is a no-op.
func (n *Network) AddVariable(v string) {
	if _, ok := n.children[v]; ok {
		return
	}
	n.children[v] = make(map[string]struct{})
	n.parents[v] = make(map[string]struct{})
}

// AddEdge registers the parent→child edge, adding either endpoint if it is
// new. Self-edges are rejected; a duplicate edge is a no-op. AddEdge does
// not look for longer cycles; run Validate once the network is assembled.
func (n *Network) AddEdge(parent, child string) error {
	if parent == child {
		return fmt.Errorf("self-edge not allowed: %s -> %s", parent, child)
	}
	n.AddVariable(parent)
	n.AddVariable(child)
	if _, ok := n.children[parent][child]; ok {
		return nil
	}
	n.children[parent][child] = struct{}{}
	n.parents[child][parent] = struct{}{}
	n.numEdges++
	return nil
}

// Contains reports whether v is a variable of the network.
func (n *Network) Contains(v string) bool {
	_, ok := n.children[v]
	return ok
}

// Parents returns the variables with an edge into v, sorted. Unknown
// variables have no parents.
func (n *Network) Parents(v string) []string {
	return sortedKeys(n.parents[v])
}

// Children returns the variables v has an edge to, sorted. Unknown
// variables have no children.
func (n *Network) Children(v string) []string {
	return sortedKeys(n.children[v])
}

// HasEdge reports whether the parent→child edge exists.
func (n *Network) HasEdge(parent, child string) bool {
	_, ok := n.children[parent][child]
	return ok
}

// Variables returns every variable in the network, sorted.
func (n *Network) Variables() []string {
	return sortedKeys(n.children)
}

// NumVariables returns the number of variables.
func (n *Network) NumVariables() int {
	return len(n.children)
}

// NumEdges returns the number of edges.
func (n *Network) NumEdges() int {
	return n.numEdges
}

// Validate checks that the network has no directed cycle. The support
// package assumes acyclicity without verifying it, so owners should call
// Validate once after assembly, before handing the network to a build.
func (n *Network) Validate() error {
	// Classic depth-first search with two sets: permanent holds variables
	// fully explored and known safe, temporary holds the current path.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(v string) error
	visit = func(v string) error {
		if permanent[v] {
			return nil
		}
		if temporary[v] {
			return fmt.Errorf("cycle detected involving variable %q", v)
		}
		temporary[v] = true
		for child := range n.children[v] {
			if err := visit(child); err != nil {
				return err
			}
		}
		delete(temporary, v)
		permanent[v] = true
		return nil
	}

	for v := range n.children {
		if !permanent[v] {
			if err := visit(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys[V any](set map[string]V) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
