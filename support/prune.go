package support

// Prune returns a copy of the graph reduced to the nodes the given evidence
// can sustain, leaving the input graph untouched. Two rules run over the
// copy until neither removes anything, all matches of a pass removed in one
// batch:
//
//   - a node that transitively supports a node of an observed variable is
//     removed: the observation itself settles that variable, so arguing for
//     it adds nothing
//   - a node of an unobserved variable with no supporters of its own but
//     with nodes depending on it is removed: it asserts support it cannot
//     back up
//
// The root never supports anything, so it survives every pruning. Evidence
// variables that never appear in the graph are simply ignored.
func Prune(g *Graph, evidence []string, opts ...Option) *Graph {
	o := applyOptions(opts)
	observed := make(map[string]struct{}, len(evidence))
	for _, v := range evidence {
		observed[v] = struct{}{}
	}

	c := g.clone()
	for pass := 1; ; pass++ {
		doomed := make(map[string]struct{})

		var markAncestors func(key string)
		markAncestors = func(key string) {
			for from := range c.in[key] {
				if _, ok := doomed[from]; ok {
					continue
				}
				doomed[from] = struct{}{}
				markAncestors(from)
			}
		}
		for key, n := range c.nodes {
			if _, ok := observed[n.Variable]; ok {
				markAncestors(key)
			}
		}

		for key, n := range c.nodes {
			if _, done := doomed[key]; done {
				continue
			}
			if _, ok := observed[n.Variable]; ok {
				continue
			}
			if len(c.in[key]) == 0 && len(c.out[key]) > 0 {
				doomed[key] = struct{}{}
			}
		}

		if len(doomed) == 0 {
			o.logger.Debug("pruning converged",
				"passes", pass-1,
				"nodes", c.NodeCount(),
				"edges", c.EdgeCount())
			return c
		}
		for key := range doomed {
			c.removeNode(key)
		}
		o.logger.Debug("pruning pass", "pass", pass, "removed", len(doomed))
	}
}
