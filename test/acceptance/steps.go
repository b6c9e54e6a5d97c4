package acceptance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/CanopyHQ/taproot/bayes"
	"github.com/CanopyHQ/taproot/support"
)

// TestContext holds state between steps
type TestContext struct {
	net      *bayes.Network
	built    *support.Graph
	graph    *support.Graph
	evidence []string
	blanket  []string
	lastErr  error
}

// parseList splits a comma-separated cell like "Crime, DNA_match" into
// variable names. An empty cell means an empty list.
func parseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func nodeOf(variable, forbidding string) support.Node {
	return support.Node{
		Variable:  variable,
		Forbidden: support.NewForbiddenSet(parseList(forbidding)...),
	}
}

func (tc *TestContext) networkWithEdges(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("edge table needs a header row and at least one edge")
	}
	net := bayes.NewNetwork()
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 2 {
			return fmt.Errorf("edge rows need exactly two cells, got %d", len(row.Cells))
		}
		if err := net.AddEdge(row.Cells[0].Value, row.Cells[1].Value); err != nil {
			return err
		}
	}
	if err := net.Validate(); err != nil {
		return err
	}
	tc.net = net
	tc.built = nil
	tc.graph = nil
	tc.lastErr = nil
	return nil
}

func (tc *TestContext) networkWithSingleVariable(v string) error {
	net := bayes.NewNetwork()
	net.AddVariable(v)
	tc.net = net
	tc.built = nil
	tc.graph = nil
	tc.lastErr = nil
	return nil
}

func (tc *TestContext) buildSupportGraph(root string) error {
	if tc.net == nil {
		return fmt.Errorf("no network defined")
	}
	g, err := support.Build(tc.net, root)
	if err != nil {
		return err
	}
	tc.built = g
	tc.graph = g
	return nil
}

func (tc *TestContext) tryBuildSupportGraph(root string) error {
	if tc.net == nil {
		return fmt.Errorf("no network defined")
	}
	tc.graph, tc.lastErr = support.Build(tc.net, root)
	return nil
}

func (tc *TestContext) checkBuildNotFound() error {
	if tc.lastErr == nil {
		return fmt.Errorf("expected the build to fail")
	}
	var notFound *support.NotFoundError
	if !errors.As(tc.lastErr, &notFound) {
		return fmt.Errorf("expected a not-found error, got %v", tc.lastErr)
	}
	return nil
}

func (tc *TestContext) checkGraphSize(nodes, edges int) error {
	if tc.graph == nil {
		return fmt.Errorf("no graph built")
	}
	if tc.graph.NodeCount() != nodes || tc.graph.EdgeCount() != edges {
		return fmt.Errorf("expected %d nodes and %d edges, got:\n%s", nodes, edges, tc.graph)
	}
	return nil
}

func (tc *TestContext) checkRoot(v string) error {
	if tc.graph == nil {
		return fmt.Errorf("no graph built")
	}
	root := tc.graph.Root()
	if root.Variable != v {
		return fmt.Errorf("root is %s, expected %s", root.Variable, v)
	}
	if !root.Forbidden.Equal(support.NewForbiddenSet(v)) {
		return fmt.Errorf("root forbidden set is %s, expected {%s}", root.Forbidden, v)
	}
	return nil
}

func (tc *TestContext) checkNodePresent(variable, forbidding string) error {
	if tc.graph == nil {
		return fmt.Errorf("no graph built")
	}
	n := nodeOf(variable, forbidding)
	if !tc.graph.Contains(n) {
		return fmt.Errorf("node %s missing from graph:\n%s", n, tc.graph)
	}
	return nil
}

func (tc *TestContext) checkVariableAbsent(variable string) error {
	if tc.graph == nil {
		return fmt.Errorf("no graph built")
	}
	if nodes := tc.graph.NodesFor(variable); len(nodes) != 0 {
		return fmt.Errorf("expected no nodes for %s, got %v", variable, nodes)
	}
	return nil
}

func (tc *TestContext) checkVariableMultiplicity(count int, variable string) error {
	if tc.graph == nil {
		return fmt.Errorf("no graph built")
	}
	if nodes := tc.graph.NodesFor(variable); len(nodes) != count {
		return fmt.Errorf("expected %d nodes for %s, got %v", count, variable, nodes)
	}
	return nil
}

func (tc *TestContext) checkEdgePresent(supVar, supForbidding, tgtVar, tgtForbidding string) error {
	if tc.graph == nil {
		return fmt.Errorf("no graph built")
	}
	supporter := nodeOf(supVar, supForbidding)
	supported := nodeOf(tgtVar, tgtForbidding)
	if !tc.graph.HasEdge(supporter, supported) {
		return fmt.Errorf("edge %s -> %s missing from graph:\n%s", supporter, supported, tc.graph)
	}
	return nil
}

func (tc *TestContext) pruneWithEvidence(list string) error {
	if tc.built == nil {
		return fmt.Errorf("no graph built")
	}
	tc.evidence = parseList(list)
	tc.graph = support.Prune(tc.built, tc.evidence)
	return nil
}

func (tc *TestContext) pruneWithoutEvidence() error {
	if tc.built == nil {
		return fmt.Errorf("no graph built")
	}
	tc.evidence = nil
	tc.graph = support.Prune(tc.built, nil)
	return nil
}

func (tc *TestContext) checkPruneIdempotent() error {
	if tc.graph == nil {
		return fmt.Errorf("no graph built")
	}
	again := support.Prune(tc.graph, tc.evidence)
	if !tc.graph.Equal(again) {
		return fmt.Errorf("pruning was not idempotent:\n%s\nversus:\n%s", tc.graph, again)
	}
	return nil
}

func (tc *TestContext) checkBuiltGraphSize(nodes, edges int) error {
	if tc.built == nil {
		return fmt.Errorf("no graph built")
	}
	if tc.built.NodeCount() != nodes || tc.built.EdgeCount() != edges {
		return fmt.Errorf("expected the built graph to keep %d nodes and %d edges, got:\n%s",
			nodes, edges, tc.built)
	}
	return nil
}

func (tc *TestContext) requestBlanket(v string) error {
	if tc.net == nil {
		return fmt.Errorf("no network defined")
	}
	tc.blanket, tc.lastErr = support.MarkovBlanket(tc.net, v)
	return nil
}

func (tc *TestContext) checkBlanket(want string) error {
	if tc.lastErr != nil {
		return tc.lastErr
	}
	expected := parseList(want)
	if len(tc.blanket) != len(expected) {
		return fmt.Errorf("blanket is %v, expected %v", tc.blanket, expected)
	}
	for i := range expected {
		if tc.blanket[i] != expected[i] {
			return fmt.Errorf("blanket is %v, expected %v", tc.blanket, expected)
		}
	}
	return nil
}

func (tc *TestContext) checkBlanketNotFound() error {
	if tc.lastErr == nil {
		return fmt.Errorf("expected the blanket request to fail")
	}
	var notFound *support.NotFoundError
	if !errors.As(tc.lastErr, &notFound) {
		return fmt.Errorf("expected a not-found error, got %v", tc.lastErr)
	}
	return nil
}
