package support

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/CanopyHQ/taproot/bayes"
)

// expectedGraph assembles a graph literal for golden comparisons. The first
// node is the root; edges reference nodes by index.
func expectedGraph(nodes []Node, edges [][2]int) *Graph {
	g := newGraph(nodes[0])
	for _, n := range nodes[1:] {
		g.insertNode(n)
	}
	for _, e := range edges {
		g.insertEdge(nodes[e[0]], nodes[e[1]])
	}
	return g
}

func TestBuild_crime(t *testing.T) {
	g, err := Build(crimeNetwork(t), "Crime")
	if err != nil {
		t.Fatal(err)
	}

	nodes := []Node{
		node("Crime", "Crime"),
		node("DNA_match", "Crime", "DNA_match", "Twin"),
		node("Motive", "Crime", "Motive"),
		node("Twin", "Crime", "DNA_match", "Twin"),
		node("Psych_report", "Crime", "Motive", "Psych_report"),
	}
	want := expectedGraph(nodes, [][2]int{
		{1, 0}, // DNA_match supports Crime
		{2, 0}, // Motive supports Crime
		{3, 0}, // Twin supports Crime
		{4, 2}, // Psych_report supports Motive
	})
	if !g.Equal(want) {
		t.Errorf("unexpected crime graph:\n%s", g)
	}
}

func TestBuild_skid(t *testing.T) {
	const (
		ssc   = "speeding_in_S_curve"
		loc   = "loss_of_control_over_vehicle"
		tms   = "tire_marks_after_S_curve_suggest_slowing"
		skid  = "skidding"
		low   = "locking_of_wheels"
		crash = "crash"
		tmp   = "tire_marks_present"
		pph   = "passenger_pulls_handbrake"
		dp    = "drunk_passenger"
		dt    = "drivers_testimony"
		hipp  = "handbrake_in_pulled_position"
	)

	g, err := Build(skidNetwork(t), ssc)
	if err != nil {
		t.Fatal(err)
	}

	nodes := []Node{
		node(ssc, ssc),
		node(loc, loc, ssc),
		node(tms, ssc, tms),
		node(skid, loc, low, skid, ssc),
		node(low, loc, low, skid, ssc),
		node(crash, crash, loc, low, skid, ssc),
		node(tmp, loc, low, skid, ssc, tmp),
		node(pph, loc, low, pph, skid, ssc),
		node(dp, dp, loc, low, pph, skid, ssc),
		node(dt, dt, loc, low, pph, skid, ssc),
		node(hipp, hipp, loc, low, pph, skid, ssc),
	}
	want := expectedGraph(nodes, [][2]int{
		{1, 0},  // loss of control supports speeding
		{2, 0},  // slowing tire marks support speeding
		{3, 1},  // skidding supports loss of control
		{4, 1},  // locked wheels support loss of control
		{5, 3},  // crash supports skidding
		{6, 3},  // tire marks support skidding
		{7, 4},  // handbrake supports locked wheels
		{8, 7},  // drunk passenger supports handbrake
		{9, 7},  // testimony supports handbrake
		{10, 7}, // pulled position supports handbrake
	})
	if !g.Equal(want) {
		t.Errorf("unexpected skid graph:\n%s", g)
	}
}

func TestBuild_singleVariable(t *testing.T) {
	net := bayes.NewNetwork()
	net.AddVariable("only")

	g, err := Build(net, "only")
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Fatalf("expected lone root, got %d nodes and %d edges", g.NodeCount(), g.EdgeCount())
	}
	if !g.Root().Equal(node("only", "only")) {
		t.Errorf("Root() = %v, want (only, {only})", g.Root())
	}
}

func TestBuild_unknownRoot(t *testing.T) {
	g, err := Build(crimeNetwork(t), "Alibi")
	if err == nil {
		t.Fatal("expected error for unknown root")
	}
	if g != nil {
		t.Error("failed build should not return a graph")
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.Variable != "Alibi" {
		t.Errorf("NotFoundError.Variable = %q, want Alibi", notFound.Variable)
	}
}

func TestBuild_deterministic(t *testing.T) {
	first, err := Build(crimeNetwork(t), "Crime")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(crimeNetwork(t), "Crime")
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Error("two builds over the same network should agree")
	}

	// Same network assembled in reverse edge order.
	reversed := networkFromEdges(t, [][2]string{
		{"Twin", "DNA_match"},
		{"Crime", "DNA_match"},
		{"Motive", "Crime"},
		{"Motive", "Psych_report"},
	})
	third, err := Build(reversed, "Crime")
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(third) {
		t.Error("edge insertion order should not influence the result")
	}
}

func TestBuild_immoralityMultiplicity(t *testing.T) {
	g, err := Build(immoralityNetwork(t), "A")
	if err != nil {
		t.Fatal(err)
	}

	nodes := []Node{
		node("A", "A"),
		node("B", "A", "B", "K1"),
		node("B", "A", "B", "K2"),
		node("K1", "A", "B", "K1"),
		node("K2", "A", "B", "K2"),
		node("K1", "A", "B", "K1", "K2"),
		node("K2", "A", "B", "K1", "K2"),
	}
	want := expectedGraph(nodes, [][2]int{
		{1, 0}, // B via shared child K1 supports A
		{2, 0}, // B via shared child K2 supports A
		{3, 0},
		{4, 0},
		{5, 2}, // the deeper K1 supports the K2-flavoured B
		{6, 1}, // the deeper K2 supports the K1-flavoured B
	})
	if !g.Equal(want) {
		t.Errorf("unexpected immorality graph:\n%s", g)
	}
	if got := g.NodesFor("B"); len(got) != 2 {
		t.Errorf("expected the spouse under both shared children, got %d nodes", len(got))
	}
}

func TestBuild_fanIn(t *testing.T) {
	// Diamond: X explains A and B, which jointly explain C. The deepest X
	// node is requested by two branches and must be entered exactly once,
	// supporting both.
	net := networkFromEdges(t, [][2]string{
		{"X", "A"},
		{"X", "B"},
		{"A", "C"},
		{"B", "C"},
	})
	g, err := Build(net, "C")
	if err != nil {
		t.Fatal(err)
	}

	if g.NodeCount() != 10 {
		t.Errorf("NodeCount() = %d, want 10", g.NodeCount())
	}
	if g.EdgeCount() != 10 {
		t.Errorf("EdgeCount() = %d, want 10", g.EdgeCount())
	}
	if got := g.NodesFor("X"); len(got) != 3 {
		t.Fatalf("expected three X nodes, got %v", got)
	}
	shared := node("X", "A", "B", "C", "X")
	if got := g.Supported(shared); len(got) != 2 {
		t.Errorf("shared X node should support two nodes, got %v", got)
	}
}

func TestBuild_forbiddenSetsGrowAlongEdges(t *testing.T) {
	g, err := Build(skidNetwork(t), "speeding_in_S_curve")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range g.Edges() {
		if e.Supporter.Forbidden.Len() <= e.Supported.Forbidden.Len() {
			t.Errorf("edge %s: supporter set %s not larger than supported set %s",
				e, e.Supporter.Forbidden, e.Supported.Forbidden)
		}
		for _, v := range e.Supported.Forbidden.Variables() {
			if !e.Supporter.Forbidden.Contains(v) {
				t.Errorf("edge %s: supporter set %s lost member %s",
					e, e.Supporter.Forbidden, v)
			}
		}
	}
}

func TestBuild_nodesForbidThemselves(t *testing.T) {
	g, err := Build(skidNetwork(t), "skidding")
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range g.Nodes() {
		if !n.Forbidden.Contains(n.Variable) {
			t.Errorf("node %s does not forbid its own variable", n)
		}
	}
}

func TestBuild_acyclic(t *testing.T) {
	for _, root := range []string{"speeding_in_S_curve", "crash", "skidding"} {
		g, err := Build(skidNetwork(t), root)
		if err != nil {
			t.Fatal(err)
		}

		permanent := make(map[string]bool)
		temporary := make(map[string]bool)
		var visit func(n Node)
		visit = func(n Node) {
			key := n.key()
			if permanent[key] {
				return
			}
			if temporary[key] {
				t.Fatalf("root %s: support cycle through %s", root, n)
			}
			temporary[key] = true
			for _, next := range g.Supported(n) {
				visit(next)
			}
			delete(temporary, key)
			permanent[key] = true
		}
		for _, n := range g.Nodes() {
			visit(n)
		}
	}
}

func TestBuild_withLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := Build(crimeNetwork(t), "Crime", WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("expected a debug trace on the supplied logger")
	}
}
