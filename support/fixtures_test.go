package support

import (
	"testing"

	"github.com/CanopyHQ/taproot/bayes"
)

func networkFromEdges(t *testing.T, edges [][2]string) *bayes.Network {
	t.Helper()
	n := bayes.NewNetwork()
	for _, e := range edges {
		if err := n.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := n.Validate(); err != nil {
		t.Fatal(err)
	}
	return n
}

// crimeNetwork is the small whodunit: a motive explains both the crime and
// a psychiatric report, and a DNA match is explained by the crime or by the
// suspect having a twin.
func crimeNetwork(t *testing.T) *bayes.Network {
	t.Helper()
	return networkFromEdges(t, [][2]string{
		{"Motive", "Psych_report"},
		{"Motive", "Crime"},
		{"Crime", "DNA_match"},
		{"Twin", "DNA_match"},
	})
}

// skidNetwork models a car crash: speeding or a pulled handbrake can each
// explain the skid behind the crash and the traces left at the scene.
func skidNetwork(t *testing.T) *bayes.Network {
	t.Helper()
	return networkFromEdges(t, [][2]string{
		{"drunk_passenger", "passenger_pulls_handbrake"},
		{"speeding_in_S_curve", "loss_of_control_over_vehicle"},
		{"passenger_pulls_handbrake", "locking_of_wheels"},
		{"passenger_pulls_handbrake", "drivers_testimony"},
		{"passenger_pulls_handbrake", "handbrake_in_pulled_position"},
		{"loss_of_control_over_vehicle", "skidding"},
		{"locking_of_wheels", "skidding"},
		{"skidding", "crash"},
		{"skidding", "tire_marks_present"},
		{"speeding_in_S_curve", "tire_marks_after_S_curve_suggest_slowing"},
	})
}

// immoralityNetwork has two parents sharing two children and no other
// edges, so every path between A and B runs through an immorality.
func immoralityNetwork(t *testing.T) *bayes.Network {
	t.Helper()
	return networkFromEdges(t, [][2]string{
		{"A", "K1"},
		{"B", "K1"},
		{"A", "K2"},
		{"B", "K2"},
	})
}

func node(variable string, forbidden ...string) Node {
	return Node{Variable: variable, Forbidden: NewForbiddenSet(forbidden...)}
}
