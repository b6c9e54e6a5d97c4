package support

import "sort"

// MarkovBlanket returns the Markov blanket of v: its parents, its children,
// and the other parents of its children, with v itself excluded. The result
// is sorted and duplicate-free. A variable the network does not contain
// yields a NotFoundError.
func MarkovBlanket(net Network, v string) ([]string, error) {
	if !net.Contains(v) {
		return nil, &NotFoundError{Variable: v}
	}
	return blanketOf(net, v), nil
}

// blanketOf computes the blanket of a variable known to exist.
func blanketOf(net Network, v string) []string {
	members := make(map[string]struct{})
	for _, p := range net.Parents(v) {
		members[p] = struct{}{}
	}
	for _, c := range net.Children(v) {
		members[c] = struct{}{}
		for _, spouse := range net.Parents(c) {
			members[spouse] = struct{}{}
		}
	}
	delete(members, v)
	if len(members) == 0 {
		return nil
	}

	out := make([]string, 0, len(members))
	for m := range members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
