package support

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// BuildAll builds the support graph of every given root concurrently and
// returns them keyed by root. Duplicate roots are built once. The call is
// all-or-nothing: if any build fails, BuildAll returns nil and the first
// error. The network is only read, but must not change while BuildAll runs.
func BuildAll(net Network, roots []string, opts ...Option) (map[string]*Graph, error) {
	graphs := make(map[string]*Graph, len(roots))
	seen := make(map[string]struct{}, len(roots))

	var mu sync.Mutex
	var eg errgroup.Group
	for _, root := range roots {
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		root := root
		eg.Go(func() error {
			g, err := Build(net, root, opts...)
			if err != nil {
				return err
			}
			mu.Lock()
			graphs[root] = g
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}
