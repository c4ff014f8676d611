// Package engine evaluates the spectra of a sampled potential: reflection and
// scattering coefficients on a frequency grid, bound states with their norming
// constants, and the main and auxiliary spectra of periodic potentials.
//
// Every sweep is data-parallel over its nodes or candidates. Results land in
// per-index slots, so the output does not depend on scheduling.
package engine

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Nodes below this count per worker are not worth a goroutine.
const minChunk = 4

// parallelFor calls fn(i) for every i in [0, n) on at most workers goroutines
// (GOMAXPROCS when workers ≤ 0) and returns the first error.
func parallelFor(workers, n int, fn func(i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n/minChunk)
	if workers <= 1 {
		for i := range n {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
