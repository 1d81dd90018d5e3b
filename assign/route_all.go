package assign

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/ttpr0/go-catchment/graph"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slog"
)

// Assigns every origin to its nearest facility using up to workers
// goroutines (GOMAXPROCS if workers <= 0).
//
// The result holds one Assignment per origin in input order and does not
// depend on the number of workers. Fails with graph.ErrConfiguration before
// any routing if facilities is empty or an origin or facility node is not
// part of g.
func RouteAll(g graph.IGraph, origins Array[Origin], facilities Array[Facility], workers int) (Array[Assignment], error) {
	first, err := NewRouter(g, facilities)
	if err != nil {
		return nil, err
	}
	for _, origin := range origins {
		if _, ok := g.GetNodeIndex(origin.Node); !ok {
			return nil, fmt.Errorf("%w: origin %q references unknown node %d", graph.ErrConfiguration, origin.ID, origin.Node)
		}
	}

	results := NewArray[Assignment](origins.Length())
	if origins.Length() == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > origins.Length() {
		workers = origins.Length()
	}
	slog.Info(fmt.Sprintf("routing %v origins to %v facilities using %v workers", origins.Length(), facilities.Length(), workers))

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	origin_chan := make(chan int, origins.Length())
	for i := 0; i < origins.Length(); i++ {
		origin_chan <- i
	}
	close(origin_chan)

	var err_mu sync.Mutex
	var first_err error
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		router := first
		if w > 0 {
			router, err = NewRouter(g, facilities)
			if err != nil {
				return nil, err
			}
		}
		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			for i := range origin_chan {
				assignment, err := router.Assign(origins[i])
				if err != nil {
					err_mu.Lock()
					if first_err == nil {
						first_err = err
					}
					err_mu.Unlock()
					continue
				}
				results[i] = assignment
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()
	if first_err != nil {
		return nil, first_err
	}

	routed, unreachable := Summarize(results)
	slog.Info(fmt.Sprintf("routed %v origins, %v unreachable", routed, unreachable))
	return results, nil
}

// Number of reachable and unreachable origins.
func Summarize(assignments Array[Assignment]) (int, int) {
	routed := 0
	unreachable := 0
	for _, a := range assignments {
		if a.Reachable {
			routed += 1
		} else {
			unreachable += 1
		}
	}
	return routed, unreachable
}
