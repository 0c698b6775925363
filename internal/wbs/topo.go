package wbs

import (
	"slices"

	"github.com/alexanderramin/trestle/internal/domain"
)

// TopologicalOrder returns item IDs so that every predecessor precedes its
// successors. Ready items are taken in WBS code order. Edges naming unknown
// items are ignored. If the graph contains a cycle, ErrDependencyCycle is
// returned along with the IDs ordered before the cycle blocked progress.
func TopologicalOrder(items []domain.WbsItem, deps []domain.Dependency) ([]string, error) {
	codes := make(map[string]string, len(items))
	for _, item := range items {
		codes[item.ID] = item.Code
	}

	indegree := make(map[string]int, len(items))
	adj := make(map[string][]string)
	for _, d := range deps {
		if _, ok := codes[d.PredecessorID]; !ok {
			continue
		}
		if _, ok := codes[d.SuccessorID]; !ok {
			continue
		}
		adj[d.PredecessorID] = append(adj[d.PredecessorID], d.SuccessorID)
		indegree[d.SuccessorID]++
	}

	byCode := func(a, b string) int {
		if c := CompareCodes(codes[a], codes[b]); c != 0 {
			return c
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	}

	var ready []string
	for _, item := range items {
		if indegree[item.ID] == 0 {
			ready = append(ready, item.ID)
		}
	}
	slices.SortFunc(ready, byCode)

	order := make([]string, 0, len(items))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for _, next := range adj[id] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
		slices.SortFunc(ready, byCode)
	}

	if len(order) != len(items) {
		return order, ErrDependencyCycle
	}
	return order, nil
}
