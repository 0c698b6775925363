package wbs

import (
	"errors"

	"github.com/alexanderramin/trestle/internal/domain"
)

var (
	ErrSelfDependency      = errors.New("an item cannot depend on itself")
	ErrDuplicateDependency = errors.New("dependency already exists")
	ErrDependencyCycle     = errors.New("dependency would create a cycle")
)

// IsValidDependency reports whether the edge predecessorID → successorID can
// be added to deps: it must not be a self-loop, must not already exist, and
// must not close a cycle.
func IsValidDependency(predecessorID, successorID string, deps []domain.Dependency) bool {
	return CheckDependency(predecessorID, successorID, deps) == nil
}

// CheckDependency is IsValidDependency with the rejection reason.
// deps is only read.
func CheckDependency(predecessorID, successorID string, deps []domain.Dependency) error {
	if predecessorID == successorID {
		return ErrSelfDependency
	}
	candidate := domain.Dependency{PredecessorID: predecessorID, SuccessorID: successorID}
	for _, d := range deps {
		if d.SameEdge(candidate) {
			return ErrDuplicateDependency
		}
	}
	if hasCycle(successorID, deps, candidate) {
		return ErrDependencyCycle
	}
	return nil
}

// hasCycle runs a DFS from start over deps plus extra, reporting whether a
// back-edge (an edge into a node still on the recursion stack) is reachable.
// Each node is expanded at most once.
func hasCycle(start string, deps []domain.Dependency, extra domain.Dependency) bool {
	adj := make(map[string][]string, len(deps)+1)
	for _, d := range deps {
		adj[d.PredecessorID] = append(adj[d.PredecessorID], d.SuccessorID)
	}
	adj[extra.PredecessorID] = append(adj[extra.PredecessorID], extra.SuccessorID)

	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var visit func(id string) bool
	visit = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		for _, next := range adj[id] {
			if onStack[next] {
				return true
			}
			if !visited[next] && visit(next) {
				return true
			}
		}
		onStack[id] = false
		return false
	}
	return visit(start)
}
