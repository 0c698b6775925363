package wbs

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
)

// ErrNotConverged is returned by ResolveConstraints when the pass budget
// runs out before the schedule stops moving.
var ErrNotConverged = errors.New("constraint propagation did not converge")

// CalculateDependencyConstraints pushes each successor's start date to the
// latest predecessor end date plus lag, keeping its duration and deriving
// the new end date. Predecessor dates are read from the input as given, so
// a successor of a moved item is not revisited in the same call: one call
// propagates one level. Edges naming unknown items are ignored.
//
// The returned slice is a copy in input order; items is not modified.
func CalculateDependencyConstraints(items []domain.WbsItem, deps []domain.Dependency) []domain.WbsItem {
	byID := make(map[string]domain.WbsItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	earliest := make(map[string]time.Time)
	for _, d := range deps {
		pred, ok := byID[d.PredecessorID]
		if !ok {
			continue
		}
		if _, ok := byID[d.SuccessorID]; !ok {
			continue
		}
		candidate := domain.AddDays(pred.EndDate, d.Lag)
		if cur, seen := earliest[d.SuccessorID]; !seen || candidate.After(cur) {
			earliest[d.SuccessorID] = candidate
		}
	}

	out := make([]domain.WbsItem, len(items))
	for i, item := range items {
		out[i] = item
		start, constrained := earliest[item.ID]
		if !constrained || !start.After(item.StartDate) {
			continue
		}
		out[i].StartDate = start
		out[i].DeriveEndDate()
	}
	return out
}

// ResolveConstraints repeats CalculateDependencyConstraints until a pass
// moves nothing, returning the settled items and the number of passes run
// (including the final no-op pass). On an acyclic graph this settles in at
// most len(items)+1 passes. maxPasses <= 0 selects that bound.
func ResolveConstraints(items []domain.WbsItem, deps []domain.Dependency, maxPasses int) ([]domain.WbsItem, int, error) {
	if maxPasses <= 0 {
		maxPasses = len(items) + 1
	}
	current := items
	for pass := 1; pass <= maxPasses; pass++ {
		next := CalculateDependencyConstraints(current, deps)
		if !scheduleChanged(current, next) {
			return next, pass, nil
		}
		current = next
	}
	return current, maxPasses, fmt.Errorf("%w after %d passes", ErrNotConverged, maxPasses)
}

// Change records one item moved by constraint propagation.
type Change struct {
	ID            string
	Code          string
	FromStartDate time.Time
	ToStartDate   time.Time
	ToEndDate     time.Time
}

// Diff lists the items whose dates differ between before and after, which
// must be parallel slices as returned by the propagation functions.
func Diff(before, after []domain.WbsItem) []Change {
	var changes []Change
	for i := range before {
		if i >= len(after) {
			break
		}
		b, a := before[i], after[i]
		if b.StartDate.Equal(a.StartDate) && b.EndDate.Equal(a.EndDate) {
			continue
		}
		changes = append(changes, Change{
			ID:            a.ID,
			Code:          a.Code,
			FromStartDate: b.StartDate,
			ToStartDate:   a.StartDate,
			ToEndDate:     a.EndDate,
		})
	}
	return changes
}

func scheduleChanged(before, after []domain.WbsItem) bool {
	return len(Diff(before, after)) > 0
}
