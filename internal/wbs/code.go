package wbs

import (
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/trestle/internal/domain"
)

// CompareCodes orders hierarchical WBS codes segment by segment.
// Numeric segments compare as numbers, so "1.2" < "1.10". Non-numeric
// segments compare lexically and sort after numeric ones. A code sorts
// before its own extensions ("1.2" < "1.2.1").
func CompareCodes(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b) // "01" vs "1"
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// SortByCode sorts items in place by CompareCodes, falling back to ID.
func SortByCode(items []domain.WbsItem) {
	slices.SortStableFunc(items, func(a, b domain.WbsItem) int {
		if c := CompareCodes(a.Code, b.Code); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func sortNodes(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		if c := CompareCodes(a.Item.Code, b.Item.Code); c != 0 {
			return c
		}
		return strings.Compare(a.Item.ID, b.Item.ID)
	})
}

// CodeDepth returns the number of segments in a code, which is the level
// the code implies.
func CodeDepth(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, ".") + 1
}
