package wbs

import "github.com/alexanderramin/trestle/internal/domain"

// Node is a WBS item with its ordered children attached.
type Node struct {
	Item     domain.WbsItem
	Children []*Node
}

// BuildHierarchy assembles a flat item list into trees using ParentID.
// Roots and children keep input order. Items whose parent is missing from
// the list are dropped without error. Parent cycles are not detected; nodes
// caught in one never become reachable from a root.
func BuildHierarchy(items []domain.WbsItem) []*Node {
	byID := make(map[string]*Node, len(items))
	for _, item := range items {
		byID[item.ID] = &Node{Item: item, Children: []*Node{}}
	}

	var roots []*Node
	for _, item := range items {
		node := byID[item.ID]
		if item.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*item.ParentID]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// FlatNode is one row of a depth-first walk over a hierarchy.
type FlatNode struct {
	Node   *Node
	Depth  int // 0 for roots
	IsLast bool
}

// Flatten walks roots depth-first, preorder.
func Flatten(roots []*Node) []FlatNode {
	var out []FlatNode
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for i, n := range nodes {
			out = append(out, FlatNode{Node: n, Depth: depth, IsLast: i == len(nodes)-1})
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return out
}

// SortTree orders roots and every children list by WBS code.
func SortTree(roots []*Node) {
	sortNodes(roots)
	for _, n := range roots {
		SortTree(n.Children)
	}
}
