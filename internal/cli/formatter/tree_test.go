package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(code string, children ...*wbs.Node) *wbs.Node {
	return &wbs.Node{
		Item:     domain.WbsItem{Code: code, Title: "Item " + code, Type: domain.WbsWorkPackage},
		Children: children,
	}
}

func TestTreeItemsFromNodes_Connectors(t *testing.T) {
	roots := []*wbs.Node{
		node("1",
			node("1.1", node("1.1.1")),
			node("1.2", node("1.2.1")),
		),
		node("2"),
	}

	items := TreeItemsFromNodes(wbs.Flatten(roots))
	require.Len(t, items, 6)

	want := map[string]string{
		"1":     "",
		"1.1":   treeBranch,
		"1.1.1": treePipe + treeCorner,
		"1.2":   treeCorner,
		"1.2.1": treeBlank + treeCorner,
		"2":     "",
	}
	for _, it := range items {
		assert.Equal(t, want[it.Code], it.Prefix, "prefix for %s", it.Code)
	}
}

func TestRenderTree(t *testing.T) {
	done := node("1.1")
	done.Item.PercentComplete = 100
	started := node("1.2")
	started.Item.PercentComplete = 40
	roots := []*wbs.Node{node("1", done, started)}

	out := FormatWbsTree(roots)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Item 1")
	assert.Contains(t, lines[1], "✔")
	assert.Contains(t, lines[2], "▶")
	assert.Contains(t, lines[2], "[ ")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTree(nil))
	assert.Contains(t, FormatWbsTree(nil), "No WBS items")
}
