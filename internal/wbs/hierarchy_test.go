package wbs

import (
	"testing"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHierarchy_ThreeLevels(t *testing.T) {
	items := []domain.WbsItem{
		{ID: "1"},
		{ID: "2", ParentID: strPtr("1")},
		{ID: "3", ParentID: strPtr("2")},
	}

	roots := BuildHierarchy(items)

	require.Len(t, roots, 1)
	assert.Equal(t, "1", roots[0].Item.ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "2", roots[0].Children[0].Item.ID)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "3", roots[0].Children[0].Children[0].Item.ID)
	assert.Empty(t, roots[0].Children[0].Children[0].Children)
}

func TestBuildHierarchy_ChildBeforeParentInInput(t *testing.T) {
	items := []domain.WbsItem{
		{ID: "b", ParentID: strPtr("a")},
		{ID: "a"},
	}
	roots := BuildHierarchy(items)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "b", roots[0].Children[0].Item.ID)
}

func TestBuildHierarchy_KeepsInputOrder(t *testing.T) {
	items := []domain.WbsItem{
		{ID: "r1"},
		{ID: "c2", ParentID: strPtr("r1")},
		{ID: "r2"},
		{ID: "c1", ParentID: strPtr("r1")},
	}
	roots := BuildHierarchy(items)
	require.Len(t, roots, 2)
	assert.Equal(t, "r1", roots[0].Item.ID)
	assert.Equal(t, "r2", roots[1].Item.ID)
	assert.Equal(t, "c2", roots[0].Children[0].Item.ID)
	assert.Equal(t, "c1", roots[0].Children[1].Item.ID)
}

func TestBuildHierarchy_OrphansDropped(t *testing.T) {
	items := []domain.WbsItem{
		{ID: "1"},
		{ID: "2", ParentID: strPtr("missing")},
		{ID: "3", ParentID: strPtr("2")},
	}
	roots := BuildHierarchy(items)
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)

	flat := Flatten(roots)
	assert.Len(t, flat, 1, "orphan and its descendants are unreachable")
}

func TestBuildHierarchy_ParentCycleDoesNotCrash(t *testing.T) {
	items := []domain.WbsItem{
		{ID: "root"},
		{ID: "a", ParentID: strPtr("b")},
		{ID: "b", ParentID: strPtr("a")},
	}
	roots := BuildHierarchy(items)
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Item.ID)
	assert.Len(t, Flatten(roots), 1)
}

func TestBuildHierarchy_Empty(t *testing.T) {
	assert.Empty(t, BuildHierarchy(nil))
}

func TestBuildHierarchy_DoesNotMutateInput(t *testing.T) {
	items := []domain.WbsItem{{ID: "1", Code: "1"}, {ID: "2", Code: "1.1", ParentID: strPtr("1")}}
	roots := BuildHierarchy(items)
	roots[0].Item.Code = "changed"
	assert.Equal(t, "1", items[0].Code)
}

func TestFlatten_DepthAndLastFlags(t *testing.T) {
	items := []domain.WbsItem{
		{ID: "1"},
		{ID: "1.1", ParentID: strPtr("1")},
		{ID: "1.2", ParentID: strPtr("1")},
		{ID: "1.2.1", ParentID: strPtr("1.2")},
		{ID: "2"},
	}
	flat := Flatten(BuildHierarchy(items))
	require.Len(t, flat, 5)

	var ids []string
	for _, f := range flat {
		ids = append(ids, f.Node.Item.ID)
	}
	assert.Equal(t, []string{"1", "1.1", "1.2", "1.2.1", "2"}, ids)
	assert.Equal(t, []int{0, 1, 1, 2, 0}, []int{flat[0].Depth, flat[1].Depth, flat[2].Depth, flat[3].Depth, flat[4].Depth})
	assert.False(t, flat[1].IsLast)
	assert.True(t, flat[2].IsLast)
	assert.True(t, flat[3].IsLast)
	assert.True(t, flat[4].IsLast)
}

func TestSortTree_OrdersChildrenByCode(t *testing.T) {
	items := []domain.WbsItem{
		{ID: "a", Code: "1"},
		{ID: "c", Code: "1.10", ParentID: strPtr("a")},
		{ID: "b", Code: "1.2", ParentID: strPtr("a")},
	}
	roots := BuildHierarchy(items)
	SortTree(roots)
	assert.Equal(t, "1.2", roots[0].Children[0].Item.Code)
	assert.Equal(t, "1.10", roots[0].Children[1].Item.Code)
}
