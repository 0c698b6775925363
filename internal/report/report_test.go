package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport(t *testing.T) *CostReport {
	t.Helper()
	proj := testutil.NewTestProject("Harbour")
	root := testutil.NewTestWbsItem(proj.ID, "1",
		testutil.WithType(domain.WbsSummary),
		testutil.WithSchedule("2025-01-01", 20))
	late := testutil.NewTestWbsItem(proj.ID, "1.10",
		testutil.WithParent(root),
		testutil.WithType(domain.WbsWorkPackage),
		testutil.WithSchedule("2025-01-01", 10),
		testutil.WithCosts("1000", "1200"),
		testutil.WithPercentComplete(80))
	early := testutil.NewTestWbsItem(proj.ID, "1.2",
		testutil.WithParent(root),
		testutil.WithType(domain.WbsWorkPackage),
		testutil.WithSchedule("2025-01-01", 10),
		testutil.WithCosts("500", "100"),
		testutil.WithPercentComplete(40))
	task := testutil.NewTestWbsItem(proj.ID, "1.2.1", testutil.WithParent(early))

	items := []domain.WbsItem{*late, *task, *root, *early}
	return BuildCostReport(proj, items, testutil.Date("2025-01-11"))
}

func TestBuildCostReport_LinesOrderedAndFiltered(t *testing.T) {
	r := sampleReport(t)

	require.Len(t, r.Lines, 3)
	assert.Equal(t, "1", r.Lines[0].Code)
	assert.Equal(t, "1.2", r.Lines[1].Code)
	assert.Equal(t, "1.10", r.Lines[2].Code)
	assert.Equal(t, domain.PerformanceBehind, r.Lines[2].Metrics.CostStatus)
	assert.Equal(t, domain.PerformanceExcellent, r.Lines[1].Metrics.CostStatus)
}

func TestBuildCostReport_TotalRollsUpPackages(t *testing.T) {
	r := sampleReport(t)

	assert.Equal(t, "1500", r.Total.BudgetAtCompletion.String())
	assert.Equal(t, "1300", r.Total.ActualCost.String())
	assert.Equal(t, "1000", r.Total.EarnedValue.String())
	assert.Equal(t, "1500", r.Total.PlannedValue.String(), "both packages finished by the as-of date")
}

func TestBuildCostReport_DoesNotReorderInput(t *testing.T) {
	proj := testutil.NewTestProject("Keep")
	b := testutil.NewTestWbsItem(proj.ID, "2", testutil.WithType(domain.WbsWorkPackage))
	a := testutil.NewTestWbsItem(proj.ID, "1", testutil.WithType(domain.WbsWorkPackage))
	items := []domain.WbsItem{*b, *a}

	BuildCostReport(proj, items, testutil.Date("2024-01-03"))
	assert.Equal(t, "2", items[0].Code)
}

func TestWriteXLSX(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(r, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(SheetName, "J3")
	require.NoError(t, err)
	assert.Equal(t, "CPI", header)

	code, err := f.GetCellValue(SheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "1.10", code)

	title, err := f.GetCellValue(SheetName, "B5")
	require.NoError(t, err)
	assert.Equal(t, "  Item 1.2", title, "children are indented by level")

	status, err := f.GetCellValue(SheetName, "M6")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PerformanceBehind), status)

	total, err := f.GetCellValue(SheetName, "B7")
	require.NoError(t, err)
	assert.Equal(t, "Project total", total)
}

func TestSaveXLSX_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, SaveXLSX(sampleReport(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}
