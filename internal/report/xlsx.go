package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/natefinch/atomic"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the cost report is written to.
const SheetName = "Cost Control"

var xlsxHeaders = []any{
	"Code", "Title", "Type", "BAC", "PV", "EV", "AC", "CV", "SV", "CPI", "SPI", "EAC", "Cost Status", "Schedule Status",
}

// WriteXLSX renders the report as an .xlsx workbook.
func WriteXLSX(r *CostReport, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	title := fmt.Sprintf("%s, as of %s", r.ProjectName, r.AsOf.Format(domain.DateLayout))
	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A3", &xlsxHeaders); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "N3", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	statusStyles := map[domain.PerformanceStatus]int{}
	styleFor := func(s domain.PerformanceStatus) (int, error) {
		if id, ok := statusStyles[s]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(wbs.StatusColor(s), "#")}},
		})
		if err != nil {
			return 0, err
		}
		statusStyles[s] = id
		return id, nil
	}

	row := 4
	writeRow := func(code, title, typ string, m wbs.Metrics) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{
			code, title, typ,
			m.BudgetAtCompletion.InexactFloat64(),
			m.PlannedValue.Round(2).InexactFloat64(),
			m.EarnedValue.Round(2).InexactFloat64(),
			m.ActualCost.InexactFloat64(),
			m.CostVariance.Round(2).InexactFloat64(),
			m.ScheduleVariance.Round(2).InexactFloat64(),
			round2(m.CPI),
			round2(m.SPI),
			m.EstimateAtCompl.Round(2).InexactFloat64(),
			string(m.CostStatus),
			string(m.ScheduleStatus),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
		for col, status := range map[int]domain.PerformanceStatus{13: m.CostStatus, 14: m.ScheduleStatus} {
			styleID, err := styleFor(status)
			if err != nil {
				return err
			}
			ref, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetName, ref, ref, styleID); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	for _, line := range r.Lines {
		indent := strings.Repeat("  ", max(line.Level-1, 0))
		if err := writeRow(line.Code, indent+line.Title, string(line.Type), line.Metrics); err != nil {
			return fmt.Errorf("writing %s: %w", line.Code, err)
		}
	}
	if err := writeRow("", "Project total", "", r.Total); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path atomically, so a failed export never
// leaves a truncated file behind.
func SaveXLSX(r *CostReport, path string) error {
	var buf bytes.Buffer
	if err := WriteXLSX(r, &buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
