package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ga-dashboard-service/internal/dashboard/core/domain"
)

const (
	SheetKPI    = "KPI"
	SheetTrend  = "Trend"
	SheetTopGeo = "TopGeo"
	SheetMix    = "Mix"
)

// Export renders the dashboard panels into a workbook with one sheet per panel.
func Export(d *domain.Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	// KPI replaces the default sheet so the workbook opens on it.
	if err := f.SetSheetName("Sheet1", SheetKPI); err != nil {
		return nil, err
	}
	kpiRows := [][]any{
		{"yesterday", d.KPI.Yesterday},
		{"last7", d.KPI.Last7},
		{"wow_percent", d.KPI.WeekOverWeek},
		{"cache_key", d.CacheKey},
		{"fetched_at", d.FetchedAt.Format("2006-01-02 15:04:05")},
	}
	if err := writeSheet(f, SheetKPI, []string{"metric", "value"}, kpiRows, headerStyle); err != nil {
		return nil, err
	}

	trendRows := make([][]any, 0, len(d.Trend.Series))
	for _, p := range d.Trend.Series {
		trendRows = append(trendRows, []any{p.Date, p.Events})
	}
	if err := addSheet(f, SheetTrend, []string{"date", "events"}, trendRows, headerStyle); err != nil {
		return nil, err
	}

	geoRows := make([][]any, 0, len(d.TopGeo.Ranking))
	for i, g := range d.TopGeo.Ranking {
		geoRows = append(geoRows, []any{i + 1, g.Label, g.Events})
	}
	if err := addSheet(f, SheetTopGeo, []string{"rank", d.TopGeo.Title, "events"}, geoRows, headerStyle); err != nil {
		return nil, err
	}

	mixHeader := append([]string{"date"}, d.Mix.TopEvents...)
	mixHeader = append(mixHeader, domain.OtherBucket)
	mixRows := make([][]any, 0, len(d.Mix.Stack))
	for _, day := range d.Mix.Stack {
		row := []any{day.Date}
		for _, name := range d.Mix.TopEvents {
			row = append(row, day.Events[name])
		}
		row = append(row, day.Other)
		mixRows = append(mixRows, row)
	}
	if err := addSheet(f, SheetMix, mixHeader, mixRows, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, header []string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeSheet(f, name, header, rows, headerStyle)
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]any, headerStyle int) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}

	for i := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, col, col, 18); err != nil {
			return err
		}
	}
	return nil
}
