// Package export renders dashboard data as downloadable workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/trustedhb/qc-server/internal/scoring"
	"github.com/trustedhb/qc-server/internal/service"
)

const sheetName = "Scorecard"

var categoryColumns = []scoring.Category{
	scoring.CategoryBondingRapport,
	scoring.CategoryMagicProblem,
	scoring.CategorySecondAsk,
	scoring.CategoryClosing,
}

// Scorecard renders the dashboard as an xlsx workbook: one row per agent plus
// a team summary block.
func Scorecard(d service.Dashboard) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Agent", "Overall Score", "Status", "Sessions", "Last Evaluation"}
	for _, cat := range categoryColumns {
		headers = append(headers, cat.DisplayName())
	}
	for i, head := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, head); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", endCell, style)
	}

	row := 2
	for _, agent := range d.Agents {
		values := []any{agent.Name, agent.OverallScore, agent.Status, agent.SessionCount}
		if agent.SessionCount > 0 {
			values = append(values, agent.LastEvaluation.Format("2006-01-02"))
		} else {
			values = append(values, "")
		}
		for _, cat := range categoryColumns {
			values = append(values, agent.CategoryScores[cat.Key()])
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, fmt.Errorf("agent cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write agent row: %w", err)
			}
		}
		row++
	}

	row++
	if err := writeTeamBlock(f, row, d); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeTeamBlock(f *excelize.File, row int, d service.Dashboard) error {
	lines := [][2]any{
		{"Team Average", d.Team.TeamAverage},
		{"Total Sessions", d.SessionCount},
	}
	if s := d.Team.GreatestStrength; s != nil {
		lines = append(lines, [2]any{"Greatest Strength", fmt.Sprintf("%s (%.1f%%)", s.Category, s.Score)})
	}
	if t := d.Team.TopRepThisWeek; t != nil {
		lines = append(lines, [2]any{"Top Rep This Week", fmt.Sprintf("%s (%.1f)", t.Name, t.Score)})
	}
	if m := d.Team.MostImproved; m != nil {
		lines = append(lines, [2]any{"Most Improved", fmt.Sprintf("%s (+%.1f)", m.Name, m.Improvement)})
	} else {
		lines = append(lines, [2]any{"Most Improved", "no improvement data"})
	}

	for _, line := range lines {
		labelCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("team label cell: %w", err)
		}
		valueCell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return fmt.Errorf("team value cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, labelCell, line[0]); err != nil {
			return fmt.Errorf("write team label: %w", err)
		}
		if err := f.SetCellValue(sheetName, valueCell, line[1]); err != nil {
			return fmt.Errorf("write team value: %w", err)
		}
		row++
	}
	return nil
}
