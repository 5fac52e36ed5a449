package scorecardservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
)

const exportSheet = "Scorecard"

// ExportXLSX renders the scorecard as a workbook: a header row, one row per
// shooter and a Total Targets row.
func (s *ScorecardService) ExportXLSX(ctx context.Context, season int, team string, opts scorecarddomain.Options) ([]byte, error) {
	view, err := s.GetScorecard(ctx, season, team, opts)
	if err != nil {
		return nil, err
	}
	return WriteXLSX(view)
}

// WriteXLSX builds the workbook for view.
func WriteXLSX(view *scorecarddomain.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"Shooter"}
	for _, w := range view.Weeks {
		header = append(header, fmt.Sprintf("Wk %d", w))
	}
	header = append(header, "Weeks Shot", "Average")
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range view.Rows {
		row := []any{r.Name}
		for w := range view.Weeks {
			if r.Weeks[w] == nil {
				row = append(row, "-")
			} else {
				row = append(row, *r.Weeks[w])
			}
		}
		row = append(row, r.WeeksShot, r.Average)
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	totals := []any{"Total Targets"}
	for _, t := range view.TotalTargets {
		totals = append(totals, t)
	}
	totalRow := len(view.Rows) + 2
	if err := setRow(f, totalRow, totals); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(exportSheet, totalRow, totalRow, bold); err != nil {
		return nil, fmt.Errorf("failed to style totals: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
