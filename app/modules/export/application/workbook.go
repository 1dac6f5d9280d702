package exportservice

import (
	"fmt"

	exportdomain "github.com/Black-And-White-Club/belote-bot/app/modules/export/domain"
	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	"github.com/xuri/excelize/v2"
)

const (
	teamAHeaderFill   = "4169E1"
	teamBHeaderFill   = "E34234"
	summaryHeaderFill = "4682B4"
	winnerFont        = "008000"
)

var columnWidths = []float64{5, 10, 7, 10, 10, 12, 10, 15, 10, 10}

// BuildWorkbook lays a session out as one sheet per team plus a summary.
func BuildWorkbook(snapshot *sessionservice.SessionSnapshot) ([]byte, error) {
	if snapshot == nil || len(snapshot.Rounds) == 0 {
		return nil, exportdomain.ErrNothingToExport
	}

	rounds := make([]scoringdomain.RoundRecord, len(snapshot.Rounds))
	for i, view := range snapshot.Rounds {
		rounds[i] = view.RoundRecord
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetA := exportdomain.SheetName(snapshot.TeamA.Name)
	sheetB := exportdomain.SheetName(snapshot.TeamB.Name, sheetA)

	if err := f.SetSheetName(f.GetSheetName(0), sheetA); err != nil {
		return nil, fmt.Errorf("failed to name sheet %q: %w", sheetA, err)
	}
	if err := writeTeamSheet(f, sheetA, teamAHeaderFill, exportdomain.TeamRows(rounds, scoringdomain.SideA)); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetB); err != nil {
		return nil, fmt.Errorf("failed to add sheet %q: %w", sheetB, err)
	}
	if err := writeTeamSheet(f, sheetB, teamBHeaderFill, exportdomain.TeamRows(rounds, scoringdomain.SideB)); err != nil {
		return nil, err
	}
	if err := writeSummary(f, snapshot); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerStyle(f *excelize.File, fill string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
	})
}

func writeTeamSheet(f *excelize.File, sheet, fill string, rows [][]any) error {
	header := make([]any, len(exportdomain.Columns))
	for i, c := range exportdomain.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}

	style, err := headerStyle(f, fill)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(exportdomain.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet, err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s of %q: %w", col, sheet, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, snapshot *sessionservice.SessionSnapshot) error {
	sheet := exportdomain.SummarySheet
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	cells := []struct {
		cell  string
		value any
	}{
		{"A1", "Équipe"},
		{"B1", "Score"},
		{"A2", snapshot.TeamA.Name},
		{"B2", snapshot.TotalA},
		{"A3", snapshot.TeamB.Name},
		{"B3", snapshot.TotalB},
		{"A4", "Vainqueur"},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheet, c.cell, c.value); err != nil {
			return fmt.Errorf("failed to write summary cell %s: %w", c.cell, err)
		}
	}

	winner := snapshot.TeamB.Name
	if exportdomain.Leader(snapshot.Winner, snapshot.TotalA, snapshot.TotalB) == scoringdomain.SideA {
		winner = snapshot.TeamA.Name
	}
	if err := f.SetCellValue(sheet, "B4", winner); err != nil {
		return fmt.Errorf("failed to write winner: %w", err)
	}

	header, err := headerStyle(f, summaryHeaderFill)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", header); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}
	highlight, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: winnerFont}})
	if err != nil {
		return fmt.Errorf("failed to create winner style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "B4", "B4", highlight); err != nil {
		return fmt.Errorf("failed to style winner: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 10)
}
