package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/standings"
)

// Layout controls the look of the workbook.
type Layout struct {
	// Headers fills the first row, one value per column.
	Headers []string
	// Widths sets column widths from column A on; values <= 0 keep the default.
	Widths   []float64
	FontSize float64
}

// DefaultLayout matches the printed team standings sheet.
func DefaultLayout() Layout {
	return Layout{
		Headers:  []string{"Rank", "Club", "IJS", "6.0", "Total"},
		Widths:   []float64{15, 100, 11, 11, 15},
		FontSize: 32,
	}
}

// WriteXLSX saves clubs as a workbook at path and returns where it was
// written. An existing file is never replaced; the workbook goes to the first
// free "name(i).xlsx" instead. Totals are spreadsheet formulas so the sheet
// stays correct when points are edited by hand.
func WriteXLSX(path string, clubs []standings.ClubTotal, layout Layout) (string, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	for i, width := range layout.Widths {
		if width <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return "", fmt.Errorf("could not set column %s to width %v: %w", col, width, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: layout.FontSize},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", err
	}

	header := make([]interface{}, len(layout.Headers))
	for i, h := range layout.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}

	for i, c := range clubs {
		row := i + 2
		if err := f.SetCellValue(sheet, cell("A", row), i+1); err != nil {
			return "", err
		}
		if err := f.SetCellStr(sheet, cell("B", row), c.Club); err != nil {
			return "", fmt.Errorf("failed to write club name for %s: %w", c.Club, err)
		}
		for col, format := range map[string]competition.ScoringFormat{"C": competition.IJS, "D": competition.SixO} {
			if p, ok := c.PointsFor(format); ok {
				if err := f.SetCellFloat(sheet, cell(col, row), p, -1, 64); err != nil {
					return "", err
				}
			}
		}
		if err := f.SetCellFormula(sheet, cell("E", row), fmt.Sprintf("SUM(C%d:D%d)", row, row)); err != nil {
			return "", fmt.Errorf("failed to write total for %s: %w", c.Club, err)
		}
	}

	lastCol := max(len(layout.Headers), 5)
	last, err := excelize.CoordinatesToCellName(lastCol, len(clubs)+1)
	if err != nil {
		return "", err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	out, err := UniquePath(path)
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(out); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", out, err)
	}
	return out, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
