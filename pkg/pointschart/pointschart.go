// Package pointschart reads participant-dependent points tables from a
// spreadsheet. The sheet named SheetName holds one column per field size: the
// header row carries the number of participants and the cells below it the
// points for first, second, third place and so on.
package pointschart

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the chart is read from.
const SheetName = "Points Chart"

// ErrEmptyChart is returned when the sheet has no header row.
var ErrEmptyChart = errors.New("points chart has no header row")

// Read opens the workbook at path and parses its points chart.
func Read(path string) (map[uint64][]float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open points chart %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

// Parse reads a points chart from an xlsx stream.
func Parse(r io.Reader) (map[uint64][]float64, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open points chart: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(f *excelize.File) (map[uint64][]float64, error) {
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyChart
	}

	headers := make([]uint64, len(rows[0]))
	chart := make(map[uint64][]float64, len(rows[0]))
	for i, cell := range rows[0] {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		n, err := parseCount(cell)
		if err != nil {
			col, _ := excelize.ColumnNumberToName(i + 1)
			return nil, fmt.Errorf("header %s1 %q is not a participant count: %w", col, cell, err)
		}
		headers[i] = n
		chart[n] = []float64{}
	}

	for _, row := range rows[1:] {
		for i, cell := range row {
			if i >= len(headers) || headers[i] == 0 {
				continue
			}
			points, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			chart[headers[i]] = append(chart[headers[i]], points)
		}
	}

	return chart, nil
}

// parseCount accepts whole numbers, including the "4.0" form numeric cells
// sometimes carry.
func parseCount(s string) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil && n > 0 {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 1 || f != float64(uint64(f)) {
		return 0, fmt.Errorf("want a positive whole number")
	}
	return uint64(f), nil
}
