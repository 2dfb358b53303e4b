package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
)

// Columns that trigger the narrative summary section.
const (
	colTotalHouseholds = "total_rural_households"
	colCurrentTap      = "households_with_tap_water_current"
)

const defaultTitle = "Jal Jeevan Mission Report"

// ToCSV encodes the table as delimited text: a header row followed by
// data rows, in input column order. Numeric cells are written
// losslessly so the output parses back to the same values.
func ToCSV(t Table) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return "", err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = plainString(cell)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToExcel encodes the table as a single-sheet XLSX workbook with a
// header row, returned as raw bytes ready to serve as a download.
func ToExcel(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Data"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, colName, colName, 18); err != nil {
			return nil, err
		}
	}

	for r, row := range t.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if value == nil {
				continue
			}
			if ts, ok := value.(time.Time); ok {
				value = ts.Format("2006-01-02")
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Narrative renders the table as a Markdown-style report: title,
// generation timestamp, a summary section when household columns are
// present, and a detailed data table. Integer-valued numbers get
// thousands separators, fractional numbers render as percentages with
// two decimals, missing values render as "N/A".
func Narrative(t Table, title string) string {
	return narrative(t, title, time.Now())
}

func narrative(t Table, title string, now time.Time) string {
	if title == "" {
		title = defaultTitle
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", title)
	fmt.Fprintf(&buf, "Generated on: %s\n\n", now.Format("2006-01-02 15:04:05"))

	if t.hasColumn(colTotalHouseholds) && t.hasColumn(colCurrentTap) {
		total := sumColumn(t, colTotalHouseholds)
		current := sumColumn(t, colCurrentTap)
		var coverage float64
		if total > 0 {
			coverage = float64(current) / float64(total) * 100
		}

		buf.WriteString("## Summary\n")
		fmt.Fprintf(&buf, "Total Rural Households: %s\n", humanize.Comma(total))
		fmt.Fprintf(&buf, "Households with Tap Water: %s\n", humanize.Comma(current))
		fmt.Fprintf(&buf, "Overall Coverage: %.2f%%\n\n", coverage)
	}

	buf.WriteString("## Detailed Data\n\n")
	buf.WriteString("| ")
	for i, col := range t.Columns {
		if i > 0 {
			buf.WriteString(" | ")
		}
		buf.WriteString(col)
	}
	buf.WriteString(" |\n| ")
	for i := range t.Columns {
		if i > 0 {
			buf.WriteString(" | ")
		}
		buf.WriteString("---")
	}
	buf.WriteString(" |\n")

	for _, row := range t.Rows {
		buf.WriteString("| ")
		for i, cell := range row {
			if i > 0 {
				buf.WriteString(" | ")
			}
			buf.WriteString(narrativeCell(cell))
		}
		buf.WriteString(" |\n")
	}

	return buf.String()
}

// narrativeCell applies the report formatting rules to one value.
func narrativeCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "N/A"
	case int:
		return humanize.Comma(int64(val))
	case int64:
		return humanize.Comma(val)
	case uint:
		return humanize.Comma(int64(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "N/A"
		}
		if val == math.Trunc(val) {
			return humanize.Comma(int64(val))
		}
		return fmt.Sprintf("%.2f%%", val)
	case *int64:
		if val == nil {
			return "N/A"
		}
		return narrativeCell(*val)
	case *float64:
		if val == nil {
			return "N/A"
		}
		return narrativeCell(*val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// plainString renders a cell for CSV output without report formatting.
func plainString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case *int64:
		if val == nil {
			return ""
		}
		return strconv.FormatInt(*val, 10)
	case *float64:
		if val == nil {
			return ""
		}
		return strconv.FormatFloat(*val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// sumColumn totals the integral values of one column; missing and
// non-finite cells contribute nothing.
func sumColumn(t Table, name string) int64 {
	idx := t.columnIndex(name)
	if idx < 0 {
		return 0
	}
	var sum int64
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		switch val := row[idx].(type) {
		case int:
			sum += int64(val)
		case int64:
			sum += val
		case float64:
			if !math.IsNaN(val) && !math.IsInf(val, 0) {
				sum += int64(val)
			}
		case *int64:
			if val != nil {
				sum += *val
			}
		case *float64:
			if val != nil && !math.IsNaN(*val) && !math.IsInf(*val, 0) {
				sum += int64(*val)
			}
		}
	}
	return sum
}
