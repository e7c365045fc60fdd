package flatsheet

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// writeXLSX streams rows into a workbook with a single worksheet. The header
// row is written like any other row. Nil rows write nothing; an empty table
// still produces a valid, empty workbook.
func writeXLSX(w io.Writer, rows *Rows, o options) error {
	if rows == nil {
		return nil
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if def := f.GetSheetName(0); def != o.sheet {
		if err := f.SetSheetName(def, o.sheet); err != nil {
			return fmt.Errorf("naming worksheet: %w", err)
		}
	}
	sw, err := f.NewStreamWriter(o.sheet)
	if err != nil {
		return fmt.Errorf("opening worksheet: %w", err)
	}

	n := 0
	for row := range rows.All() {
		n++
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for i, c := range row {
			values[i] = xlsxCell(c, o.sanitize)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("writing row %d: %w", n, err)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing worksheet: %w", err)
	}
	_, err = f.WriteTo(w)
	return err
}

// xlsxCell keeps numbers and booleans native so spreadsheets can compute
// with them. Nil becomes an empty cell.
func xlsxCell(v any, sanitize bool) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if sanitize {
			return sanitizeCell(val)
		}
		return val
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	}
	return FormatCell(v)
}
