package flatsheet

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, rows *Rows, o options) error {
	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter
	for row := range rows.All() {
		if err := cw.Write(csvRecord(row, o.sanitize)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(row Row, sanitize bool) []string {
	record := make([]string, len(row))
	for i, c := range row {
		if s, ok := c.(string); ok && sanitize {
			record[i] = sanitizeCell(s)
			continue
		}
		record[i] = FormatCell(c)
	}
	return record
}
