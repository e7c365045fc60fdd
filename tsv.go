package flatsheet

import (
	"fmt"
	"io"
	"strings"
)

var tsvEscaper = strings.NewReplacer("\\", "\\\\", "\t", "\\t", "\n", "\\n", "\r", "\\r")

func writeTSV(w io.Writer, rows *Rows, o options) error {
	for row := range rows.All() {
		record := csvRecord(row, o.sanitize)
		for i, cell := range record {
			record[i] = tsvEscaper.Replace(cell)
		}
		if _, err := fmt.Fprintln(w, strings.Join(record, "\t")); err != nil {
			return err
		}
	}
	return nil
}
