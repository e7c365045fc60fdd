package flatsheet

import (
	"encoding/json"
	"io"
)

// writeJSON streams the table as a JSON array of row arrays.
func writeJSON(w io.Writer, rows *Rows, o options) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	for row := range rows.All() {
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if o.indent != "" {
			enc.SetIndent("", o.indent)
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
