package flatsheet

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, rows *Rows) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for row := range rows.All() {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
