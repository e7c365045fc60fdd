package flatsheet

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, rows *Rows, o options) error {
	var all []Row
	for row := range rows.All() {
		all = append(all, row)
	}
	if len(all) == 0 {
		return nil
	}
	enc := yaml.NewEncoder(w)
	if o.indent != "" {
		enc.SetIndent(len(o.indent))
	}
	if err := enc.Encode(all); err != nil {
		return err
	}
	return enc.Close()
}
