package flatsheet

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(w io.Writer, rows *Rows, o options) error {
	header, data := collect(rows)
	if header == nil {
		return nil
	}
	aligns := columnAligns(len(header), data)

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if o.title != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(o.title)); err != nil {
			return err
		}
	}
	if err := writeHTMLSection(w, "thead", "th", []Row{header}, aligns); err != nil {
		return err
	}
	if err := writeHTMLSection(w, "tbody", "td", data, aligns); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeHTMLSection(w io.Writer, section, cellTag string, rows []Row, aligns []Alignment) error {
	if _, err := fmt.Fprintf(w, "  <%s>\n", section); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for i, cell := range textRow(row) {
			style := alignStyle(aligns, i)
			if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", cellTag, style, html.EscapeString(cell), cellTag); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  </%s>\n", section)
	return err
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
