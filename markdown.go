package flatsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func writeMarkdown(w io.Writer, rows *Rows) error {
	header, data := collect(rows)
	if header == nil {
		return nil
	}
	head := markdownText(header)
	body := make([][]string, len(data))
	for i, row := range data {
		body[i] = markdownText(row)
	}

	// Minimum 3 so the separator can carry alignment markers.
	widths := make([]int, len(head))
	for i, col := range head {
		widths[i] = max(3, runewidth.StringWidth(col))
	}
	for _, row := range body {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	aligns := columnAligns(len(head), data)

	if err := writeMarkdownRow(w, head, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		if aligns[i] == AlignRight {
			sep[i] = strings.Repeat("-", width-1) + ":"
		} else {
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range body {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func markdownText(row Row) []string {
	cells := textRow(row)
	for i, c := range cells {
		cells[i] = markdownEscaper.Replace(c)
	}
	return cells
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
