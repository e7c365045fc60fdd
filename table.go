package flatsheet

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// tableLayout is the measured form of a table ready to be drawn.
type tableLayout struct {
	header []string
	rows   [][]string
	widths []int
	aligns []Alignment
}

func writeTable(w io.Writer, rows *Rows, o options) error {
	header, data := collect(rows)
	if header == nil {
		return nil
	}
	l := layoutTable(header, data, o.maxWidth)
	if o.border == BorderNone {
		return renderPlainTable(w, l)
	}
	bc, ok := borderSets[o.border]
	if !ok {
		bc = borderSets[BorderRounded]
	}
	return renderBorderedTable(w, l, o.title, bc)
}

func layoutTable(header Row, data []Row, maxWidth int) tableLayout {
	l := tableLayout{
		header: tableText(header),
		rows:   make([][]string, len(data)),
		widths: make([]int, len(header)),
		aligns: columnAligns(len(header), data),
	}
	for i, row := range data {
		l.rows[i] = tableText(row)
	}
	for i, h := range l.header {
		l.widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range l.rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(l.widths) && w > l.widths[i] {
				l.widths[i] = w
			}
		}
	}
	if maxWidth > 0 {
		for i := range l.widths {
			l.widths[i] = min(l.widths[i], maxWidth)
		}
	}
	return l
}

// tableText formats a row for a single-line cell layout.
func tableText(row Row) []string {
	cells := textRow(row)
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return cells
}

// columnAligns right-aligns columns whose non-nil cells are all numbers.
func columnAligns(numCols int, data []Row) []Alignment {
	aligns := make([]Alignment, numCols)
	for col := range numCols {
		numeric, seen := true, false
		for _, row := range data {
			if col >= len(row) || row[col] == nil {
				continue
			}
			seen = true
			if !isNumeric(row[col]) {
				numeric = false
				break
			}
		}
		if numeric && seen {
			aligns[col] = AlignRight
		}
	}
	return aligns
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, l tableLayout) error {
	if err := writePlainRow(w, l.header, l.widths, l.aligns); err != nil {
		return err
	}
	sep := make([]string, len(l.widths))
	for i, width := range l.widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
		return err
	}
	for _, row := range l.rows {
		if err := writePlainRow(w, row, l.widths, l.aligns); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = formatTableCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, l tableLayout, title string, bc borderChars) error {
	if title != "" {
		l.widths = fitTitle(l.widths, runewidth.StringWidth(title))
		if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(l.widths) - 2
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, alignCell(title, inner, AlignCenter), bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}

	if err := drawBorderedRow(w, l.header, l.widths, l.aligns, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range l.rows {
		if err := drawBorderedRow(w, row, l.widths, l.aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, l.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// fitTitle widens the last column so the title fits between the borders.
func fitTitle(widths []int, titleWidth int) []int {
	short := titleWidth + 2 - tableInnerWidth(widths)
	if short <= 0 || len(widths) == 0 {
		return widths
	}
	out := slices.Clone(widths)
	out[len(out)-1] += short
	return out
}

// tableInnerWidth returns the width between the outer vertical borders. Each
// cell contributes its width plus one space of padding per side, and cells
// are separated by a single border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(formatTableCell(cells[i], width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
