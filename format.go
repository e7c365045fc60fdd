package flatsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnserializable    = errors.New("value cannot be serialized")
	ErrConsumed          = errors.New("rows already consumed")
	ErrInvalidHeader     = errors.New("invalid header")
)

// Format represents an output format.
type Format string

const (
	CSV      Format = "csv"
	TSV      Format = "tsv"
	XLSX     Format = "xlsx"
	Table    Format = "table"
	Markdown Format = "markdown"
	HTML     Format = "html"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
)

var formats = []Format{CSV, TSV, XLSX, Table, Markdown, HTML, JSON, JSONL, YAML}

var contentTypes = map[Format]string{
	CSV:      "text/csv",
	TSV:      "text/tab-separated-values",
	XLSX:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	Table:    "text/plain; charset=utf-8",
	Markdown: "text/markdown; charset=utf-8",
	HTML:     "text/html; charset=utf-8",
	JSON:     "application/json",
	JSONL:    "application/x-ndjson",
	YAML:     "application/yaml",
}

var extensions = map[Format]string{
	CSV:      ".csv",
	TSV:      ".tsv",
	XLSX:     ".xlsx",
	Table:    ".txt",
	Markdown: ".md",
	HTML:     ".html",
	JSON:     ".json",
	JSONL:    ".jsonl",
	YAML:     ".yaml",
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// ContentType returns the media type of the format.
func (f Format) ContentType() string { return contentTypes[f] }

// Extension returns the file extension of the format, including the dot.
func (f Format) Extension() string { return extensions[f] }

// Spreadsheet reports whether f is a spreadsheet format (CSV or XLSX).
func (f Format) Spreadsheet() bool { return f == CSV || f == XLSX }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	if s == "md" {
		return Markdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorder parses a border style name: rounded, none, ascii, heavy or
// double.
func ParseBorder(s string) (BorderStyle, error) {
	b, ok := borderNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown border style %q", s)
	}
	return b, nil
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// DefaultSheetName names the single worksheet of XLSX output.
const DefaultSheetName = "Report Worksheet"

type options struct {
	delimiter rune
	sanitize  bool
	border    BorderStyle
	title     string
	maxWidth  int
	sheet     string
	indent    string
}

// Option configures an encoder.
type Option func(*options)

// WithDelimiter sets the CSV field delimiter. Default: comma.
func WithDelimiter(r rune) Option {
	return func(o *options) { o.delimiter = r }
}

// WithSanitize quotes text cells starting with a formula trigger (=, +, -,
// @, tab, carriage return, |) in CSV, TSV and XLSX output.
func WithSanitize() Option {
	return func(o *options) { o.sanitize = true }
}

// WithBorder sets the table border style. Default: BorderRounded.
func WithBorder(b BorderStyle) Option {
	return func(o *options) { o.border = b }
}

// WithTitle renders a title above the table.
func WithTitle(t string) Option {
	return func(o *options) { o.title = t }
}

// WithMaxWidth truncates table cells wider than n with "...". Zero means no
// limit.
func WithMaxWidth(n int) Option {
	return func(o *options) { o.maxWidth = n }
}

// WithSheetName names the XLSX worksheet. Default: [DefaultSheetName].
func WithSheetName(name string) Option {
	return func(o *options) { o.sheet = name }
}

// WithIndent sets JSON and YAML indentation.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

func buildOptions(opts []Option) options {
	o := options{
		delimiter: ',',
		border:    BorderRounded,
		sheet:     DefaultSheetName,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Write encodes rows in format f and writes them to w.
//
// CSV, TSV, JSON, JSONL and XLSX write each row as it is produced, so a table
// with an explicit header streams end to end. Table, Markdown, HTML and YAML
// need every row for layout and collect them first. Nil rows write nothing.
func Write(w io.Writer, f Format, rows *Rows, opts ...Option) error {
	o := buildOptions(opts)
	var err error
	switch f {
	case CSV:
		err = writeCSV(w, rows, o)
	case TSV:
		err = writeTSV(w, rows, o)
	case XLSX:
		err = writeXLSX(w, rows, o)
	case Table:
		err = writeTable(w, rows, o)
	case Markdown:
		err = writeMarkdown(w, rows)
	case HTML:
		err = writeHTML(w, rows, o)
	case JSON:
		err = writeJSON(w, rows, o)
	case JSONL:
		err = writeJSONL(w, rows)
	case YAML:
		err = writeYAML(w, rows, o)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return err
	}
	return rows.Err()
}

// Marshal encodes rows in format f and returns the bytes.
func Marshal(f Format, rows *Rows, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, rows, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// collect drains rows and splits them into the header row and data rows.
func collect(rows *Rows) (Row, []Row) {
	var all []Row
	for row := range rows.All() {
		all = append(all, row)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], all[1:]
}

func textRow(row Row) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = FormatCell(c)
	}
	return out
}
