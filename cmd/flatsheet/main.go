// Command flatsheet converts nested records (JSON, YAML, XML, ...) into
// spreadsheet-friendly tables (CSV, XLSX, ...).
//
// Usage:
//
//	flatsheet [flags]
//
// Flags may also be set through FLATSHEET_* environment variables or a plain
// config file passed with -config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/peterbourgon/ff/v3"

	"github.com/bjaus/flatsheet"
	"github.com/bjaus/flatsheet/decode"
	"github.com/bjaus/flatsheet/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	in          string
	out         string
	inputFormat string
	format      string
	header      string
	headerFile  string
	compact     bool
	sanitize    bool
	delimiter   string
	border      string
	title       string
	maxWidth    int
	sheet       string
	compress    string
	logLevel    string
	logFormat   string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("flatsheet", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.in, "in", "-", "Input file (- for stdin)")
	fs.StringVar(&o.out, "out", "-", "Output file (- for stdout)")
	fs.StringVar(&o.inputFormat, "input-format", "", "Input format: json, jsonl, yaml, xml, plist, msgpack, parquet (default: from -in extension, else json)")
	fs.StringVar(&o.format, "format", "", "Output format: csv, tsv, xlsx, table, markdown, html, json, jsonl, yaml (default: from -out extension, else csv)")
	fs.StringVar(&o.header, "header", "", "Comma separated column paths")
	fs.StringVar(&o.headerFile, "header-file", "", "YAML or JSON file with a list of column paths or a path: label mapping")
	fs.BoolVar(&o.compact, "compact", false, "Store nested mappings as JSON strings instead of expanding them into columns")
	fs.BoolVar(&o.sanitize, "sanitize", false, "Quote cells that start with a spreadsheet formula trigger")
	fs.StringVar(&o.delimiter, "delimiter", ",", "CSV field delimiter (\"tab\" for a tab)")
	fs.StringVar(&o.border, "border", "rounded", "Table border: rounded, none, ascii, heavy, double")
	fs.StringVar(&o.title, "title", "", "Title for table and html output")
	fs.IntVar(&o.maxWidth, "max-width", 0, "Truncate table cells wider than this (0 = unlimited)")
	fs.StringVar(&o.sheet, "sheet", flatsheet.DefaultSheetName, "XLSX worksheet name")
	fs.StringVar(&o.compress, "compress", "", "Compress output: none, gzip, zstd (default: from -out extension)")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "console", "Log format: console, json")
	_ = fs.String("config", "", "Config file (plain \"flag value\" lines)")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("FLATSHEET"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if o.maxWidth < 0 {
		return options{}, fmt.Errorf("-max-width must be non-negative, got %d", o.maxWidth)
	}
	if o.header != "" && o.headerFile != "" {
		return options{}, errors.New("-header and -header-file cannot be used together")
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger.Setup(stderr, o.logLevel, o.logFormat)
	log := logger.Get("cli")

	inFormat, err := resolveInputFormat(o)
	if err != nil {
		return err
	}
	outFormat, compression, err := resolveOutputFormat(o)
	if err != nil {
		return err
	}
	header, err := loadHeader(o)
	if err != nil {
		return err
	}
	encOpts, err := encoderOptions(o)
	if err != nil {
		return err
	}

	in := stdin
	if o.in != "-" && o.in != "" {
		f, err := os.Open(o.in)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var dst io.Writer = stdout
	if o.out != "-" && o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		dst = f
	}
	out, err := compressWriter(dst, compression)
	if err != nil {
		return err
	}

	cfg := flatsheet.Config{Header: header, Compact: o.compact}
	log.Debug().
		Str("input_format", inFormat.String()).
		Str("format", outFormat.String()).
		Str("compress", compression).
		Bool("compact", o.compact).
		Int("header_columns", len(header)).
		Msg("converting")

	var rows *flatsheet.Rows
	var lines *decode.Lines
	if inFormat == decode.JSONL {
		// JSON Lines streams; with an explicit header so does the table.
		lines = decode.NewLines(in)
		rows = flatsheet.Tablize(lines.All(), cfg)
	} else {
		v, err := decode.Decode(in, inFormat)
		if err != nil {
			return err
		}
		if s, ok := v.(flatsheet.Scalar); !ok || s.Value != nil {
			rows = flatsheet.Render(v, cfg)
		}
	}

	if err := flatsheet.Write(out, outFormat, rows, encOpts...); err != nil {
		return err
	}
	if lines != nil {
		if err := lines.Err(); err != nil {
			return fmt.Errorf("decoding jsonl: %w", err)
		}
	}
	if err := out.Close(); err != nil {
		return err
	}
	log.Info().Strs("columns", rows.Header().Paths()).Msg("wrote table")
	return nil
}

func resolveInputFormat(o options) (decode.Format, error) {
	if o.inputFormat != "" {
		return decode.ParseFormat(o.inputFormat)
	}
	if o.in != "-" && o.in != "" {
		if f, err := decode.FormatFromPath(o.in); err == nil {
			return f, nil
		}
	}
	return decode.JSON, nil
}

var compressExts = map[string]string{".gz": "gzip", ".zst": "zstd"}

func resolveOutputFormat(o options) (flatsheet.Format, string, error) {
	name := o.out
	if name == "-" {
		name = ""
	}
	compression := o.compress
	if c, ok := compressExts[filepath.Ext(name)]; ok {
		if compression == "" {
			compression = c
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if compression == "" {
		compression = "none"
	}

	if o.format != "" {
		f, err := flatsheet.ParseFormat(o.format)
		return f, compression, err
	}
	if ext := filepath.Ext(name); ext != "" {
		for _, f := range flatsheet.Formats() {
			if f.Extension() == ext {
				return f, compression, nil
			}
		}
	}
	return flatsheet.CSV, compression, nil
}

func loadHeader(o options) (flatsheet.Header, error) {
	if o.header != "" {
		paths := strings.Split(o.header, ",")
		for i := range paths {
			paths[i] = strings.TrimSpace(paths[i])
		}
		return flatsheet.Columns(paths...), nil
	}
	if o.headerFile != "" {
		data, err := os.ReadFile(o.headerFile)
		if err != nil {
			return nil, err
		}
		return flatsheet.ParseHeader(data)
	}
	return nil, nil
}

func encoderOptions(o options) ([]flatsheet.Option, error) {
	border, err := flatsheet.ParseBorder(o.border)
	if err != nil {
		return nil, err
	}
	delim := o.delimiter
	if delim == "tab" || delim == `\t` {
		delim = "\t"
	}
	r, size := utf8.DecodeRuneInString(delim)
	if r == utf8.RuneError || size != len(delim) {
		return nil, fmt.Errorf("-delimiter must be a single character, got %q", o.delimiter)
	}

	opts := []flatsheet.Option{
		flatsheet.WithDelimiter(r),
		flatsheet.WithBorder(border),
		flatsheet.WithMaxWidth(o.maxWidth),
		flatsheet.WithSheetName(o.sheet),
	}
	if o.title != "" {
		opts = append(opts, flatsheet.WithTitle(o.title))
	}
	if o.sanitize {
		opts = append(opts, flatsheet.WithSanitize())
	}
	return opts, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func compressWriter(w io.Writer, compression string) (io.WriteCloser, error) {
	switch compression {
	case "none":
		return nopCloser{w}, nil
	case "gzip":
		return gzip.NewWriter(w), nil
	case "zstd":
		return zstd.NewWriter(w)
	}
	return nil, fmt.Errorf("unknown compression %q", compression)
}
