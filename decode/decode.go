// Package decode reads records from serialized documents into
// [flatsheet.Value] trees ready for flattening.
//
// Supported formats are JSON, JSON Lines, YAML, XML, plist, MessagePack and
// Parquet. JSON and YAML keep the key order of the document; the other
// formats decode into Go maps and get their keys sorted.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bjaus/flatsheet"
)

// ErrUnsupportedFormat is returned for unknown input formats.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Format names an input format.
type Format string

const (
	JSON    Format = "json"
	JSONL   Format = "jsonl"
	YAML    Format = "yaml"
	XML     Format = "xml"
	Plist   Format = "plist"
	MsgPack Format = "msgpack"
	Parquet Format = "parquet"
)

var formats = []Format{JSON, JSONL, YAML, XML, Plist, MsgPack, Parquet}

var extensions = map[string]Format{
	".json":    JSON,
	".jsonl":   JSONL,
	".ndjson":  JSONL,
	".yaml":    YAML,
	".yml":     YAML,
	".xml":     XML,
	".plist":   Plist,
	".msgpack": MsgPack,
	".mpk":     MsgPack,
	".parquet": Parquet,
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported input formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses an input format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	if s == "yml" || s == "ndjson" {
		return FormatFromPath("x." + s)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: no format for extension %q", ErrUnsupportedFormat, ext)
}

// Decode reads the whole of r and decodes it as f.
//
// Formats that can hold several documents (JSON Lines, multi-document YAML,
// concatenated MessagePack values, Parquet rows) return a
// [flatsheet.Sequence] with one element per document, except that a single
// YAML or MessagePack document is returned as is.
func Decode(r io.Reader, f Format) (flatsheet.Value, error) {
	if f == JSONL {
		return collectLines(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s input: %w", f, err)
	}
	return Bytes(data, f)
}

// Bytes decodes data as f.
func Bytes(data []byte, f Format) (flatsheet.Value, error) {
	var (
		v   flatsheet.Value
		err error
	)
	switch f {
	case JSON:
		v, err = decodeJSON(data)
	case JSONL:
		v, err = collectLines(bytes.NewReader(data))
	case YAML:
		v, err = decodeYAML(data)
	case XML:
		v, err = decodeXML(data)
	case Plist:
		v, err = decodePlist(data)
	case MsgPack:
		v, err = decodeMsgPack(data)
	case Parquet:
		v, err = decodeParquet(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f, err)
	}
	return v, nil
}
