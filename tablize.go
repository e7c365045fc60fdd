package flatsheet

import (
	"iter"
	"slices"
)

// Config controls how records become a table. The zero value discovers the
// header from the data and expands every nesting level.
type Config struct {
	// Header fixes the columns and their order. Columns that no record has
	// are filled with nil; paths that are not listed are dropped.
	Header Header
	// Compact stores nested mappings as JSON strings instead of expanding
	// them into columns.
	Compact bool
}

// Row is one line of a table, positionally aligned to the header.
type Row []any

// Rows is the lazily produced table: the header row followed by one row per
// record. It can be ranged over once.
//
// When Config.Header is set, rows are produced as records are pulled, so the
// table streams. Otherwise every record is flattened before the first row is
// produced because the header is the union of all paths.
type Rows struct {
	records iter.Seq[Value]
	cfg     Config
	header  Header
	used    bool
	err     error
}

// Tablize builds the table for records.
func Tablize(records iter.Seq[Value], cfg Config) *Rows {
	if records == nil {
		records = func(func(Value) bool) {}
	}
	return &Rows{records: records, cfg: cfg}
}

// Render builds the table for arbitrary data. It returns nil for nil data.
// A value that is not a sequence is rendered as a single record.
func Render(data any, cfg Config) *Rows {
	if data == nil {
		return nil
	}
	v := FromAny(data)
	seq, ok := v.(Sequence)
	if !ok {
		seq = Sequence{v}
	}
	return Tablize(slices.Values([]Value(seq)), cfg)
}

// All returns the rows. The sequence is single use: ranging over it a second
// time yields nothing and sets [ErrConsumed]. Production stops at the first
// flattening error, reported by Err.
func (r *Rows) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		if r == nil {
			return
		}
		if r.used {
			if r.err == nil {
				r.err = ErrConsumed
			}
			return
		}
		r.used = true
		if len(r.cfg.Header) > 0 {
			r.stream(yield)
			return
		}
		r.discover(yield)
	}
}

// Err returns the error that stopped row production, if any.
func (r *Rows) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

// Header returns the resolved header. It is nil until production started,
// and stays nil when there were no records and no explicit header.
func (r *Rows) Header() Header {
	if r == nil {
		return nil
	}
	return r.header
}

// Collect drains the rows into a slice.
func (r *Rows) Collect() ([]Row, error) {
	var out []Row
	for row := range r.All() {
		out = append(out, row)
	}
	return out, r.Err()
}

func (r *Rows) stream(yield func(Row) bool) {
	r.header = r.cfg.Header
	if !yield(r.header.row()) {
		return
	}
	for rec := range r.records {
		item, err := Flatten(rec, r.cfg.Compact)
		if err != nil {
			r.err = err
			return
		}
		if !yield(r.align(item)) {
			return
		}
	}
}

func (r *Rows) discover(yield func(Row) bool) {
	var items []FlatItem
	for rec := range r.records {
		item, err := Flatten(rec, r.cfg.Compact)
		if err != nil {
			r.err = err
			return
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return
	}
	r.header = discoverHeader(items)
	if !yield(r.header.row()) {
		return
	}
	for _, item := range items {
		if !yield(r.align(item)) {
			return
		}
	}
}

func (r *Rows) align(item FlatItem) Row {
	row := make(Row, len(r.header))
	for i, c := range r.header {
		row[i] = item[c.Path]
	}
	return row
}
