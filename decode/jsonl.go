package decode

import (
	"encoding/json"
	"io"
	"iter"

	"github.com/bjaus/flatsheet"
)

// Lines reads a stream of JSON values, usually one per line, one record at a
// time. Like [flatsheet.Rows] it can be ranged over once.
type Lines struct {
	dec  *json.Decoder
	used bool
	err  error
}

// NewLines returns a JSON Lines reader over r.
func NewLines(r io.Reader) *Lines {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Lines{dec: dec}
}

// All returns the records. Reading stops at the first malformed value,
// reported by Err.
func (l *Lines) All() iter.Seq[flatsheet.Value] {
	return func(yield func(flatsheet.Value) bool) {
		if l.used {
			return
		}
		l.used = true
		for l.dec.More() {
			v, err := flatsheet.DecodeJSON(l.dec)
			if err != nil {
				l.err = err
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Err returns the error that stopped reading, if any.
func (l *Lines) Err() error { return l.err }

func collectLines(r io.Reader) (flatsheet.Value, error) {
	lines := NewLines(r)
	seq := flatsheet.Sequence{}
	for v := range lines.All() {
		seq = append(seq, v)
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	return seq, nil
}
