package flatsheet

import (
	"bytes"
	"fmt"
	"strconv"
)

// PathSeparator joins the segments of a column path.
const PathSeparator = "."

// FlatItem maps column paths to cell values. It is exactly one level deep.
type FlatItem map[string]any

// Nest re-keys every path of the item under prefix:
//
//	path      | prefix     | becomes
//	----------|------------|---------------
//	lat       | location   | location.lat
//	""        | 0          | 0
//	votes.1   | user       | user.votes.1
func (f FlatItem) Nest(prefix string) FlatItem {
	nested := make(FlatItem, len(f))
	nestInto(nested, f, prefix)
	return nested
}

func nestInto(dst, child FlatItem, prefix string) {
	for path, val := range child {
		if path == "" {
			dst[prefix] = val
			continue
		}
		dst[prefix+PathSeparator+path] = val
	}
}

// Flatten converts one record into a FlatItem.
//
// Without compaction every mapping key and sequence index becomes a path
// segment, so {"location": {"lat": 1}} yields {"location.lat": 1}. Scalars
// keep their type. Flattening without compaction never fails.
//
// With compaction only the first level of a mapping is expanded: nested
// mappings are stored as JSON strings and scalars as their text form. A
// sequence collapses onto a single path and only its last element survives,
// so {"tags": [1, 2, 3]} yields {"tags": "3"}. Compact flattening fails with
// [ErrUnserializable] when a nested value cannot be encoded as JSON.
func Flatten(v Value, compact bool) (FlatItem, error) {
	if compact {
		return flattenCompact(v, "")
	}
	return flattenNested(v), nil
}

func flattenNested(v Value) FlatItem {
	switch v := v.(type) {
	case Mapping:
		flat := FlatItem{}
		for _, e := range v {
			nestInto(flat, flattenNested(e.Value), e.Key)
		}
		return flat
	case Sequence:
		flat := FlatItem{}
		for i, e := range v {
			nestInto(flat, flattenNested(e), strconv.Itoa(i))
		}
		return flat
	case Scalar:
		return FlatItem{"": v.Value}
	}
	return FlatItem{"": nil}
}

func flattenCompact(v Value, at string) (FlatItem, error) {
	switch v := v.(type) {
	case Mapping:
		flat := FlatItem{}
		for _, e := range v {
			path := joinPath(at, e.Key)
			if seq, ok := e.Value.(Sequence); ok {
				child, err := flattenCompact(seq, path)
				if err != nil {
					return nil, err
				}
				nestInto(flat, child, e.Key)
				continue
			}
			cell, err := compactCell(e.Value, path)
			if err != nil {
				return nil, err
			}
			flat[e.Key] = cell
		}
		return flat, nil
	case Sequence:
		// Every element lands on the same path; the last one wins.
		flat := FlatItem{}
		for i, e := range v {
			cell, err := compactCell(e, joinPath(at, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			flat[""] = cell
		}
		return flat, nil
	case Scalar:
		return FlatItem{"": v.Value}, nil
	}
	return FlatItem{"": nil}, nil
}

func compactCell(v Value, path string) (any, error) {
	switch v := v.(type) {
	case Mapping, Sequence:
		var buf bytes.Buffer
		if err := appendJSON(&buf, v); err != nil {
			return nil, fmt.Errorf("%w: %q: %s", ErrUnserializable, path, err)
		}
		return buf.String(), nil
	case Scalar:
		if v.Value == nil {
			return nil, nil
		}
		return FormatCell(v.Value), nil
	}
	return nil, nil
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + PathSeparator + segment
}
