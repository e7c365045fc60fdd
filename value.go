package flatsheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Kind identifies the shape of a [Value].
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Value is one node of a nested record. The concrete types are [Mapping],
// [Sequence] and [Scalar]; the set is closed.
type Value interface {
	Kind() Kind
	value()
}

// Entry is a single key/value pair of a [Mapping].
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered collection of keyed values.
type Mapping []Entry

// Sequence is an ordered list of values.
type Sequence []Value

// Scalar holds a leaf value: a string, number, bool, time, or nil.
type Scalar struct {
	Value any
}

func (Mapping) Kind() Kind  { return KindMapping }
func (Sequence) Kind() Kind { return KindSequence }
func (Scalar) Kind() Kind   { return KindScalar }

func (Mapping) value()  {}
func (Sequence) value() {}
func (Scalar) value()   {}

// Null is the nil scalar.
var Null = Scalar{}

// Get returns the value stored under key. When the key repeats, the last entry
// wins, matching how flattening merges entries.
func (m Mapping) Get(key string) (Value, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the mapping as a JSON object in entry order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes the sequence as a JSON array.
func (s Sequence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes the wrapped value.
func (s Scalar) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromAny converts arbitrary Go data into a Value.
//
// Maps become mappings with keys in ascending order of their string form,
// slices and arrays become sequences, pointers are followed, and structs are
// converted through their JSON encoding. A [json.RawMessage] is parsed as
// JSON; other byte slices are treated as strings.
// Everything else is wrapped as a scalar.
func FromAny(data any) Value {
	switch v := data.(type) {
	case nil:
		return Null
	case Value:
		return v
	case string, bool, json.Number, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Scalar{Value: v}
	case json.RawMessage:
		if parsed, err := ParseJSON(v); err == nil {
			return parsed
		}
		return Scalar{Value: string(v)}
	case []byte:
		return Scalar{Value: string(v)}
	case []any:
		seq := make(Sequence, len(v))
		for i, e := range v {
			seq[i] = FromAny(e)
		}
		return seq
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := make(Mapping, len(keys))
		for i, k := range keys {
			m[i] = Entry{Key: k, Value: FromAny(v[k])}
		}
		return m
	}
	return fromReflect(reflect.ValueOf(data))
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Scalar{Value: string(rv.Bytes())}
		}
		if rv.IsNil() {
			return Sequence{}
		}
		fallthrough
	case reflect.Array:
		seq := make(Sequence, rv.Len())
		for i := range seq {
			seq[i] = FromAny(rv.Index(i).Interface())
		}
		return seq
	case reflect.Map:
		type keyed struct {
			key   string
			order string
			value reflect.Value
		}
		entries := make([]keyed, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().Interface()
			entries = append(entries, keyed{
				key:   keyString(k),
				order: fmt.Sprintf("%T", k),
				value: iter.Value(),
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].key != entries[j].key {
				return entries[i].key < entries[j].key
			}
			return entries[i].order < entries[j].order
		})
		m := make(Mapping, len(entries))
		for i, e := range entries {
			m[i] = Entry{Key: e.key, Value: FromAny(e.value.Interface())}
		}
		return m
	case reflect.Struct:
		raw, err := json.Marshal(rv.Interface())
		if err != nil {
			return Scalar{Value: rv.Interface()}
		}
		v, err := ParseJSON(raw)
		if err != nil {
			return Scalar{Value: rv.Interface()}
		}
		return v
	case reflect.String:
		return Scalar{Value: rv.String()}
	case reflect.Bool:
		return Scalar{Value: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar{Value: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Scalar{Value: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return Scalar{Value: rv.Float()}
	}
	return Scalar{Value: rv.Interface()}
}

func keyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return FormatCell(k)
}

// ToAny converts a Value back into plain Go data: map[string]any, []any and
// scalars. Repeated mapping keys keep the last entry.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Mapping:
		out := make(map[string]any, len(v))
		for _, e := range v {
			out[e.Key] = ToAny(e.Value)
		}
		return out
	case Sequence:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = ToAny(e)
		}
		return out
	case Scalar:
		return v.Value
	}
	return nil
}

// ParseJSON decodes a JSON document into a Value, keeping object keys in
// document order. Integral numbers become int64 when they fit; other numbers
// become float64.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := DecodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

// DecodeJSON reads the next JSON value from dec. The decoder should have
// UseNumber enabled so that large integers are kept intact.
func DecodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := Mapping{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := DecodeJSON(dec)
				if err != nil {
					return nil, err
				}
				m = append(m, Entry{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			s := Sequence{}
			for dec.More() {
				val, err := DecodeJSON(dec)
				if err != nil {
					return nil, err
				}
				s = append(s, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return Scalar{Value: i}, nil
		}
		if f, err := t.Float64(); err == nil {
			return Scalar{Value: f}, nil
		}
		return Scalar{Value: t}, nil
	default:
		// string, bool, float64 (without UseNumber) or nil
		return Scalar{Value: t}, nil
	}
}

// appendJSON writes v as compact JSON without HTML escaping.
func appendJSON(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case Mapping:
		buf.WriteByte('{')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeScalar(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case Sequence:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case Scalar:
		return encodeScalar(buf, v.Value)
	}
	buf.WriteString("null")
	return nil
}

func encodeScalar(buf *bytes.Buffer, x any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
