package flatsheet_test

import (
	"math"
	"testing"

	"github.com/bjaus/flatsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   any
		want flatsheet.FlatItem
	}{
		{
			name: "scalar",
			in:   "hello",
			want: flatsheet.FlatItem{"": "hello"},
		},
		{
			name: "nil",
			in:   nil,
			want: flatsheet.FlatItem{"": nil},
		},
		{
			name: "nested mapping",
			in:   map[string]any{"location": map[string]any{"lat": 1, "lon": 2}},
			want: flatsheet.FlatItem{"location.lat": 1, "location.lon": 2},
		},
		{
			name: "sequence of scalars",
			in:   map[string]any{"tags": []any{"a", "b"}},
			want: flatsheet.FlatItem{"tags.0": "a", "tags.1": "b"},
		},
		{
			name: "root sequence",
			in:   []any{1, map[string]any{"a": true}},
			want: flatsheet.FlatItem{"0": 1, "1.a": true},
		},
		{
			name: "deep",
			in: map[string]any{
				"user": map[string]any{
					"votes": []any{3, 4},
					"name":  "ann",
				},
			},
			want: flatsheet.FlatItem{"user.votes.0": 3, "user.votes.1": 4, "user.name": "ann"},
		},
		{
			name: "empty containers contribute nothing",
			in:   map[string]any{"a": map[string]any{}, "b": []any{}, "c": nil},
			want: flatsheet.FlatItem{"c": nil},
		},
		{
			name: "non string keys",
			in:   map[int]string{1: "one", 10: "ten"},
			want: flatsheet.FlatItem{"1": "one", "10": "ten"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := flatsheet.Flatten(flatsheet.FromAny(tt.in), false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenCollisionLastWins(t *testing.T) {
	t.Parallel()
	v := flatsheet.Mapping{
		{Key: "a.b", Value: flatsheet.Scalar{Value: 1}},
		{Key: "a", Value: flatsheet.Mapping{{Key: "b", Value: flatsheet.Scalar{Value: 2}}}},
	}
	got, err := flatsheet.Flatten(v, false)
	require.NoError(t, err)
	assert.Equal(t, flatsheet.FlatItem{"a.b": 2}, got)
}

func TestFlattenIsDeterministic(t *testing.T) {
	t.Parallel()
	in := map[string]any{
		"z": 1, "a": map[string]any{"y": []any{1, 2}, "b": "x"}, "m": []any{map[string]any{"k": nil}},
	}
	first, err := flatsheet.Flatten(flatsheet.FromAny(in), false)
	require.NoError(t, err)
	for range 20 {
		again, err := flatsheet.Flatten(flatsheet.FromAny(in), false)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFlattenCompact(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   any
		want flatsheet.FlatItem
	}{
		{
			name: "sequence value keeps last element",
			in:   map[string]any{"tags": []any{1, 2, 3}},
			want: flatsheet.FlatItem{"tags": "3"},
		},
		{
			name: "nested mapping becomes json",
			in:   map[string]any{"location": map[string]any{"lat": 1.5, "lon": 2}},
			want: flatsheet.FlatItem{"location": `{"lat":1.5,"lon":2}`},
		},
		{
			name: "sequence of mappings keeps last as json",
			in:   map[string]any{"items": []any{map[string]any{"a": 1}, map[string]any{"b": "<x>"}}},
			want: flatsheet.FlatItem{"items": `{"b":"<x>"}`},
		},
		{
			name: "scalars become text",
			in:   map[string]any{"n": 7, "ok": true, "f": 0.25, "none": nil},
			want: flatsheet.FlatItem{"n": "7", "ok": "true", "f": "0.25", "none": nil},
		},
		{
			name: "root sequence collapses",
			in:   []any{"a", []any{1, 2}},
			want: flatsheet.FlatItem{"": "[1,2]"},
		},
		{
			name: "root scalar keeps type",
			in:   42,
			want: flatsheet.FlatItem{"": 42},
		},
		{
			name: "empty sequence value",
			in:   map[string]any{"tags": []any{}},
			want: flatsheet.FlatItem{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := flatsheet.Flatten(flatsheet.FromAny(tt.in), true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenCompactPreservesKeyOrder(t *testing.T) {
	t.Parallel()
	v, err := flatsheet.ParseJSON([]byte(`{"meta": {"z": 1, "a": [true, null]}}`))
	require.NoError(t, err)
	got, err := flatsheet.Flatten(v, true)
	require.NoError(t, err)
	assert.Equal(t, flatsheet.FlatItem{"meta": `{"z":1,"a":[true,null]}`}, got)
}

func TestFlattenCompactUnserializable(t *testing.T) {
	t.Parallel()
	v := flatsheet.Mapping{
		{Key: "m", Value: flatsheet.Mapping{{Key: "bad", Value: flatsheet.Scalar{Value: math.NaN()}}}},
	}
	_, err := flatsheet.Flatten(v, true)
	require.ErrorIs(t, err, flatsheet.ErrUnserializable)
	assert.Contains(t, err.Error(), `"m"`)

	// Without compaction the same value is fine.
	got, err := flatsheet.Flatten(v, false)
	require.NoError(t, err)
	assert.Contains(t, got, "m.bad")
}

func TestNest(t *testing.T) {
	t.Parallel()
	item := flatsheet.FlatItem{"lat": 1, "": 2, "votes.1": 3}
	assert.Equal(t, flatsheet.FlatItem{"location.lat": 1, "location": 2, "location.votes.1": 3}, item.Nest("location"))
	assert.Equal(t, flatsheet.FlatItem{"lat": 1, "": 2, "votes.1": 3}, item, "source is not modified")
}
