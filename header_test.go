package flatsheet_test

import (
	"testing"

	"github.com/bjaus/flatsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want flatsheet.Header
	}{
		{
			name: "yaml list",
			in:   "- id\n- user.name\n",
			want: flatsheet.Columns("id", "user.name"),
		},
		{
			name: "json list",
			in:   `["b", "a"]`,
			want: flatsheet.Columns("b", "a"),
		},
		{
			name: "mapping keeps document order",
			in:   "name: Full Name\nid: ID\n",
			want: flatsheet.Header{{Path: "name", Label: "Full Name"}, {Path: "id", Label: "ID"}},
		},
		{
			name: "json mapping",
			in:   `{"z": "Zed", "a": "Ay"}`,
			want: flatsheet.Header{{Path: "z", Label: "Zed"}, {Path: "a", Label: "Ay"}},
		},
		{
			name: "null label",
			in:   "id:\nname: Name\n",
			want: flatsheet.Header{{Path: "id"}, {Path: "name", Label: "Name"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, err := flatsheet.ParseHeader([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestParseHeaderInvalid(t *testing.T) {
	t.Parallel()
	for _, in := range []string{
		"",
		"just a string",
		"- [nested]\n",
		"id: {nested: true}\n",
		"{unterminated",
	} {
		_, err := flatsheet.ParseHeader([]byte(in))
		assert.ErrorIs(t, err, flatsheet.ErrInvalidHeader, in)
	}
}

func TestHeaderRename(t *testing.T) {
	t.Parallel()
	h := flatsheet.Columns("id", "name")
	renamed := h.Rename("name", "Full Name").Rename("missing", "X")

	assert.Equal(t, []string{"id", "name"}, h.Labels(), "original header is unchanged")
	assert.Equal(t, []string{"id", "Full Name"}, renamed.Labels())
	assert.Equal(t, []string{"id", "name"}, renamed.Paths())
}

func TestColumnDisplay(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a.b", flatsheet.Column{Path: "a.b"}.Display())
	assert.Equal(t, "B", flatsheet.Column{Path: "a.b", Label: "B"}.Display())
}
