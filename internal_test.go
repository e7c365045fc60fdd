package flatsheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInternalWrite = errors.New("write failed")

func TestFormatTableCellWideCharSafety(t *testing.T) {
	t.Parallel()
	// "你" is two columns wide and cannot be split, so a width of 3 keeps
	// only the first character and pads the rest.
	assert.Equal(t, "你 ", formatTableCell("你好", 3, AlignLeft))
}

func TestFormatTableCellTruncates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Hell...", formatTableCell("Hello world", 7, AlignLeft))
	assert.Equal(t, "Hel", formatTableCell("Hello", 3, AlignLeft))
	assert.Equal(t, "hi", formatTableCell("hi", 0, AlignLeft))
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		align Alignment
		want  string
	}{
		{"left", AlignLeft, "ab   "},
		{"right", AlignRight, "   ab"},
		{"center", AlignCenter, " ab  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, alignCell("ab", 5, tt.align))
		})
	}
	assert.Equal(t, "abcdef", alignCell("abcdef", 3, AlignRight))
}

func TestTableInnerWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, tableInnerWidth(nil))
	assert.Equal(t, 5, tableInnerWidth([]int{3}))
	assert.Equal(t, 12, tableInnerWidth([]int{3, 4}))
}

func TestFitTitle(t *testing.T) {
	t.Parallel()
	widths := []int{2, 3}
	assert.Equal(t, []int{2, 3}, fitTitle(widths, 5))
	assert.Equal(t, []int{2, 14}, fitTitle(widths, 19))
	assert.Equal(t, []int{2, 3}, widths, "input is not modified")
	assert.Equal(t, 21, tableInnerWidth(fitTitle(widths, 19)))
	assert.Empty(t, fitTitle(nil, 10))
}

func TestColumnAligns(t *testing.T) {
	t.Parallel()
	data := []Row{
		{1, "a", nil, 2.5},
		{int64(2), "b", nil, json.Number("3")},
		{nil, 3, nil, 4},
	}
	assert.Equal(t, []Alignment{AlignRight, AlignLeft, AlignLeft, AlignRight}, columnAligns(4, data))
}

func TestTableTextFlattensNewlines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a b", "", "1"}, tableText(Row{"a\nb", nil, 1}))
}

func TestSanitizeCell(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
		{"\tx", "'\tx"},
		{"|pipe", "'|pipe"},
		{"=it's", "'=it''s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeCell(tt.in), tt.in)
	}
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.1", formatFloat(0.1, 64))
	assert.Equal(t, "1500000", formatFloat(1.5e6, 64))
	assert.Equal(t, "0", formatFloat(0, 64))
	assert.Equal(t, "1e-07", formatFloat(1e-7, 64))
	assert.Equal(t, "1e+21", formatFloat(1e21, 64))
	assert.Equal(t, "NaN", formatFloat(math.NaN(), 64))
}

func TestCSVRecordSanitizesTextOnly(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"'=x", "-1", ""}, csvRecord(Row{"=x", -1, nil}, true))
	assert.Equal(t, []string{"=x", "-1", ""}, csvRecord(Row{"=x", -1, nil}, false))
}

func TestXLSXCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", xlsxCell(nil, false))
	assert.Equal(t, 3, xlsxCell(3, false))
	assert.Equal(t, int64(7), xlsxCell(json.Number("7"), false))
	assert.Equal(t, 1.5, xlsxCell(json.Number("1.5"), false))
	assert.Equal(t, "'=x", xlsxCell("=x", true))
	assert.Equal(t, "=x", xlsxCell("=x", false))
}

func TestJoinPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a", joinPath("", "a"))
	assert.Equal(t, "a.b", joinPath("a", "b"))
}

func TestWriteCSVError(t *testing.T) {
	t.Parallel()
	rows := Render([]any{map[string]any{"a": 1}}, Config{})
	err := writeCSV(&errWriterInternal{}, rows, buildOptions(nil))
	assert.ErrorIs(t, err, errInternalWrite)
}

func TestWriteCSVLargeDataError(t *testing.T) {
	t.Parallel()
	// Large data exceeds the bufio buffer, so the write itself fails.
	big := strings.Repeat("x", 5000)
	rows := Render([]any{map[string]any{"a": big}}, Config{})
	err := writeCSV(&errWriterInternal{}, rows, buildOptions(nil))
	assert.ErrorIs(t, err, errInternalWrite)
}

func TestCollectSplitsHeader(t *testing.T) {
	t.Parallel()
	header, data := collect(Render([]any{map[string]any{"a": 1}}, Config{}))
	assert.Equal(t, Row{"a"}, header)
	assert.Equal(t, []Row{{1}}, data)

	header, data = collect(nil)
	assert.Nil(t, header)
	assert.Nil(t, data)
}

func TestAppendJSONNilValue(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, appendJSON(&buf, Sequence{nil, Null}))
	assert.Equal(t, "[null,null]", buf.String())
}

type errWriterInternal struct{}

func (e *errWriterInternal) Write([]byte) (int, error) {
	return 0, errInternalWrite
}
