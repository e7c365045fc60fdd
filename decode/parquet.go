package decode

import (
	"bytes"
	"errors"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/bjaus/flatsheet"
)

// decodeParquet returns one mapping per row. Nested groups and repeated
// columns come back as nested mappings and sequences.
func decodeParquet(data []byte) (flatsheet.Value, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	reader := parquet.NewReader(file)
	defer func() { _ = reader.Close() }()

	rows := flatsheet.Sequence{}
	for {
		row := make(map[string]any)
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		rows = append(rows, flatsheet.FromAny(row))
	}
	return rows, nil
}
