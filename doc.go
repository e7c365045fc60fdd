// Package flatsheet turns nested records into flat tables for spreadsheets.
//
// Records are mappings, sequences and scalars, typically the output of an API
// serialization layer. The package flattens each record into a single-level
// [FlatItem] keyed by dotted column paths, reconciles a header across all
// records, and produces the table as a lazy sequence of [Row] values that the
// encoders in this package write as CSV, XLSX and other formats.
//
// # Values
//
// A record is a [Value]: a [Mapping] (ordered keys), a [Sequence] or a
// [Scalar]. [FromAny] converts ordinary Go data, and [ParseJSON] decodes JSON
// keeping key order:
//
//	v := flatsheet.FromAny(map[string]any{"location": map[string]any{"lat": 1, "lon": 2}})
//	item, _ := flatsheet.Flatten(v, false)
//	// item == FlatItem{"location.lat": 1, "location.lon": 2}
//
// # Paths
//
// Mapping keys and sequence indexes are joined with [PathSeparator]:
//
//	{"user": {"votes": [3, 4]}}  →  user.votes.0, user.votes.1
//
// A scalar record has the single path "".
//
// # Compact columns
//
// With Config.Compact set, only the first level of each record becomes
// columns. Nested mappings are stored as JSON strings and scalars as text.
// Sequences collapse onto one column and keep only their last element, so
// {"tags": [1, 2, 3]} yields {"tags": "3"}. Sequences of scalars therefore
// cannot be represented in compact mode; flatten without compaction to keep
// every element.
//
// # Headers
//
// Without a header the columns are the sorted union of all paths, which
// requires flattening every record before the first row is produced. An
// explicit [Header] fixes the columns and lets rows stream one record at a
// time. A header can rename columns:
//
//	h := flatsheet.Columns("id", "name").Rename("name", "Full Name")
//	rows := flatsheet.Render(records, flatsheet.Config{Header: h})
//
// [ParseHeader] reads the same from YAML or JSON: a list of paths, or a
// mapping of path to label.
//
// # Rows
//
// [Tablize] and [Render] return [Rows], a single-use sequence: the header row
// first, then one row per record with nil for missing columns. Every row has
// exactly as many cells as the header.
//
//	for row := range rows.All() {
//		fmt.Println(row)
//	}
//	if err := rows.Err(); err != nil {
//		return err
//	}
//
// # Encoding
//
// [Write] and [Marshal] encode rows in a [Format]:
//
//	flatsheet.Write(os.Stdout, flatsheet.CSV, rows)
//	flatsheet.Write(f, flatsheet.XLSX, rows, flatsheet.WithSheetName("Users"))
//	flatsheet.Write(os.Stdout, flatsheet.Table, rows, flatsheet.WithBorder(flatsheet.BorderASCII))
//
// CSV, TSV, JSON, JSONL and XLSX write rows as they are produced. Table,
// Markdown, HTML and YAML collect all rows first.
//
// # Errors
//
// Flattening without compaction never fails. In compact mode a value that
// cannot be encoded as JSON stops the table with [ErrUnserializable], reported
// by [Rows.Err] and returned by [Write]. Input must be acyclic; cyclic data
// recurses without bound.
package flatsheet
