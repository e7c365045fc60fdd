package flatsheet

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Column is one column of a [Header]. Label is the display name used in the
// header row; an empty label displays the path.
type Column struct {
	Path  string
	Label string
}

// Display returns the text shown in the header row.
func (c Column) Display() string {
	if c.Label == "" {
		return c.Path
	}
	return c.Label
}

// Header is the ordered column set of a table. A nil or empty header means
// the columns are discovered from the data.
type Header []Column

// Columns returns a header that shows the given paths verbatim.
func Columns(paths ...string) Header {
	h := make(Header, len(paths))
	for i, p := range paths {
		h[i] = Column{Path: p}
	}
	return h
}

// Rename returns a copy of h with the column at path displayed as label. It
// is a no-op when no column has that path.
func (h Header) Rename(path, label string) Header {
	out := make(Header, len(h))
	copy(out, h)
	for i := range out {
		if out[i].Path == path {
			out[i].Label = label
		}
	}
	return out
}

// Paths returns the column paths in order.
func (h Header) Paths() []string {
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = c.Path
	}
	return out
}

// Labels returns the display text of every column in order.
func (h Header) Labels() []string {
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = c.Display()
	}
	return out
}

func (h Header) row() Row {
	out := make(Row, len(h))
	for i, c := range h {
		out[i] = c.Display()
	}
	return out
}

// discoverHeader returns the sorted union of the paths of all items.
func discoverHeader(items []FlatItem) Header {
	seen := make(map[string]struct{})
	for _, item := range items {
		for path := range item {
			seen[path] = struct{}{}
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return Columns(paths...)
}

// ParseHeader reads a header from YAML or JSON. A list of strings is a plain
// header; a mapping of path to label is a renaming header whose columns
// follow document order.
//
//	- id
//	- name
//
//	id: ID
//	name: Full Name
func ParseHeader(data []byte) (Header, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHeader, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidHeader)
	}
	node := doc.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		h := make(Header, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: column must be a string", ErrInvalidHeader, n.Line)
			}
			h = append(h, Column{Path: n.Value})
		}
		return h, nil
	case yaml.MappingNode:
		h := make(Header, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: label must be a string", ErrInvalidHeader, k.Line)
			}
			label := v.Value
			if v.Tag == "!!null" {
				label = ""
			}
			h = append(h, Column{Path: k.Value, Label: label})
		}
		return h, nil
	}
	return nil, fmt.Errorf("%w: expected a list or a mapping", ErrInvalidHeader)
}
