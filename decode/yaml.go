package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/flatsheet"
)

func decodeYAML(data []byte) (flatsheet.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs flatsheet.Sequence
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := fromNode(&doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
	switch len(docs) {
	case 0:
		return flatsheet.Null, nil
	case 1:
		return docs[0], nil
	}
	return docs, nil
}

func fromNode(n *yaml.Node) (flatsheet.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return flatsheet.Null, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := make(flatsheet.Mapping, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m = append(m, flatsheet.Entry{Key: n.Content[i].Value, Value: v})
		}
		return m, nil
	case yaml.SequenceNode:
		s := make(flatsheet.Sequence, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return flatsheet.FromAny(x), nil
	}
	return flatsheet.Null, nil
}
