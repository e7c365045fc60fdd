package decode

import (
	"bytes"
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bjaus/flatsheet"
)

func decodeMsgPack(data []byte) (flatsheet.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	var docs flatsheet.Sequence
	for {
		v, err := dec.DecodeInterface()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, flatsheet.FromAny(v))
	}
	switch len(docs) {
	case 0:
		return flatsheet.Null, nil
	case 1:
		return docs[0], nil
	}
	return docs, nil
}
