package decode

import (
	"encoding/json"
	"errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bjaus/flatsheet"
)

func decodeJSON(data []byte) (flatsheet.Value, error) {
	if json.Valid(data) {
		return flatsheet.ParseJSON(data)
	}

	// Not valid as is; the document may be UTF-16 (Windows tools like to
	// write that), so convert to UTF-8 and try again.
	converted, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), data)
	if err != nil || !json.Valid(converted) {
		return nil, errors.New("not valid json as utf-8 or utf-16")
	}
	return flatsheet.ParseJSON(converted)
}
