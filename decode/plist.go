package decode

import (
	"github.com/groob/plist"

	"github.com/bjaus/flatsheet"
)

func decodePlist(data []byte) (flatsheet.Value, error) {
	var v any
	if err := plist.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return flatsheet.FromAny(v), nil
}
