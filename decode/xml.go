package decode

import (
	"github.com/clbanning/mxj"

	"github.com/bjaus/flatsheet"
)

// decodeXML maps elements to keys, attributes to "-name" keys and repeated
// elements to sequences. Values stay strings.
func decodeXML(data []byte) (flatsheet.Value, error) {
	mv, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, err
	}
	return flatsheet.FromAny(mv.Old()), nil
}
