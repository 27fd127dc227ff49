package xmlparts

import (
	"sort"
	"strings"

	mxj "github.com/clbanning/mxj/v2"
)

// attrPrefix is the key prefix mxj puts on XML attributes when parsing.
const attrPrefix = "-"

// mxjCodec implements Codec on top of github.com/clbanning/mxj.
type mxjCodec struct{}

// NewCodec returns the default Codec, backed by mxj.
func NewCodec() Codec {
	return mxjCodec{}
}

// Build serializes value to an XML fragment. Map entries are emitted as one
// element per key in sorted key order, so {"a":1,"b":2} becomes
// "<a>1</a><b>2</b>"; non-map values get mxj's default root element.
func (mxjCodec) Build(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		for _, k := range keys {
			frag, err := mxj.AnyXml(v[k], k)
			if err != nil {
				return "", err
			}
			b.Write(frag)
		}
		return b.String(), nil
	default:
		frag, err := mxj.AnyXml(value)
		if err != nil {
			return "", err
		}
		return string(frag), nil
	}
}

// Parse converts XML text into a generic map. Values are not type-cast:
// "<a>1</a>" yields map["a"] == "1", so numbers and booleans come back as
// strings.
func (mxjCodec) Parse(xmlText string) (map[string]any, error) {
	m, err := mxj.NewMapXml([]byte(xmlText))
	if err != nil {
		return nil, err
	}
	return map[string]any(m), nil
}
