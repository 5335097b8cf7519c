package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
)

// Params holds the query parameters of a request. A nil value marks the
// parameter as unset; unset parameters do not contribute to the cache key.
type Params map[string]any

// Key derives a stable cache key from an endpoint path and its parameters.
// Parameter order never matters: defined parameters are fed to the digest
// as sorted name/value pairs. Every field is terminated with a NUL byte so
// no byte sequence straddling a field boundary can collide with another
// request's fields.
func Key(endpoint string, params Params) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})

	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(ParamString(params[name])))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// ParamString is the canonical stringification of a parameter value, used
// both for key derivation and for building outgoing query strings so the
// two can never disagree.
func ParamString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
