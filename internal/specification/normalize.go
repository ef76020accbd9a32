package specification

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const legacyFeaturesKey = "features"

// Normalize turns a stored specification into a flat map. It accepts nil,
// JSON text (string, []byte, json.RawMessage) or an already decoded object,
// and understands the legacy {"features": ["<json object>"]} wrapper.
// Anything it cannot read yields an empty map.
func Normalize(raw any) Specification {
	var parsed any
	switch v := raw.(type) {
	case nil:
		return Specification{}
	case string:
		var ok bool
		if parsed, ok = decodeJSON([]byte(v)); !ok {
			return Specification{}
		}
	case []byte:
		var ok bool
		if parsed, ok = decodeJSON(v); !ok {
			return Specification{}
		}
	case json.RawMessage:
		var ok bool
		if parsed, ok = decodeJSON(v); !ok {
			return Specification{}
		}
	case Specification:
		return v.Clone()
	case map[string]string:
		return Specification(v).Clone()
	case map[string]any:
		parsed = v
	default:
		return Specification{}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return Specification{}
	}

	if features, ok := obj[legacyFeaturesKey].([]any); ok && len(features) > 0 {
		if encoded, ok := features[0].(string); ok {
			inner, ok := decodeJSON([]byte(encoded))
			if !ok {
				return Specification{}
			}
			innerObj, ok := inner.(map[string]any)
			if !ok {
				return Specification{}
			}
			delete(innerObj, DescriptionKey)
			return flatten(innerObj)
		}
	}

	return flatten(obj)
}

// IsFlat reports whether the stored text is already a flat JSON object of
// strings, i.e. whether Normalize would leave it unchanged.
func IsFlat(raw string) bool {
	var flat map[string]string
	if err := json.Unmarshal([]byte(raw), &flat); err != nil {
		return false
	}
	return flat != nil
}

func decodeJSON(data []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return out, true
}

func flatten(obj map[string]any) Specification {
	out := make(Specification, len(obj))
	for k, v := range obj {
		out[k] = scalarString(v)
	}
	return out
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
