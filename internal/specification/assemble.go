package specification

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Field is one entry of an assembled specification, in output order.
type Field struct {
	Key   string
	Value string
}

// Assemble builds the specification that gets persisted when an edit is
// submitted. The description comes first, then non-empty schema values
// (attribute order, then the remaining keys sorted), then custom fields with
// both a key and a value. A custom field whose key is already present
// overwrites that value in place; it can never replace the description.
func Assemble(spec Specification, custom []CustomField, attributes []string) []Field {
	var fields []Field
	index := map[string]int{}

	set := func(key, value string) {
		if i, ok := index[key]; ok {
			fields[i].Value = value
			return
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}

	if desc := strings.TrimSpace(spec.Description()); desc != "" {
		set(DescriptionKey, desc)
	}

	for _, key := range orderedKeys(spec, attributes) {
		if isDescription(key) {
			continue
		}
		if value := strings.TrimSpace(spec[key]); value != "" {
			set(key, value)
		}
	}

	for _, field := range custom {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" || isDescription(key) {
			continue
		}
		set(key, value)
	}

	return fields
}

// AssembleJSON encodes the assembled fields as a JSON object, keeping their order.
func AssembleJSON(spec Specification, custom []CustomField, attributes []string) (string, error) {
	return EncodeFields(Assemble(spec, custom, attributes))
}

// EncodeFields writes fields as a JSON object in slice order.
func EncodeFields(fields []Field) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return "", err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// ToSpecification collapses assembled fields back into a map.
func ToSpecification(fields []Field) Specification {
	out := make(Specification, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

func orderedKeys(spec Specification, attributes []string) []string {
	keys := make([]string, 0, len(spec))
	seen := make(map[string]bool, len(spec))
	for _, attr := range attributes {
		if key, ok := lookupKey(spec, attr); ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	rest := make([]string, 0, len(spec))
	for k := range spec {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
