// Package specification reconciles an inventory item's free-form specification
// map against the attribute schema of its category.
package specification

import (
	"encoding/json"
	"sort"
	"strings"
)

// DescriptionKey is free text and never takes part in attribute redistribution.
const DescriptionKey = "description"

// Specification maps attribute names to values for a single item.
type Specification map[string]string

// CustomField is an item attribute that is not part of the current category schema.
type CustomField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Clone returns a copy that can be mutated independently.
func (s Specification) Clone() Specification {
	out := make(Specification, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Description returns the free-text description, if any. The key is matched
// without regard to case.
func (s Specification) Description() string {
	if k, ok := lookupKey(s, DescriptionKey); ok {
		return s[k]
	}
	return ""
}

// Serialize encodes the map as a plain JSON object.
func Serialize(s Specification) (string, error) {
	if s == nil {
		s = Specification{}
	}
	data, err := json.Marshal(map[string]string(s))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isDescription(key string) bool {
	return strings.EqualFold(strings.TrimSpace(key), DescriptionKey)
}

func containsFold(list []string, key string) bool {
	for _, item := range list {
		if strings.EqualFold(item, key) {
			return true
		}
	}
	return false
}

// lookupKey finds the key in s matching name, preferring the exact spelling.
func lookupKey(s Specification, name string) (string, bool) {
	if _, ok := s[name]; ok {
		return name, true
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

func cloneFields(fields []CustomField) []CustomField {
	out := make([]CustomField, len(fields))
	copy(out, fields)
	return out
}
