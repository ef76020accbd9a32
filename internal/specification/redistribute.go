package specification

import (
	"sort"
	"strings"
)

// Split separates a freshly loaded specification into schema values and
// custom fields. Keys that are neither attributes of the category nor the
// description become custom fields, ordered by key. Every attribute gets an
// entry so an input can be rendered for it.
func Split(spec Specification, attributes []string) (Specification, []CustomField) {
	out := make(Specification, len(spec))
	custom := []CustomField{}

	keys := make([]string, 0, len(spec))
	for k := range spec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch {
		case isDescription(k):
			out[k] = spec[k]
		case containsFold(attributes, k):
			out[k] = spec[k]
		default:
			custom = append(custom, CustomField{Key: k, Value: spec[k]})
		}
	}

	fillAttributes(out, attributes)
	return out, custom
}

// Redistribute moves values between the specification and the custom field
// list when an item switches from the oldAttrs schema to the newAttrs schema.
// Previously entered values are never discarded: schema values that the new
// category does not know become custom fields, and custom fields that the new
// category defines become schema values. The description is left alone.
// Neither input is modified.
func Redistribute(spec Specification, custom []CustomField, oldAttrs, newAttrs []string) (Specification, []CustomField) {
	out := spec.Clone()
	if out == nil {
		out = Specification{}
	}

	// 1. custom fields adopted by the new schema
	kept := make([]CustomField, 0, len(custom))
	for _, field := range custom {
		attr, ok := matchAttribute(newAttrs, field.Key)
		if !ok || isDescription(attr) {
			kept = append(kept, field)
			continue
		}
		if existing, found := lookupKey(out, attr); found && existing != attr {
			delete(out, existing)
		}
		out[attr] = field.Value
	}

	// 2. values the new schema no longer covers
	for _, attr := range oldAttrs {
		if isDescription(attr) || containsFold(newAttrs, attr) {
			continue
		}
		key, ok := lookupKey(out, attr)
		if !ok || isDescription(key) {
			continue
		}
		if value := out[key]; value != "" {
			kept = moveToCustom(kept, key, value)
		}
		delete(out, key)
	}

	// 3. inputs for every new attribute
	fillAttributes(out, newAttrs)

	return out, kept
}

// fillAttributes makes sure every attribute has an entry under its schema
// spelling, renaming case variants and adding empty values where missing.
func fillAttributes(spec Specification, attributes []string) {
	for _, attr := range attributes {
		if isDescription(attr) || strings.TrimSpace(attr) == "" {
			continue
		}
		key, ok := lookupKey(spec, attr)
		if !ok {
			spec[attr] = ""
			continue
		}
		if key != attr {
			value := spec[key]
			delete(spec, key)
			if current, exists := spec[attr]; !exists || current == "" {
				spec[attr] = value
			}
		}
	}
}

func matchAttribute(attributes []string, key string) (string, bool) {
	key = strings.TrimSpace(key)
	for _, attr := range attributes {
		if strings.EqualFold(attr, key) {
			return attr, true
		}
	}
	return "", false
}

// moveToCustom adds a schema value to the custom fields. When the user already
// keeps a custom field under the same key both entries stay, the schema value
// first, so the user's value is the one assembled last.
func moveToCustom(fields []CustomField, key, value string) []CustomField {
	for i := range fields {
		if strings.EqualFold(strings.TrimSpace(fields[i].Key), key) {
			out := make([]CustomField, 0, len(fields)+1)
			out = append(out, fields[:i]...)
			out = append(out, CustomField{Key: key, Value: value})
			return append(out, fields[i:]...)
		}
	}
	return append(fields, CustomField{Key: key, Value: value})
}
