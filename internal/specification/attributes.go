package specification

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateAttribute = errors.New("attribute already added")
	ErrAttributeLimit     = errors.New("attribute limit reached")
	ErrAttributeIndex     = errors.New("attribute index out of range")
)

// ProtectedAttributeError is returned when a default attribute is added or
// removed by hand.
type ProtectedAttributeError struct {
	Attribute string
	Op        string
}

func (e *ProtectedAttributeError) Error() string {
	if e.Op == "remove" {
		return fmt.Sprintf("%s is a default attribute and cannot be removed", e.Attribute)
	}
	return fmt.Sprintf("%s is a default attribute and cannot be added manually", e.Attribute)
}

// AttributeListOptions tunes the behaviour of an AttributeList.
type AttributeListOptions struct {
	AllowDuplicates bool
	// MaxItems caps the list length, defaults included. Zero means no limit.
	MaxItems int
}

// AttributeList is an ordered list of attribute names in which the
// configured defaults are always present, always first and cannot be removed.
type AttributeList struct {
	defaults []string
	items    []string
	opts     AttributeListOptions
}

// NewAttributeList builds a list from an existing selection. Defaults found in
// selected are folded into the pinned prefix.
func NewAttributeList(defaults, selected []string, opts AttributeListOptions) *AttributeList {
	l := &AttributeList{opts: opts}
	for _, d := range defaults {
		d = strings.TrimSpace(d)
		if d == "" || containsFold(l.defaults, d) {
			continue
		}
		l.defaults = append(l.defaults, d)
	}
	var rest []string
	for _, item := range selected {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !opts.AllowDuplicates && containsFold(rest, item) {
			continue
		}
		rest = append(rest, item)
	}
	l.items = l.pin(rest)
	return l
}

// Items returns a copy of the current list.
func (l *AttributeList) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Defaults returns the configured defaults in order.
func (l *AttributeList) Defaults() []string {
	out := make([]string, len(l.defaults))
	copy(out, l.defaults)
	return out
}

// IsDefault reports whether name matches a configured default, ignoring case.
func (l *AttributeList) IsDefault(name string) bool {
	return containsFold(l.defaults, strings.TrimSpace(name))
}

// Add appends value. Blank input is ignored. Defaults, duplicates (unless
// allowed) and additions beyond MaxItems are rejected without changing the list.
func (l *AttributeList) Add(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if l.IsDefault(value) {
		return &ProtectedAttributeError{Attribute: value, Op: "add"}
	}
	if !l.opts.AllowDuplicates && containsFold(l.items, value) {
		return ErrDuplicateAttribute
	}
	if l.opts.MaxItems > 0 && len(l.items) >= l.opts.MaxItems {
		return ErrAttributeLimit
	}
	l.items = l.pin(append(l.Items(), value))
	return nil
}

// Remove deletes the attribute at index unless it is a default.
func (l *AttributeList) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return ErrAttributeIndex
	}
	if target := l.items[index]; l.IsDefault(target) {
		return &ProtectedAttributeError{Attribute: target, Op: "remove"}
	}
	next := make([]string, 0, len(l.items)-1)
	next = append(next, l.items[:index]...)
	next = append(next, l.items[index+1:]...)
	l.items = l.pin(next)
	return nil
}

// pin puts every default first in configured order, followed by the
// non-default entries of items in their existing order.
func (l *AttributeList) pin(items []string) []string {
	out := make([]string, 0, len(l.defaults)+len(items))
	out = append(out, l.defaults...)
	for _, item := range items {
		if !l.IsDefault(item) {
			out = append(out, item)
		}
	}
	return out
}
