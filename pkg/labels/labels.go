// Package labels holds the fixed label dictionaries used by the attribute
// forms: descriptions for attribute codes the backend schema does not
// describe, and captions for boolean attributes keyed by attribute id.
package labels

import (
	"sort"
	"strings"
)

// Dictionary is an immutable string lookup table.
type Dictionary struct {
	entries map[string]string
}

// NewDictionary copies entries into a new Dictionary.
func NewDictionary(entries map[string]string) Dictionary {
	out := make(map[string]string, len(entries))
	for key, value := range entries {
		out[strings.TrimSpace(key)] = value
	}
	return Dictionary{entries: out}
}

// Lookup returns the label for key and whether it exists.
func (d Dictionary) Lookup(key string) (string, bool) {
	value, ok := d.entries[key]
	return value, ok
}

// Label returns the label for key or the empty string.
func (d Dictionary) Label(key string) string {
	return d.entries[key]
}

// Has reports whether key is present.
func (d Dictionary) Has(key string) bool {
	_, ok := d.entries[key]
	return ok
}

// Len returns the number of entries.
func (d Dictionary) Len() int {
	return len(d.entries)
}

// Keys returns the keys in lexical order.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for key := range d.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the entries.
func (d Dictionary) Map() map[string]string {
	out := make(map[string]string, len(d.entries))
	for key, value := range d.entries {
		out[key] = value
	}
	return out
}

// Merge returns a new Dictionary with overrides applied on top of d.
func (d Dictionary) Merge(overrides map[string]string) Dictionary {
	merged := d.Map()
	for key, value := range overrides {
		merged[strings.TrimSpace(key)] = value
	}
	return Dictionary{entries: merged}
}

var (
	defaultDescriptions = NewDictionary(map[string]string{
		"tags":       "Теги",
		"party":      "Кол-во людей",
		"date_begin": "Дата начала",
		"date_end":   "Дата окончания",
		"price_min":  "Цена от",
		"price_max":  "Цена до",
	})

	defaultBooleanValues = NewDictionary(map[string]string{
		"15": "Питание",
		"17": "Проживание",
		"67": "Предоплата",
		"69": "Отмена бронирования",
	})
)

// DefaultDescriptions returns the built-in attribute descriptions.
func DefaultDescriptions() Dictionary {
	return defaultDescriptions
}

// DefaultBooleanValues returns the built-in boolean attribute captions.
func DefaultBooleanValues() Dictionary {
	return defaultBooleanValues
}

// LabelForBooleanValue returns the caption for a boolean attribute id, or the
// empty string when the id is unknown.
func LabelForBooleanValue(value string) string {
	return defaultBooleanValues.Label(value)
}

// Set groups the dictionaries used by a module instance.
type Set struct {
	Descriptions  Dictionary
	BooleanValues Dictionary
}

// Defaults returns the built-in Set.
func Defaults() Set {
	return Set{
		Descriptions:  defaultDescriptions,
		BooleanValues: defaultBooleanValues,
	}
}

// LabelForBooleanValue looks up value in the set's boolean captions.
func (s Set) LabelForBooleanValue(value string) string {
	return s.BooleanValues.Label(value)
}
