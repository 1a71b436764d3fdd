package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueID identifies a single attribute value. It is stored as a string but
// decodes from JSON numbers as well.
type ValueID string

// UnmarshalJSON accepts `"12"`, `12`, and `null`.
func (id *ValueID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("model: decode value id: %w", err)
		}
		*id = ValueID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("model: decode value id: %w", err)
	}
	*id = ValueID(n.String())
	return nil
}

// String returns the identifier as rendered into markup.
func (id ValueID) String() string {
	return string(id)
}

// AttributeValue is the unit rendered into a choice widget.
type AttributeValue struct {
	ID    ValueID `json:"id" yaml:"id" db:"value_id"`
	Label string  `json:"label" yaml:"label" db:"label"`
}

// ValueList is the getAttributeValues payload.
type ValueList struct {
	Items []AttributeValue `json:"items"`
}

// Attribute holds the named properties of a single attribute.
type Attribute map[string]any

// Property returns the named property and whether it is present.
func (a Attribute) Property(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	value, ok := a[name]
	return value, ok
}

// Schema maps attribute codes to their properties.
type Schema map[string]Attribute

// Attribute returns the attribute registered under code.
func (s Schema) Attribute(code string) (Attribute, bool) {
	if s == nil {
		return nil, false
	}
	attr, ok := s[code]
	return attr, ok
}

// Codes returns the attribute codes in lexical order.
func (s Schema) Codes() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SchemaPayload is the getAttributesSchema payload.
type SchemaPayload struct {
	Schema Schema `json:"schema"`
}

// PropertyString renders a schema property as text. Strings pass through,
// numbers and booleans are formatted, and nil becomes the empty string.
func PropertyString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
