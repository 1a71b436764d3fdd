package attrschema

import (
	"errors"
	"fmt"
)

var (
	// ErrAttributeNotFound matches lookups for attributes missing from the schema.
	ErrAttributeNotFound = errors.New("attrschema: attribute not found")
	// ErrPropertyNotFound matches lookups for properties missing on a present attribute.
	ErrPropertyNotFound = errors.New("attrschema: property not found")
)

// LookupError describes a failed schema lookup.
type LookupError struct {
	TypeID    string
	Attribute string
	// Property is empty when the attribute itself is missing.
	Property string
}

func (e *LookupError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("attribute %q is undefined", e.Attribute)
	}
	return fmt.Sprintf("attribute property %q of %q is undefined", e.Property, e.Attribute)
}

// Is lets errors.Is match the sentinel for the failed lookup kind.
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrAttributeNotFound:
		return e.Property == ""
	case ErrPropertyNotFound:
		return e.Property != ""
	default:
		return false
	}
}
