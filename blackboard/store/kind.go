package store

import (
	"fmt"
	"strings"
)

// Kind names one of the three entry tables.
type Kind int

const (
	// KindInt is the int32 table. Booleans are stored here as 0/1.
	KindInt Kind = iota
	// KindFloat is the float32 table.
	KindFloat
	// KindVec3 is the three-component float32 vector table.
	KindVec3
)

// Kinds lists every kind in table order.
var Kinds = [...]Kind{KindInt, KindFloat, KindVec3}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVec3:
		return "vec3"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String. It is case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "vec3":
		return KindVec3, nil
	default:
		return 0, fmt.Errorf("%w: %q; valid values are: %q, %q, %q", ErrInvalidKind, s, "int", "float", "vec3")
	}
}
