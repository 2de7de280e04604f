package catalog

import "strings"

// placeholder is the marker the catalog source uses for "no data".
const placeholder = "-"

// Field is an optional text value of a muscle record.
// The zero value has no value.
type Field struct {
	value string
	ok    bool
}

// NewField builds a Field from raw catalog text. Blank text and the
// "-" placeholder both produce an empty Field.
func NewField(raw string) Field {
	v := strings.TrimSpace(raw)
	if v == "" || v == placeholder {
		return Field{}
	}
	return Field{value: v, ok: true}
}

// Value returns the text and whether it is present.
func (f Field) Value() (string, bool) {
	return f.value, f.ok
}

// Has reports whether the field carries a value.
func (f Field) Has() bool {
	return f.ok
}

// String returns the text, or "" when absent.
func (f Field) String() string {
	return f.value
}

// MarshalText encodes an absent field as the empty string.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.value), nil
}

// UnmarshalText accepts the same forms as NewField.
func (f *Field) UnmarshalText(b []byte) error {
	*f = NewField(string(b))
	return nil
}
