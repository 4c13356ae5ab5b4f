package corpus

import (
	"errors"
	"fmt"
)

// ErrMissingSource is returned (wrapped) when a locale file does not exist.
var ErrMissingSource = errors.New("missing corpus source")

// MalformedRecordError reports a line that could not be decoded as a Record.
// The whole locale load fails when one is found.
type MalformedRecordError struct {
	Locale string
	Line   int
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("locale %s line %d: malformed record: %v", e.Locale, e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// SchemaViolation reports a field name that intent groups do not carry.
type SchemaViolation struct {
	Field Field
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("intent group has no field %q", string(e.Field))
}
