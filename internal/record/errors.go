// Defines the named errors raised for filter builder misuse.

package record

import (
	"fmt"

	"github.com/maruel/notionsync/internal/schema"
)

// MissingFieldError reports a unique key that is not declared in the
// schema. This is caller misuse, never retried.
type MissingFieldError struct {
	Key string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q is not declared in the schema", e.Key)
}

// UnsupportedFilterTypeError reports a field whose type cannot be
// used in an equality filter.
type UnsupportedFilterTypeError struct {
	Key  string
	Type schema.FieldType
}

// Error implements the error interface.
func (e *UnsupportedFilterTypeError) Error() string {
	return fmt.Sprintf("field %q has type %q, which cannot be used as an upsert key", e.Key, e.Type)
}
