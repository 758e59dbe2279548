package config

import (
	"fmt"
	"strings"
)

// DuplicateKeyError is returned when a primary key is re-registered with a
// definition that is not equal to the one already registered, under the
// strict duplicate policy.
type DuplicateKeyError struct {
	Key     string
	Section string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("config key %q already defined in section %q", e.Key, e.Section)
}

// UnknownKeyError is returned by lookups and alias resolution when the given
// alias was never registered in the set.
type UnknownKeyError struct {
	Key     string
	Section string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q in section %q", e.Key, e.Section)
}

// CircularReferenceError is returned when resolving a key re-enters itself
// through the chain of nested lookups.
type CircularReferenceError struct {
	Key   string
	Chain []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular configuration reference for %q (chain: %s)",
		e.Key, strings.Join(append(append([]string{}, e.Chain...), e.Key), " -> "))
}

// InvalidRawValueError is returned by a definition factory when a raw loaded
// value cannot be converted to the expected form.
type InvalidRawValueError struct {
	Key   string
	Raw   any
	Cause error
}

func (e *InvalidRawValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid raw value for config key %q: %v", e.Key, e.Cause)
	}
	return fmt.Sprintf("invalid raw value for config key %q: cannot use %T value %v", e.Key, e.Raw, e.Raw)
}

// Unwrap returns the underlying cause error.
func (e *InvalidRawValueError) Unwrap() error {
	return e.Cause
}
