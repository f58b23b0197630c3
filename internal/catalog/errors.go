package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes the expected, recoverable outcomes of catalog
// operations. Storage-engine failures are never surfaced with one of these
// codes; they are wrapped as plain errors at the store boundary.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the identifier resolved to no row.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeDuplicateName indicates a name uniqueness violation. Whether
	// the comparison was raw or normalized depends on the operation.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"

	// ErrCodeInvalidCategory indicates the referenced category id does not exist.
	ErrCodeInvalidCategory ErrorCode = "INVALID_CATEGORY"

	// ErrCodeMissingItems indicates one or more referenced item names are
	// absent. Error.Missing lists all of them, not just the first.
	ErrCodeMissingItems ErrorCode = "MISSING_ITEMS"

	// ErrCodePriceUnavailable indicates a derived combo price could not be computed.
	ErrCodePriceUnavailable ErrorCode = "PRICE_UNAVAILABLE"

	// ErrCodeNoFields indicates an update was requested with nothing to change.
	ErrCodeNoFields ErrorCode = "NO_FIELDS"
)

// Error is the domain error returned by catalog operations.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the offending name or reference, when one exists.
	Name string

	// Missing lists absent item names (for ErrCodeMissingItems).
	Missing []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, strings.Join(e.Missing, ", "))
	}
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFound creates a NOT_FOUND error for the given reference.
func NewNotFound(kind, ref string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: kind + " not found", Name: ref}
}

// NewDuplicateName creates a DUPLICATE_NAME error.
func NewDuplicateName(kind, name string) *Error {
	return &Error{Code: ErrCodeDuplicateName, Message: kind + " name already exists", Name: name}
}

// NewInvalidCategory creates an INVALID_CATEGORY error.
func NewInvalidCategory(id int64) *Error {
	return &Error{Code: ErrCodeInvalidCategory, Message: fmt.Sprintf("no category with id %d", id)}
}

// NewMissingItems creates a MISSING_ITEMS error listing every absent name.
func NewMissingItems(missing []string) *Error {
	return &Error{Code: ErrCodeMissingItems, Message: "combo references unknown items", Missing: missing}
}

// NewPriceUnavailable creates a PRICE_UNAVAILABLE error.
func NewPriceUnavailable(combo string) *Error {
	return &Error{Code: ErrCodePriceUnavailable, Message: "combo price cannot be computed", Name: combo}
}

// NewNoFields creates a NO_FIELDS error.
func NewNoFields() *Error {
	return &Error{Code: ErrCodeNoFields, Message: "no fields provided to update"}
}

// CodeOf extracts the ErrorCode from an error, or "" if the error is not a
// catalog error. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND catalog error.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsDuplicateName reports whether err is a DUPLICATE_NAME catalog error.
func IsDuplicateName(err error) bool { return CodeOf(err) == ErrCodeDuplicateName }

// IsInvalidCategory reports whether err is an INVALID_CATEGORY catalog error.
func IsInvalidCategory(err error) bool { return CodeOf(err) == ErrCodeInvalidCategory }

// IsMissingItems reports whether err is a MISSING_ITEMS catalog error.
func IsMissingItems(err error) bool { return CodeOf(err) == ErrCodeMissingItems }

// IsPriceUnavailable reports whether err is a PRICE_UNAVAILABLE catalog error.
func IsPriceUnavailable(err error) bool { return CodeOf(err) == ErrCodePriceUnavailable }

// IsNoFields reports whether err is a NO_FIELDS catalog error.
func IsNoFields(err error) bool { return CodeOf(err) == ErrCodeNoFields }

// MissingItems returns the missing-name list from a MISSING_ITEMS error,
// or nil for any other error.
func MissingItems(err error) []string {
	var ce *Error
	if errors.As(err, &ce) && ce.Code == ErrCodeMissingItems {
		return ce.Missing
	}
	return nil
}
