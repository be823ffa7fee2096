// Package errors provides the shared error vocabulary for textkit:
// sentinels for errors.Is matching plus structured types carrying the
// context batch tooling needs to report a failure usefully.
//
// Every structured type unwraps to its underlying cause when one is
// attached and to its sentinel otherwise, so errors.Is(err, sentinel)
// holds whenever no foreign cause displaces the chain.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups that found nothing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks rejected input, from parsing through validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported marks operations or formats textkit does not handle.
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError reports a lookup that found no resource.
type NotFoundError struct {
	Resource string // kind of thing looked up ("document", "run")
	ID       string
	Err      error
}

// NewNotFound builds a NotFoundError for one resource kind and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError reports input that failed a consistency check.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

// NewValidation builds a ValidationError for one field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError reports a failed file or resource operation. Unlike the
// other types it always carries a cause, so Unwrap never falls back to
// a sentinel.
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Err       error
}

// NewIO builds an IOError around a cause.
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports unreadable input in a named format.
type ParseError struct {
	Format  string // "JSON", "XML", "multitable"
	Path    string
	Message string
	Err     error
}

// NewParse builds a ParseError without a cause.
func NewParse(format, path, message string) *ParseError {
	return &ParseError{Format: format, Path: path, Message: message}
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ConversionError reports a string that would not convert to a typed
// value.
type ConversionError struct {
	Target string // "int64", "float32", "bool"
	Value  string
	Err    error
}

// NewConversion builds a ConversionError, optionally around a cause.
func NewConversion(target, value string, err error) *ConversionError {
	return &ConversionError{Target: target, Value: value, Err: err}
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s", e.Value, e.Target)
}

func (e *ConversionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError reports a feature or format textkit does not
// handle.
type UnsupportedError struct {
	Feature string
	Reason  string
	Err     error
}

// NewUnsupported builds an UnsupportedError.
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Reason: reason}
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf prefixes err with a formatted message. A nil err stays nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is re-exports errors.Is so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports errors.As so callers need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}
