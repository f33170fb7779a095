package staticstruct

import (
	"errors"
	"fmt"
)

var (
	// ErrKindMismatch indicates a slot received a value of a different kind than it is bound to.
	ErrKindMismatch = errors.New("staticstruct: kind mismatch")

	// ErrConversion indicates a converter rejected a well-typed shadow value.
	ErrConversion = errors.New("staticstruct: conversion failed")

	// ErrUnhandledField indicates the resolver declined a required field without depositing a value.
	ErrUnhandledField = errors.New("staticstruct: required field not resolved")

	// ErrDeclined may be returned by a resolver to decline a field explicitly.
	ErrDeclined = errors.New("staticstruct: field declined")

	// ErrLayoutMismatch indicates a converter whose shadow layout does not match the host type's size.
	ErrLayoutMismatch = errors.New("staticstruct: shadow layout does not match host type")

	// ErrShadowLength indicates a shadow sequence whose length differs from the declared one.
	ErrShadowLength = errors.New("staticstruct: shadow length mismatch")

	// ErrNilRegistry indicates a walk was started without a registry.
	ErrNilRegistry = errors.New("staticstruct: nil registry")

	// ErrNilIO indicates that NewReader/NewWriter was called with an nil interface
	ErrNilIO = errors.New("staticstruct: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrSizeTooSmall indicates a size conflict with bufio
	ErrSizeTooSmall = errors.New("staticstruct: NewReaderSize with a size smaller than 16 conflict with bufio")

	// ErrAlreadyBuffered indicates that NewReader/NewWriter was called with an already-buffered
	// reader/writer whose buffer is smaller than requested.
	ErrAlreadyBuffered = errors.New("staticstruct: reader or writer is already buffered")

	// ErrCountTooLarge indicates a length prefix above MaxCount.
	ErrCountTooLarge = errors.New("staticstruct: length prefix too large")

	// ErrTrailingData is returned by UnmarshalBinary when non-zero bytes are found
	// after the expected end of the data structure.
	ErrTrailingData = errors.New("staticstruct: non-zero trailing data found after decoding")

	// ErrTruncatedData indicates that fewer bytes were produced than the encoded size announced.
	ErrTruncatedData = errors.New("staticstruct: truncated data")
)

// MismatchError reports a value whose type differs from the one a slot accepts.
type MismatchError struct {
	Field    string
	Expected ValueKind
	// Actual is the kind of the rejected value, or the zero ValueKind when
	// its type has no native kind (a named or unsupported type).
	Actual ValueKind
	// ActualType is the Go type name of the rejected value.
	ActualType string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch at field `%s`: type `%s` expected but got type `%s`", e.Field, e.Expected, e.ActualType)
}

func (e *MismatchError) Unwrap() error { return ErrKindMismatch }

// ConversionError reports a shadow value a converter could not turn into
// its host type.
type ConversionError struct {
	Field  string
	Shadow ValueKind
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion from `%s` failed at field `%s`: %v", e.Shadow, e.Field, e.Err)
}

// Unwrap exposes both ErrConversion and the converter's own cause.
func (e *ConversionError) Unwrap() []error { return []error{ErrConversion, e.Err} }

// FieldError is the diagnostic a walk aborts with: the failing field and the
// first error recorded for it.
type FieldError struct {
	Field string
	Kind  ValueKind
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("error at object member with name `%s` (%s): %v", e.Field, e.Kind, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
