// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so handlers can choose the right
// HTTP status and viewer-facing message.
type ErrorKind string

const (
	// KindValidation marks input that failed validation (empty required
	// field, value too long).
	KindValidation ErrorKind = "validation"

	// KindConstraint marks an operation blocked by a referential
	// constraint, such as deleting a category that still has children.
	KindConstraint ErrorKind = "constraint"

	// KindNotFound marks a referenced post or category that does not exist.
	KindNotFound ErrorKind = "not_found"

	// KindStore marks an underlying database read or write failure.
	// Store errors are surfaced to the viewer with no automatic retry.
	KindStore ErrorKind = "store"
)

// Error is a domain error with a kind and a message safe to show to
// the viewer. The wrapped cause, if any, carries driver-level detail
// for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewConstraintError creates a constraint violation error.
func NewConstraintError(format string, args ...any) *Error {
	return &Error{Kind: KindConstraint, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewStoreError wraps an underlying database failure with a message
// safe to display.
func NewStoreError(message string, cause error) *Error {
	return &Error{Kind: KindStore, Message: message, cause: cause}
}

// KindOf returns the kind of err if it is (or wraps) a domain Error,
// and "" otherwise.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
