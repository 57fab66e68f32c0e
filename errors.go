// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"errors"
	"fmt"
)

var (
	// ErrReadInputFile is returned when endpoint file loading fails.
	ErrReadInputFile = errors.New("read input file")
	// ErrDecodeInput is returned when input document decoding fails.
	ErrDecodeInput = errors.New("decode input")
	// ErrInputNotArray is returned when input root is not an array of endpoints.
	ErrInputNotArray = errors.New("input root must be an array")
	// ErrUnknownInputFormat is returned when requested input format is not supported.
	ErrUnknownInputFormat = errors.New("unknown input format")
	// ErrUnknownFailurePolicy is returned when element failure policy is not supported.
	ErrUnknownFailurePolicy = errors.New("unknown failure policy")
	// ErrMissingField is returned when a required endpoint field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldType is returned when an endpoint field has an unexpected JSON type.
	ErrFieldType = errors.New("unexpected field type")
	// ErrFormatBody is returned when request or response body pretty-printing fails.
	ErrFormatBody = errors.New("format body")
	// ErrParseTemplate is returned when custom markdown template parsing fails.
	ErrParseTemplate = errors.New("parse markdown template")
	// ErrExecuteTemplate is returned when markdown template execution fails.
	ErrExecuteTemplate = errors.New("execute markdown template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
)

// ElementError describes one input array element that could not be parsed.
type ElementError struct {
	// Err is the underlying sentinel, ErrMissingField or ErrFieldType.
	Err error
	// Field is the offending endpoint key.
	Field string
	// Index is the zero-based position in the input array, -1 when unknown.
	Index int
}

// Error implements error.
func (e *ElementError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("element %d: field %q: %v", e.Index, e.Field, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ElementError) Unwrap() error {
	return e.Err
}
