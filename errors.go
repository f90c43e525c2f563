// go-ndef
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-ndef.
//
// go-ndef is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-ndef is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ndef; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package ndef

import (
	"errors"
	"fmt"
)

// Codec errors
var (
	ErrInvalidTNF      = errors.New("TNF field value must be between 0 and 6")
	ErrBufferUnderflow = errors.New("buffer underflow")
	ErrPayloadTooLarge = errors.New("payload exceeds maximum size")
	ErrTypeTooLong     = errors.New("record type can not be more than 255 octets")
	ErrNameTooLong     = errors.New("record name can not be more than 255 octets")
	ErrEmptyMessage    = errors.New("empty message")
	ErrNoNDEFTLV       = errors.New("NDEF TLV not found")
)

// DecodeError reports malformed wire input: an invalid TNF, a structural
// invariant violation, a buffer underflow, a payload bound violation or an
// invalid payload encoding for a typed record.
type DecodeError struct {
	Err   error
	Field string
}

// NewDecodeError creates a DecodeError for the given wire field.
func NewDecodeError(field string, err error) *DecodeError {
	return &DecodeError{Field: field, Err: err}
}

func decodeErrorf(field, format string, args ...any) *DecodeError {
	return &DecodeError{Field: field, Err: fmt.Errorf(format, args...)}
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return "ndef: decode: " + e.Err.Error()
	}
	return fmt.Sprintf("ndef: decode %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a value that can not be converted to its wire form,
// such as a payload exceeding MaxPayloadSize.
type EncodeError struct {
	Err   error
	Field string
}

// NewEncodeError creates an EncodeError for the given wire field.
func NewEncodeError(field string, err error) *EncodeError {
	return &EncodeError{Field: field, Err: err}
}

func encodeErrorf(field, format string, args ...any) *EncodeError {
	return &EncodeError{Field: field, Err: fmt.Errorf(format, args...)}
}

func (e *EncodeError) Error() string {
	if e.Field == "" {
		return "ndef: encode: " + e.Err.Error()
	}
	return fmt.Sprintf("ndef: encode %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *EncodeError) Unwrap() error { return e.Err }

// ValueError reports an invalid constructor or setter argument, such as a
// record name longer than 255 octets or an unsupported text encoding tag.
type ValueError struct {
	Err   error
	Field string
}

// NewValueError creates a ValueError for the given record field.
func NewValueError(field string, err error) *ValueError {
	return &ValueError{Field: field, Err: err}
}

func valueErrorf(field, format string, args ...any) *ValueError {
	return &ValueError{Field: field, Err: fmt.Errorf(format, args...)}
}

func (e *ValueError) Error() string {
	if e.Field == "" {
		return "ndef: " + e.Err.Error()
	}
	return fmt.Sprintf("ndef: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *ValueError) Unwrap() error { return e.Err }

// IsDecodeError returns true if err is (or wraps) a DecodeError
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsEncodeError returns true if err is (or wraps) an EncodeError
func IsEncodeError(err error) bool {
	var ee *EncodeError
	return errors.As(err, &ee)
}

// IsValueError returns true if err is (or wraps) a ValueError
func IsValueError(err error) bool {
	var ve *ValueError
	return errors.As(err, &ve)
}
