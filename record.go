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

import "fmt"

// MaxPayloadSize is the maximum PAYLOAD length of a single record, bounding
// worst case allocation against corrupt or adversarial length fields.
const MaxPayloadSize = 0x100000

// maxNameLength is the maximum length of the ID field in octets.
const maxNameLength = 255

// RecordPayload is the typed payload of a recognized record. Implementations
// carry the domain fields of one record kind and marshal them to the wire
// PAYLOAD bytes. The decode direction lives in the PayloadCodec registered
// for the type.
type RecordPayload interface {
	// Type returns the canonical type string of the payload kind
	Type() string

	// Marshal returns the wire PAYLOAD bytes
	Marshal() ([]byte, error)
}

// Record is a single NDEF record. A record is either opaque, carrying the
// raw PAYLOAD bytes of an unrecognized type, or typed, carrying a
// RecordPayload decoded by the codec registered for its type. The canonical
// type string is fixed at construction; the name (wire ID field) is
// read-writable and limited to 255 octets.
type Record struct {
	payload RecordPayload
	typ     string
	name    string
	raw     []byte
}

// NewRecord creates an opaque record. The type string is canonicalized and
// validated: it must be derivable from a TNF value 0 to 6.
func NewRecord(typ, name string, data []byte) (*Record, error) {
	tnf, typeBytes, err := EncodeTypeString(typ)
	if err != nil {
		return nil, err
	}
	canonical, err := DecodeTypeString(tnf, typeBytes)
	if err != nil {
		return nil, err
	}

	r := &Record{typ: canonical, raw: cloneBytes(data)}
	if err := r.SetName(name); err != nil {
		return nil, err
	}
	return r, nil
}

// NewTypedRecord wraps a typed payload in a record with an empty name.
func NewTypedRecord(payload RecordPayload) *Record {
	return &Record{typ: payload.Type(), payload: payload}
}

// Type returns the canonical type string. The type is read-only.
func (r *Record) Type() string { return r.typ }

// Name returns the record name (wire ID field).
func (r *Record) Name() string { return r.name }

// SetName sets the record name. Names longer than 255 octets yield a
// ValueError.
func (r *Record) SetName(name string) error {
	if len(name) > maxNameLength {
		return NewValueError("name", ErrNameTooLong)
	}
	r.name = name
	return nil
}

// Payload returns the typed payload, or false for an opaque record.
func (r *Record) Payload() (RecordPayload, bool) {
	return r.payload, r.payload != nil
}

// Data returns the wire PAYLOAD bytes: the marshaled typed payload, or the
// raw bytes of an opaque record.
func (r *Record) Data() ([]byte, error) {
	if r.payload != nil {
		return r.payload.Marshal()
	}
	return r.raw, nil
}

// String returns an informal representation suitable for printing
func (r *Record) String() string {
	if s, ok := r.payload.(fmt.Stringer); ok {
		return fmt.Sprintf("%s ID %q", s, r.name)
	}
	return fmt.Sprintf("NDEF Record TYPE %q ID %q % x", r.typ, r.name, r.raw)
}
