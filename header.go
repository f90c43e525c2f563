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
	"encoding/binary"
	"errors"
	"io"
)

// Record header flag bits.
const (
	flagMB  byte = 0x80 // Message Begin
	flagME  byte = 0x40 // Message End
	flagCF  byte = 0x20 // Chunk Flag
	flagSR  byte = 0x10 // Short Record
	flagIL  byte = 0x08 // ID Length present
	tnfMask byte = 0x07
)

// Flags carries the message framing bits of a decoded record. Their
// interpretation across records is the message codec's concern; the chunk
// flag is preserved but chunk reassembly is not performed at this layer.
type Flags struct {
	MB bool
	ME bool
	CF bool
}

// EncodeRecord serializes one record with the given framing flags. The SR
// flag is derived from the payload length and the IL flag from the name.
func EncodeRecord(r *Record, mb, me, cf bool) ([]byte, error) {
	tnf, derivedType, err := EncodeTypeString(r.Type())
	if err != nil {
		return nil, err
	}
	data, err := r.Data()
	if err != nil {
		return nil, err
	}

	var typeField, idField, payload []byte
	switch tnf {
	case TNFEmpty:
		// all fields empty
	case TNFUnknown:
		idField = []byte(r.Name())
		payload = data
	case TNFUnchanged:
		payload = data
	default:
		typeField = derivedType
		idField = []byte(r.Name())
		payload = data
	}

	if len(payload) > MaxPayloadSize {
		return nil, NewEncodeError("PAYLOAD", ErrPayloadTooLarge)
	}

	flags := tnf & tnfMask
	if mb {
		flags |= flagMB
	}
	if me {
		flags |= flagME
	}
	if cf {
		flags |= flagCF
	}
	sr := len(payload) < 256
	if sr {
		flags |= flagSR
	}
	if len(idField) > 0 {
		flags |= flagIL
	}

	out := make([]byte, 0, 6+len(typeField)+len(idField)+len(payload))
	out = append(out, flags, byte(len(typeField)))
	if sr {
		out = append(out, byte(len(payload)))
	} else {
		var plen [4]byte
		binary.BigEndian.PutUint32(plen[:], uint32(len(payload)))
		out = append(out, plen[:]...)
	}
	if len(idField) > 0 {
		out = append(out, byte(len(idField)))
	}
	out = append(out, typeField...)
	out = append(out, idField...)
	out = append(out, payload...)
	return out, nil
}

// DecodeRecord reads one record from a forward-only stream. Recognized
// types are dispatched through the registry to a typed payload; unknown
// types produce an opaque record. A nil registry means DefaultRegistry.
// The framing flags are returned for the message codec to interpret.
func DecodeRecord(stream io.Reader, registry *Registry) (*Record, Flags, error) {
	if registry == nil {
		registry = DefaultRegistry
	}

	var octet0 [1]byte
	if _, err := io.ReadFull(stream, octet0[:]); err != nil {
		return nil, Flags{}, decodeErrorf("header", "%w at reading the flags octet", ErrBufferUnderflow)
	}

	flags := Flags{
		MB: octet0[0]&flagMB != 0,
		ME: octet0[0]&flagME != 0,
		CF: octet0[0]&flagCF != 0,
	}
	sr := octet0[0]&flagSR != 0
	il := octet0[0]&flagIL != 0
	tnf := octet0[0] & tnfMask

	if tnf == TNFReserved {
		return nil, Flags{}, NewDecodeError("TNF", ErrInvalidTNF)
	}

	typeLen, payloadLen, idLen, err := decodeLengthFields(stream, sr, il)
	if err != nil {
		return nil, Flags{}, err
	}
	if err := checkLengthInvariants(tnf, typeLen, payloadLen, idLen); err != nil {
		return nil, Flags{}, err
	}
	if payloadLen > MaxPayloadSize {
		return nil, Flags{}, NewDecodeError("PAYLOAD_LENGTH", ErrPayloadTooLarge)
	}

	typeBytes, err := readField(stream, typeLen, "TYPE")
	if err != nil {
		return nil, Flags{}, err
	}
	idBytes, err := readField(stream, idLen, "ID")
	if err != nil {
		return nil, Flags{}, err
	}
	payload, err := readField(stream, payloadLen, "PAYLOAD")
	if err != nil {
		return nil, Flags{}, err
	}

	typeString, err := DecodeTypeString(tnf, typeBytes)
	if err != nil {
		return nil, Flags{}, err
	}

	record, err := buildRecord(registry, typeString, idBytes, payload)
	if err != nil {
		return nil, Flags{}, err
	}
	return record, flags, nil
}

// decodeLengthFields reads TYPE_LENGTH, PAYLOAD_LENGTH and, when the IL
// flag is set, ID_LENGTH.
func decodeLengthFields(stream io.Reader, sr, il bool) (typeLen, payloadLen, idLen int, err error) {
	n := 2 // TYPE_LENGTH + short PAYLOAD_LENGTH
	if !sr {
		n = 5
	}
	if il {
		n++
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(stream, buf); err != nil {
		return 0, 0, 0, decodeErrorf("header", "%w at reading length fields", ErrBufferUnderflow)
	}

	typeLen = int(buf[0])
	if sr {
		payloadLen = int(buf[1])
		buf = buf[2:]
	} else {
		payloadLen = int(binary.BigEndian.Uint32(buf[1:5]))
		buf = buf[5:]
	}
	if il {
		idLen = int(buf[0])
	}
	return typeLen, payloadLen, idLen, nil
}

// checkLengthInvariants enforces the structural constraints each TNF value
// places on the length fields.
func checkLengthInvariants(tnf byte, typeLen, payloadLen, idLen int) error {
	switch tnf {
	case TNFEmpty, TNFUnknown, TNFUnchanged:
		if typeLen != 0 {
			return decodeErrorf("TYPE_LENGTH", "must be 0 for TNF value %d", tnf)
		}
	default:
		if typeLen == 0 {
			return decodeErrorf("TYPE_LENGTH", "must be > 0 for TNF value %d", tnf)
		}
	}
	if tnf == TNFEmpty {
		if idLen != 0 {
			return decodeErrorf("ID_LENGTH", "must be 0 for TNF value %d", tnf)
		}
		if payloadLen != 0 {
			return decodeErrorf("PAYLOAD_LENGTH", "must be 0 for TNF value %d", tnf)
		}
	}
	return nil
}

func readField(stream io.Reader, n int, field string) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(stream, buf); err != nil {
		return nil, decodeErrorf(field, "%w at reading %d octets", ErrBufferUnderflow, n)
	}
	return buf, nil
}

// buildRecord dispatches a decoded record through the registry, checking
// the codec's payload bounds, or falls back to an opaque record.
func buildRecord(registry *Registry, typeString string, idBytes, payload []byte) (*Record, error) {
	codec, ok := registry.Lookup(typeString)
	if !ok {
		debugf("no codec for type %q, keeping record opaque", typeString)
		record := &Record{typ: typeString, raw: payload}
		if err := record.SetName(string(idBytes)); err != nil {
			return nil, err
		}
		return record, nil
	}

	if len(payload) < codec.MinPayloadLength {
		return nil, decodeErrorf("PAYLOAD", "payload length can not be less than %d", codec.MinPayloadLength)
	}
	if len(payload) > codec.maxPayloadLength() {
		return nil, decodeErrorf("PAYLOAD", "payload length can not be more than %d", codec.maxPayloadLength())
	}

	typed, err := codec.Decode(payload)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, NewDecodeError("PAYLOAD", err)
	}
	debugf("decoded %q record, %d octet payload", typeString, len(payload))

	record := &Record{typ: typeString, payload: typed}
	if err := record.SetName(string(idBytes)); err != nil {
		return nil, err
	}
	return record, nil
}
