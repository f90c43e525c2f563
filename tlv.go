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

import "encoding/binary"

// TLV types per NFC Forum Type 2 Tag specification. NDEF messages on tag
// memory are wrapped in a TLV block structure; extracting and wrapping are
// pure byte transforms, so they live alongside the codec.
const (
	TLVNull          byte = 0x00 // padding byte, no length field
	TLVLockControl   byte = 0x01 // lock bit positions
	TLVMemoryControl byte = 0x02 // reserved memory areas
	TLVNDEF          byte = 0x03 // NDEF message
	TLVTerminator    byte = 0xFE // end of data area, no length field
)

// tlvLongForm marks a three-octet length field: 0xFF then 16 bits big
// endian.
const tlvLongForm byte = 0xFF

// ExtractFromTLV scans a TLV block structure and returns the payload of the
// first NDEF TLV. NULL bytes and length-bearing blocks before it are
// skipped; a terminator before any NDEF TLV, or no NDEF TLV at all, yields
// a DecodeError wrapping ErrNoNDEFTLV.
func ExtractFromTLV(data []byte) ([]byte, error) {
	for i := 0; i < len(data); {
		switch data[i] {
		case TLVNull:
			i++
		case TLVTerminator:
			return nil, NewDecodeError("TLV", ErrNoNDEFTLV)
		case TLVNDEF:
			length, start, err := parseTLVLength(data, i)
			if err != nil {
				return nil, err
			}
			if start+length > len(data) {
				return nil, decodeErrorf("TLV", "NDEF TLV length %d exceeds remaining %d octets", length, len(data)-start)
			}
			return data[start : start+length], nil
		default:
			length, start, err := parseTLVLength(data, i)
			if err != nil {
				return nil, err
			}
			i = start + length
		}
	}
	return nil, NewDecodeError("TLV", ErrNoNDEFTLV)
}

// parseTLVLength reads the length field of the TLV at offset i and returns
// the payload length and the offset where the payload starts.
func parseTLVLength(data []byte, i int) (length, start int, err error) {
	if i+1 >= len(data) {
		return 0, 0, decodeErrorf("TLV", "%w at reading the length field", ErrBufferUnderflow)
	}
	if data[i+1] != tlvLongForm {
		return int(data[i+1]), i + 2, nil
	}
	if i+3 >= len(data) {
		return 0, 0, decodeErrorf("TLV", "%w at reading the long length field", ErrBufferUnderflow)
	}
	return int(binary.BigEndian.Uint16(data[i+2 : i+4])), i + 4, nil
}

// WrapInTLV wraps an encoded message in an NDEF TLV block followed by a
// terminator TLV, using the short length form below 255 octets and the
// long form up to 0xFFFF.
func WrapInTLV(message []byte) ([]byte, error) {
	var out []byte
	switch {
	case len(message) < 255:
		out = make([]byte, 0, len(message)+3)
		out = append(out, TLVNDEF, byte(len(message)))
	case len(message) <= 0xFFFF:
		out = make([]byte, 0, len(message)+5)
		var long [2]byte
		binary.BigEndian.PutUint16(long[:], uint16(len(message)))
		out = append(out, TLVNDEF, tlvLongForm, long[0], long[1])
	default:
		return nil, encodeErrorf("TLV", "message of %d octets exceeds the TLV length field", len(message))
	}
	out = append(out, message...)
	out = append(out, TLVTerminator)
	return out, nil
}

// ValidateTLVMessage checks that a TLV data area holds a well-formed NDEF
// message decodable against the given options.
func ValidateTLVMessage(data []byte, opts ...DecodeOption) error {
	message, err := ExtractFromTLV(data)
	if err != nil {
		return err
	}
	_, err = DecodeMessageBytes(message, opts...)
	return err
}
