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
	"regexp"
	"strings"
)

// TNF (Type Name Format) values as defined by NFC Forum.
const (
	TNFEmpty       byte = 0x00 // Empty record
	TNFWellKnown   byte = 0x01 // NFC Forum well-known type
	TNFMedia       byte = 0x02 // Media-type (RFC 2046)
	TNFAbsoluteURI byte = 0x03 // Absolute URI (RFC 3986), reserved
	TNFExternal    byte = 0x04 // NFC Forum external type
	TNFUnknown     byte = 0x05 // Unknown
	TNFUnchanged   byte = 0x06 // Unchanged (for chunked records)
	TNFReserved    byte = 0x07 // Reserved, invalid on the wire
)

// Canonical type string namespaces.
const (
	WellKnownPrefix = "urn:nfc:wkt:"
	ExternalPrefix  = "urn:nfc:ext:"
)

// tnfPrefix maps a TNF value to the canonical type string prefix.
var tnfPrefix = [7]string{"", WellKnownPrefix, "", "", ExternalPrefix, "unknown", "unchanged"}

// mediaTypeRE matches RFC 2045 style media types. Anchored at the start
// only, trailing characters do not disqualify a value.
var mediaTypeRE = regexp.MustCompile(`^[a-zA-Z0-9-]+/[a-zA-Z0-9-+.]+`)

// EncodeTypeString converts a canonical record type string into its TNF
// value and raw TYPE field bytes. The empty string maps to TNFEmpty,
// "urn:nfc:wkt:X" to TNFWellKnown, a media type to TNFMedia,
// "urn:nfc:ext:X" to TNFExternal and the literals "unknown" and
// "unchanged" to their TNF values. Absolute URIs (TNF 3) are never
// produced. Any other value yields a ValueError.
func EncodeTypeString(value string) (tnf byte, typeBytes []byte, err error) {
	switch {
	case value == "":
		tnf = TNFEmpty
	case strings.HasPrefix(value, WellKnownPrefix):
		tnf = TNFWellKnown
		typeBytes = []byte(value[len(WellKnownPrefix):])
	case mediaTypeRE.MatchString(value):
		tnf = TNFMedia
		typeBytes = []byte(value)
	case strings.HasPrefix(value, ExternalPrefix):
		tnf = TNFExternal
		typeBytes = []byte(value[len(ExternalPrefix):])
	case value == "unknown":
		tnf = TNFUnknown
	case value == "unchanged":
		tnf = TNFUnchanged
	default:
		return 0, nil, valueErrorf("type", "can not convert the record type string %q", value)
	}

	if len(typeBytes) > 255 {
		return 0, nil, NewValueError("type", ErrTypeTooLong)
	}
	return tnf, typeBytes, nil
}

// DecodeTypeString converts a TNF value and raw TYPE field bytes back into
// the canonical type string. For TNF 0, 5 and 6 the TYPE bytes are forced
// empty regardless of input. TYPE bytes must be ASCII.
func DecodeTypeString(tnf byte, typeBytes []byte) (string, error) {
	if tnf > TNFUnchanged {
		return "", NewDecodeError("TNF", ErrInvalidTNF)
	}
	if tnf == TNFEmpty || tnf == TNFUnknown || tnf == TNFUnchanged {
		typeBytes = nil
	}
	for _, b := range typeBytes {
		if b > 0x7F {
			return "", decodeErrorf("TYPE", "record type must be ASCII, got 0x%02X", b)
		}
	}
	return tnfPrefix[tnf] + string(typeBytes), nil
}
