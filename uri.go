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
	"fmt"
	"strings"
)

// URIType is the canonical type string of the well-known URI record.
const URIType = WellKnownPrefix + "U"

// uriPrefixes is the fixed abbreviation table of the URI record: the wire
// payload starts with an index into this table followed by the remaining
// URI suffix. Index 0 means no abbreviation. Encoding picks the first
// matching entry in table order, not the longest match.
var uriPrefixes = [...]string{
	"", "http://www.", "https://www.", "http://", "https://", "tel:",
	"mailto:", "ftp://anonymous:anonymous@", "ftp://ftp.", "ftps://",
	"sftp://", "smb://", "nfs://", "ftp://", "dav://", "news:",
	"telnet://", "imap:", "rtsp://", "urn:", "pop:", "sip:", "sips:",
	"tftp:", "btspp://", "btl2cap://", "btgoep://", "tcpobex://",
	"irdaobex://", "file://", "urn:epc:id:", "urn:epc:tag:",
	"urn:epc:pat:", "urn:epc:raw:", "urn:epc:", "urn:nfc:",
}

// uriPayloadLayout is the wire layout of a URI payload: the prefix index
// octet followed by the URI suffix bytes.
var uriPayloadLayout = MustCompileLayout("B*")

// URIRecord is the typed payload of an NDEF URI record.
type URIRecord struct {
	uri string
}

// NewURIRecord creates a URI payload.
func NewURIRecord(uri string) *URIRecord {
	return &URIRecord{uri: uri}
}

// Type returns the canonical type string "urn:nfc:wkt:U".
func (*URIRecord) Type() string { return URIType }

// URI returns the full, unabbreviated URI.
func (u *URIRecord) URI() string { return u.uri }

// SetURI sets the URI.
func (u *URIRecord) SetURI(uri string) { u.uri = uri }

// Marshal returns the wire payload. The first table entry prefixing the
// URI is abbreviated to its index; without a match the index is 0 and the
// URI is carried whole.
func (u *URIRecord) Marshal() ([]byte, error) {
	for index, prefix := range uriPrefixes {
		if prefix != "" && strings.HasPrefix(u.uri, prefix) {
			return uriPayloadLayout.Pack(index, u.uri[len(prefix):])
		}
	}
	return uriPayloadLayout.Pack(0, u.uri)
}

// String returns an informal representation suitable for printing
func (u *URIRecord) String() string {
	return fmt.Sprintf("NDEF URIRecord URI %q", u.uri)
}

// decodeURIPayload builds a URIRecord from wire payload bytes by expanding
// the prefix index. The registry guarantees at least one octet.
func decodeURIPayload(payload []byte) (RecordPayload, error) {
	values, err := uriPayloadLayout.Unpack(payload)
	if err != nil {
		return nil, err
	}
	index := values[0].(int)
	suffix := values[1].([]byte)

	if index >= len(uriPrefixes) {
		return nil, decodeErrorf("prefix", "URI prefix index %d out of range", index)
	}
	return NewURIRecord(uriPrefixes[index] + string(suffix)), nil
}

func init() {
	DefaultRegistry.Register(&PayloadCodec{
		Type:             URIType,
		MinPayloadLength: 1,
		Decode:           decodeURIPayload,
	})
}
