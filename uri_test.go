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
	"bytes"
	"testing"
)

func TestURIRecordMarshal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		uri  string
		want []byte
	}{
		{
			name: "http www abbreviation",
			uri:  "http://www.example.com",
			want: append([]byte{0x01}, "example.com"...),
		},
		{
			name: "https www abbreviation",
			uri:  "https://www.example.com",
			want: append([]byte{0x02}, "example.com"...),
		},
		{
			name: "bare http abbreviation",
			uri:  "http://example.com",
			want: append([]byte{0x03}, "example.com"...),
		},
		{
			name: "tel abbreviation",
			uri:  "tel:+1-555-0100",
			want: append([]byte{0x05}, "+1-555-0100"...),
		},
		{
			name: "first match wins over a longer entry",
			uri:  "urn:epc:id:sgtin:0614141",
			want: append([]byte{0x13}, "epc:id:sgtin:0614141"...),
		},
		{
			name: "no abbreviation",
			uri:  "geo:48.2,16.4",
			want: append([]byte{0x00}, "geo:48.2,16.4"...),
		},
		{
			name: "empty URI",
			uri:  "",
			want: []byte{0x00},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewURIRecord(tt.uri).Marshal()
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Marshal() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestDecodeURIPayload(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want string
		wire []byte
	}{
		{
			name: "http www prefix",
			wire: append([]byte{0x01}, "example.com"...),
			want: "http://www.example.com",
		},
		{
			name: "no prefix",
			wire: append([]byte{0x00}, "geo:48.2,16.4"...),
			want: "geo:48.2,16.4",
		},
		{
			name: "last table entry",
			wire: append([]byte{0x23}, "handover"...),
			want: "urn:nfc:handover",
		},
		{
			name: "prefix with empty suffix",
			wire: []byte{0x05},
			want: "tel:",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			decoded, err := decodeURIPayload(tt.wire)
			if err != nil {
				t.Fatalf("decodeURIPayload() error: %v", err)
			}
			uri, ok := decoded.(*URIRecord)
			if !ok {
				t.Fatalf("decodeURIPayload() = %T, want *URIRecord", decoded)
			}
			if uri.URI() != tt.want {
				t.Errorf("URI() = %q, want %q", uri.URI(), tt.want)
			}
		})
	}
}

func TestDecodeURIPayloadIndexOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := decodeURIPayload(append([]byte{0x24}, "x"...))
	if err == nil {
		t.Fatal("decodeURIPayload() with index 0x24 returned no error")
	}
	if !IsDecodeError(err) {
		t.Errorf("decodeURIPayload() error = %v, want a DecodeError", err)
	}
}

func TestURIRecordRoundTrip(t *testing.T) {
	t.Parallel()

	for _, uri := range []string{
		"http://www.example.com/path?q=1",
		"mailto:user@example.com",
		"file:///tmp/tag.bin",
		"market://details?id=org.example",
	} {
		wire, err := NewURIRecord(uri).Marshal()
		if err != nil {
			t.Fatalf("Marshal(%q) error: %v", uri, err)
		}
		decoded, err := decodeURIPayload(wire)
		if err != nil {
			t.Fatalf("decodeURIPayload(%q wire) error: %v", uri, err)
		}
		if got := decoded.(*URIRecord).URI(); got != uri {
			t.Errorf("round trip = %q, want %q", got, uri)
		}
	}
}
