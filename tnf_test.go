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
	"strings"
	"testing"
)

func TestEncodeTypeString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		value     string
		wantBytes string
		wantTNF   byte
		wantErr   bool
	}{
		{
			name:    "empty string",
			value:   "",
			wantTNF: TNFEmpty,
		},
		{
			name:      "well-known type",
			value:     "urn:nfc:wkt:T",
			wantTNF:   TNFWellKnown,
			wantBytes: "T",
		},
		{
			name:      "media type",
			value:     "text/plain",
			wantTNF:   TNFMedia,
			wantBytes: "text/plain",
		},
		{
			name:      "media type with plus",
			value:     "image/svg+xml",
			wantTNF:   TNFMedia,
			wantBytes: "image/svg+xml",
		},
		{
			name:      "external type",
			value:     "urn:nfc:ext:example.com:f",
			wantTNF:   TNFExternal,
			wantBytes: "example.com:f",
		},
		{
			name:    "unknown literal",
			value:   "unknown",
			wantTNF: TNFUnknown,
		},
		{
			name:    "unchanged literal",
			value:   "unchanged",
			wantTNF: TNFUnchanged,
		},
		{
			name:    "unconvertible value",
			value:   "not a type",
			wantErr: true,
		},
		{
			name:    "absolute URI is not auto-detected",
			value:   "http://example.com/type",
			wantErr: true,
		},
		{
			name:    "type bytes over 255 octets",
			value:   WellKnownPrefix + strings.Repeat("x", 256),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tnf, typeBytes, err := EncodeTypeString(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EncodeTypeString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsValueError(err) {
					t.Errorf("EncodeTypeString() error = %v, want a ValueError", err)
				}
				return
			}
			if tnf != tt.wantTNF {
				t.Errorf("EncodeTypeString() TNF = %d, want %d", tnf, tt.wantTNF)
			}
			if string(typeBytes) != tt.wantBytes {
				t.Errorf("EncodeTypeString() TYPE = %q, want %q", typeBytes, tt.wantBytes)
			}
		})
	}
}

func TestDecodeTypeString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		typeBytes string
		want      string
		tnf       byte
		wantErr   bool
	}{
		{
			name: "empty",
			tnf:  TNFEmpty,
			want: "",
		},
		{
			name:      "well-known",
			tnf:       TNFWellKnown,
			typeBytes: "T",
			want:      "urn:nfc:wkt:T",
		},
		{
			name:      "media",
			tnf:       TNFMedia,
			typeBytes: "text/plain",
			want:      "text/plain",
		},
		{
			name:      "external",
			tnf:       TNFExternal,
			typeBytes: "foo",
			want:      "urn:nfc:ext:foo",
		},
		{
			name:      "unknown forces empty type bytes",
			tnf:       TNFUnknown,
			typeBytes: "ignored",
			want:      "unknown",
		},
		{
			name:      "unchanged forces empty type bytes",
			tnf:       TNFUnchanged,
			typeBytes: "ignored",
			want:      "unchanged",
		},
		{
			name:    "reserved TNF",
			tnf:     TNFReserved,
			wantErr: true,
		},
		{
			name:      "non-ASCII type bytes",
			tnf:       TNFMedia,
			typeBytes: "text/\xffplain",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeTypeString(tt.tnf, []byte(tt.typeBytes))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeTypeString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsDecodeError(err) {
					t.Errorf("DecodeTypeString() error = %v, want a DecodeError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("DecodeTypeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	t.Parallel()
	values := []string{
		"",
		"urn:nfc:wkt:T",
		"text/plain",
		"urn:nfc:ext:foo",
		"unknown",
		"unchanged",
	}

	for _, value := range values {
		value := value
		t.Run(value, func(t *testing.T) {
			t.Parallel()
			tnf, typeBytes, err := EncodeTypeString(value)
			if err != nil {
				t.Fatalf("EncodeTypeString(%q) error = %v", value, err)
			}
			got, err := DecodeTypeString(tnf, typeBytes)
			if err != nil {
				t.Fatalf("DecodeTypeString() error = %v", err)
			}
			if got != value {
				t.Errorf("round trip = %q, want %q", got, value)
			}
		})
	}
}
