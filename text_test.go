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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextRecordDefaults(t *testing.T) {
	t.Parallel()

	text, err := NewTextRecord("hello", "", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", text.Text())
	assert.Equal(t, "en", text.Language())
	assert.Equal(t, UTF8, text.Encoding())
	assert.Equal(t, TextType, text.Type())
}

func TestTextRecordMarshal(t *testing.T) {
	t.Parallel()

	text, err := NewTextRecord("hello", "en", UTF8)
	require.NoError(t, err)
	payload, err := text.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 'e', 'n', 'h', 'e', 'l', 'l', 'o'}, payload)

	text, err = NewTextRecord("abc", "de-DE", UTF8)
	require.NoError(t, err)
	payload, err = text.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05, 'd', 'e', '-', 'D', 'E', 'a', 'b', 'c'}, payload)
}

func TestTextRecordSetLanguage(t *testing.T) {
	t.Parallel()

	text, err := NewTextRecord("x", "", "")
	require.NoError(t, err)

	require.NoError(t, text.SetLanguage(strings.Repeat("a", 63)))

	err = text.SetLanguage("")
	require.Error(t, err)
	assert.True(t, IsValueError(err))

	err = text.SetLanguage(strings.Repeat("a", 64))
	require.Error(t, err)
	assert.True(t, IsValueError(err))

	err = text.SetLanguage("d\xc3\xa9")
	require.Error(t, err)
	assert.True(t, IsValueError(err))

	// a failed set keeps the previous language
	assert.Equal(t, strings.Repeat("a", 63), text.Language())
}

func TestTextRecordSetEncoding(t *testing.T) {
	t.Parallel()

	text, err := NewTextRecord("x", "", "")
	require.NoError(t, err)

	require.NoError(t, text.SetEncoding(UTF16))
	assert.Equal(t, UTF16, text.Encoding())

	err = text.SetEncoding("UTF-32")
	require.Error(t, err)
	assert.True(t, IsValueError(err))
	assert.Equal(t, UTF16, text.Encoding())

	_, err = NewTextRecord("x", "en", "latin-1")
	require.Error(t, err)
	assert.True(t, IsValueError(err))
}

func TestDecodeTextPayload(t *testing.T) {
	t.Parallel()

	payload, ok := decodeText(t, []byte{0x02, 'e', 'n', 'h', 'i'})
	require.True(t, ok)
	assert.Equal(t, "hi", payload.Text())
	assert.Equal(t, "en", payload.Language())
	assert.Equal(t, UTF8, payload.Encoding())

	// empty text after the language code is fine
	payload, ok = decodeText(t, []byte{0x02, 'e', 'n'})
	require.True(t, ok)
	assert.Equal(t, "", payload.Text())
}

func decodeText(t *testing.T, wire []byte) (*TextRecord, bool) {
	t.Helper()
	decoded, err := decodeTextPayload(wire)
	if err != nil {
		return nil, false
	}
	text, ok := decoded.(*TextRecord)
	require.True(t, ok)
	return text, true
}

func TestDecodeTextPayloadErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		wire []byte
	}{
		{name: "zero language length", wire: []byte{0x00, 'h', 'i'}},
		{name: "language length equals payload", wire: []byte{0x03, 'e', 'n'}},
		{name: "language length exceeds payload", wire: []byte{0x3F, 'e', 'n'}},
		{name: "invalid UTF-8 text", wire: []byte{0x02, 'e', 'n', 0xFF, 0xFE, 0xFD}},
		{name: "odd length UTF-16 text", wire: []byte{0x82, 'e', 'n', 0x00, 'h', 0x00}},
		{name: "lone high surrogate", wire: []byte{0x82, 'e', 'n', 0xD8, 0x00, 0x00, 'A'}},
		{name: "bare low surrogate", wire: []byte{0x82, 'e', 'n', 0xDC, 0x00}},
		{name: "high surrogate at end", wire: []byte{0x82, 'e', 'n', 0x00, 'A', 0xD8, 0x00}},
		{name: "two high surrogates", wire: []byte{0x82, 'e', 'n', 0xD8, 0x00, 0xD8, 0x00}},
		{name: "little endian lone surrogate", wire: []byte{0x82, 'e', 'n', 0xFF, 0xFE, 0x00, 0xD8}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := decodeTextPayload(tt.wire)
			require.Error(t, err)
			assert.True(t, IsDecodeError(err), "want a DecodeError, got %v", err)
		})
	}
}

func TestTextRecordUTF16RoundTrip(t *testing.T) {
	t.Parallel()

	text, err := NewTextRecord("héllo 世界", "fr", UTF16)
	require.NoError(t, err)
	payload, err := text.Marshal()
	require.NoError(t, err)

	// status octet: UTF-16 flag plus language length, then a BOM before
	// the big endian code units
	assert.Equal(t, byte(0x82), payload[0])
	assert.Equal(t, []byte{0xFE, 0xFF}, payload[3:5])

	decoded, ok := decodeText(t, payload)
	require.True(t, ok)
	assert.Equal(t, "héllo 世界", decoded.Text())
	assert.Equal(t, "fr", decoded.Language())
	assert.Equal(t, UTF16, decoded.Encoding())
}

func TestDecodeTextPayloadUTF16ByteOrder(t *testing.T) {
	t.Parallel()

	// little endian BOM
	decoded, ok := decodeText(t, []byte{0x82, 'e', 'n', 0xFF, 0xFE, 'h', 0x00, 'i', 0x00})
	require.True(t, ok)
	assert.Equal(t, "hi", decoded.Text())

	// without a BOM big endian is assumed
	decoded, ok = decodeText(t, []byte{0x82, 'e', 'n', 0x00, 'h', 0x00, 'i'})
	require.True(t, ok)
	assert.Equal(t, "hi", decoded.Text())
}

func TestTextRecordSurrogatePairRoundTrip(t *testing.T) {
	t.Parallel()

	text, err := NewTextRecord("\U0001F600", "en", UTF16)
	require.NoError(t, err)
	payload, err := text.Marshal()
	require.NoError(t, err)

	decoded, ok := decodeText(t, payload)
	require.True(t, ok)
	assert.Equal(t, "\U0001F600", decoded.Text())
}
