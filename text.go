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
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// TextType is the canonical type string of the well-known text record.
const TextType = WellKnownPrefix + "T"

// Text transmission encodings.
const (
	UTF8  = "UTF-8"
	UTF16 = "UTF-16"
)

// Text payload status octet: bit 7 selects UTF-16, the low 6 bits carry the
// language code length.
const (
	textUTF16Flag   = 0x80
	textLangLenMask = 0x3F
	maxLanguageLen  = 63
)

// UTF-16 surrogate ranges: [surr1,surr2) high, [surr2,surr3) low.
const (
	surr1 uint16 = 0xD800
	surr2 uint16 = 0xDC00
	surr3 uint16 = 0xE000
)

// textPayloadLayout is the wire layout of a text payload: the status octet
// followed by the language code and text bytes.
var textPayloadLayout = MustCompileLayout("B*")

// TextRecord is the typed payload of an NDEF Text record: a text string
// with an IANA language code and a transmission encoding. Construct with
// NewTextRecord, which defaults the language to "en" and the encoding to
// UTF-8; a bare literal has no language and does not marshal to a valid
// payload.
type TextRecord struct {
	text     string
	language string
	encoding string
}

// NewTextRecord creates a text payload. Empty language and encoding select
// the defaults "en" and UTF-8.
func NewTextRecord(text, language, encoding string) (*TextRecord, error) {
	t := &TextRecord{language: "en", encoding: UTF8}
	t.SetText(text)
	if language != "" {
		if err := t.SetLanguage(language); err != nil {
			return nil, err
		}
	}
	if encoding != "" {
		if err := t.SetEncoding(encoding); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Type returns the canonical type string "urn:nfc:wkt:T".
func (*TextRecord) Type() string { return TextType }

// Text returns the text content.
func (t *TextRecord) Text() string { return t.text }

// SetText sets the text content.
func (t *TextRecord) SetText(text string) { t.text = text }

// Language returns the IANA language code of the text content.
func (t *TextRecord) Language() string { return t.language }

// SetLanguage sets the language code. It must be 1 to 63 ASCII characters,
// else a ValueError is returned.
func (t *TextRecord) SetLanguage(language string) error {
	if len(language) == 0 || len(language) > maxLanguageLen {
		return valueErrorf("language", "must be 1..63 characters, got %d", len(language))
	}
	for _, b := range []byte(language) {
		if b > 0x7F {
			return valueErrorf("language", "requires ascii text, got %q", language)
		}
	}
	t.language = language
	return nil
}

// Encoding returns the transmission encoding, UTF-8 or UTF-16.
func (t *TextRecord) Encoding() string { return t.encoding }

// SetEncoding sets the transmission encoding. It must be the literal
// "UTF-8" or "UTF-16", else a ValueError is returned.
func (t *TextRecord) SetEncoding(encoding string) error {
	if encoding != UTF8 && encoding != UTF16 {
		return valueErrorf("encoding", "may be 'UTF-8' or 'UTF-16', but not %q", encoding)
	}
	t.encoding = encoding
	return nil
}

// Marshal returns the wire payload: status octet, language code bytes and
// text bytes in the transmission encoding.
func (t *TextRecord) Marshal() ([]byte, error) {
	status := len(t.language)
	textBytes := []byte(t.text)
	if t.encoding == UTF16 {
		status |= textUTF16Flag
		textBytes = encodeUTF16(t.text)
	}
	return textPayloadLayout.Pack(status, append([]byte(t.language), textBytes...))
}

// String returns an informal representation suitable for printing
func (t *TextRecord) String() string {
	return fmt.Sprintf("NDEF TextRecord Text %q", t.text)
}

// decodeTextPayload builds a TextRecord from wire payload bytes. The
// registry guarantees at least one octet.
func decodeTextPayload(payload []byte) (RecordPayload, error) {
	values, err := textPayloadLayout.Unpack(payload)
	if err != nil {
		return nil, err
	}
	status := values[0].(int)
	rest := values[1].([]byte)

	langLen := status & textLangLenMask
	if langLen == 0 {
		return nil, decodeErrorf("language", "language code length can not be zero")
	}
	if langLen >= len(payload) {
		return nil, decodeErrorf("language", "language code length exceeds payload")
	}

	language := string(rest[:langLen])
	textBytes := rest[langLen:]

	encoding := UTF8
	var text string
	if status&textUTF16Flag != 0 {
		encoding = UTF16
		text, err = decodeUTF16(textBytes)
		if err != nil {
			return nil, err
		}
	} else {
		if !utf8.Valid(textBytes) {
			return nil, decodeErrorf("text", "can't be decoded as UTF-8")
		}
		text = string(textBytes)
	}

	record, err := NewTextRecord(text, language, encoding)
	if err != nil {
		return nil, NewDecodeError("language", err)
	}
	return record, nil
}

// encodeUTF16 encodes text as big endian UTF-16 with a leading byte order
// mark, per RFC 2781.
func encodeUTF16(text string) []byte {
	units := utf16.Encode([]rune(text))
	out := make([]byte, 2+2*len(units))
	binary.BigEndian.PutUint16(out, 0xFEFF)
	for i, u := range units {
		binary.BigEndian.PutUint16(out[2+2*i:], u)
	}
	return out
}

// decodeUTF16 decodes UTF-16 text bytes, honoring a byte order mark and
// defaulting to big endian without one.
func decodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", decodeErrorf("text", "can't be decoded as UTF-16: odd length %d", len(b))
	}
	var order binary.ByteOrder = binary.BigEndian
	if len(b) >= 2 {
		switch {
		case b[0] == 0xFE && b[1] == 0xFF:
			b = b[2:]
		case b[0] == 0xFF && b[1] == 0xFE:
			order = binary.LittleEndian
			b = b[2:]
		}
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = order.Uint16(b[2*i:])
	}
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u < surr1 || u >= surr3 {
			continue
		}
		// a high surrogate must pair with a following low surrogate
		if u >= surr2 || i+1 >= len(units) || units[i+1] < surr2 || units[i+1] >= surr3 {
			return "", decodeErrorf("text", "can't be decoded as UTF-16: unpaired surrogate 0x%04X", u)
		}
		i++
	}
	return string(utf16.Decode(units)), nil
}

func init() {
	DefaultRegistry.Register(&PayloadCodec{
		Type:             TextType,
		MinPayloadLength: 1,
		Decode:           decodeTextPayload,
	})
}
