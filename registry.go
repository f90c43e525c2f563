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

// PayloadCodec describes the typed codec registered for one canonical type
// string. Decode builds the typed payload from wire PAYLOAD bytes; the
// encode direction is the payload's own Marshal. A MaxPayloadLength of 0
// means unbounded (up to MaxPayloadSize, which the header codec enforces
// for every record).
type PayloadCodec struct {
	Decode           func(payload []byte) (RecordPayload, error)
	Type             string
	MinPayloadLength int
	MaxPayloadLength int
}

// Registry maps canonical type strings to payload codecs. A registry is
// populated at codec family setup time and read, never mutated, during
// decode and encode. A derived registry shares its base's codec table until
// its first Register call, which takes a private copy, so specialized
// families never leak registrations into the shared default.
type Registry struct {
	codecs map[string]*PayloadCodec
	shared bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]*PayloadCodec)}
}

// DefaultRegistry is the codec family used when no registry is supplied.
// The text and URI codecs register themselves here at package init.
var DefaultRegistry = NewRegistry()

// Derive creates a registry that shadows r: lookups see r's codecs until
// the derived registry's first Register call copies them.
func (r *Registry) Derive() *Registry {
	return &Registry{codecs: r.codecs, shared: true}
}

// Register adds a codec for its canonical type string, replacing any
// previous registration. Registering an incomplete codec is a setup time
// contract violation and panics.
func (r *Registry) Register(codec *PayloadCodec) {
	if codec == nil || codec.Type == "" || codec.Decode == nil {
		panic("ndef: Register needs a codec with a type string and a decode function")
	}
	if r.shared {
		clone := make(map[string]*PayloadCodec, len(r.codecs)+1)
		for typ, c := range r.codecs {
			clone[typ] = c
		}
		r.codecs = clone
		r.shared = false
	}
	r.codecs[codec.Type] = codec
}

// Lookup returns the codec registered for a canonical type string.
func (r *Registry) Lookup(typ string) (*PayloadCodec, bool) {
	codec, ok := r.codecs[typ]
	return codec, ok
}

// maxPayloadLength resolves the effective upper payload bound of a codec.
func (c *PayloadCodec) maxPayloadLength() int {
	if c.MaxPayloadLength == 0 {
		return MaxPayloadSize
	}
	return c.MaxPayloadLength
}
