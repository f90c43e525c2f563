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

/*
Package ndef encodes and decodes NFC Data Exchange Format (NDEF) records
and messages: the compact tag/length/value wire format used to exchange
typed data with NFC tags and peers.

The package is a pure byte transform. It performs no tag communication;
bytes come in from a caller-provided stream or slice and go out as slices.

Decoding a message:

	msg, err := ndef.DecodeMessageBytes(data)
	if err != nil {
	    log.Fatal(err)
	}
	for _, rec := range msg.Records {
	    if payload, ok := rec.Payload(); ok {
	        fmt.Println(payload)
	    }
	}

Encoding a message:

	text, err := ndef.NewTextRecord("hello", "en", ndef.UTF8)
	if err != nil {
	    log.Fatal(err)
	}
	data, err := ndef.EncodeMessage([]*ndef.Record{ndef.NewTypedRecord(text)})

Record types:

A decoded record is typed when a payload codec is registered for its
canonical type string, and opaque otherwise. The text ("urn:nfc:wkt:T")
and URI ("urn:nfc:wkt:U") codecs are registered in DefaultRegistry.
Specialized codec families derive their own registry:

	reg := ndef.DefaultRegistry.Derive()
	reg.Register(&ndef.PayloadCodec{...})
	msg, err := ndef.DecodeMessageBytes(data, ndef.WithRegistry(reg))

Derived registries copy the base table on their first registration, so
the shared default is never mutated.

Payload codecs state their wire layout once as a compiled Layout and get
matching pack and unpack behavior, see CompileLayout.

Type 2 Tag support:

NDEF messages stored on Type 2 tags are wrapped in a TLV block structure.
ExtractFromTLV, WrapInTLV and ValidateTLVMessage handle that envelope.

Thread Safety:

Decoding and encoding are pure functions over their inputs. Registries
must be fully populated before the first decode; registration is not
synchronized with concurrent decodes.
*/
package ndef
