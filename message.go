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
	"fmt"
	"io"
)

// DefaultMaxRecords bounds the number of records DecodeMessage accepts from
// a single message, guarding against adversarial input.
const DefaultMaxRecords = 64

// Message is an ordered sequence of records. On the wire the first record
// carries the message begin flag and the last the message end flag.
type Message struct {
	Records []*Record
}

// DecodeOption configures DecodeMessage.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	registry   *Registry
	maxRecords int
}

// WithRegistry selects the codec family used to dispatch decoded records.
func WithRegistry(registry *Registry) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.registry = registry
	}
}

// WithMaxRecords overrides the record count bound of DecodeMessage.
func WithMaxRecords(limit int) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.maxRecords = limit
	}
}

// DecodeMessage reads records from a forward-only stream until a record
// with the message end flag is produced. Exactly one record, the first,
// must carry the message begin flag. Chunked records are passed through
// unassembled.
func DecodeMessage(stream io.Reader, opts ...DecodeOption) (*Message, error) {
	cfg := decodeConfig{registry: DefaultRegistry, maxRecords: DefaultMaxRecords}
	for _, opt := range opts {
		opt(&cfg)
	}

	var records []*Record
	for {
		record, flags, err := DecodeRecord(stream, cfg.registry)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			if !flags.MB {
				return nil, decodeErrorf("MB", "first record must carry the message begin flag")
			}
		} else if flags.MB {
			return nil, decodeErrorf("MB", "message begin flag repeated on record %d", len(records))
		}
		records = append(records, record)
		if flags.ME {
			break
		}
		if len(records) >= cfg.maxRecords {
			return nil, decodeErrorf("ME", "no message end flag within %d records", cfg.maxRecords)
		}
	}

	debugf("decoded message with %d records", len(records))
	return &Message{Records: records}, nil
}

// DecodeMessageBytes decodes a complete message held in memory.
func DecodeMessageBytes(data []byte, opts ...DecodeOption) (*Message, error) {
	return DecodeMessage(bytes.NewReader(data), opts...)
}

// EncodeMessage serializes an ordered record sequence, setting the message
// begin flag only on the first record and the message end flag only on the
// last.
func EncodeMessage(records []*Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, NewEncodeError("", ErrEmptyMessage)
	}

	var out []byte
	for i, record := range records {
		data, err := EncodeRecord(record, i == 0, i == len(records)-1, false)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, data...)
	}
	return out, nil
}

// Marshal serializes the message.
func (m *Message) Marshal() ([]byte, error) {
	return EncodeMessage(m.Records)
}
