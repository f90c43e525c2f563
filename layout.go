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
	"encoding/binary"
	"fmt"
)

// Layout is a compiled binary field layout shared by the pack and unpack
// directions of a payload codec. A layout is compiled once from a compact
// format string and validated at compile time, so each Pack and Unpack call
// only walks the prepared field list.
//
// Format grammar:
//
//	['>' | '<']         byte order, big endian default, leading only
//	'B' | 'H' | 'L'     unsigned 8, 16 or 32 bit integer
//	N's'                fixed run of N bytes
//	'+'                 length link: the preceding integer field carries the
//	                    byte length of the run that follows
//	'+(' fields ')'     grouped length link: the preceding integer field
//	                    carries the repeat count of the fixed width tuple
//	'*'                 all remaining bytes as one run, or, followed by a
//	                    single integer specifier, that integer repeated
//	                    until the input is exhausted; at most one, final
//
// Unpack yields int for integer fields, []byte for byte runs and [][]any
// for grouped length links. Pack accepts the same shapes, with lengths and
// counts computed by the engine rather than supplied by the caller.
type Layout struct {
	order  binary.ByteOrder
	format string
	fields []layoutField
}

type layoutKind int

const (
	layoutUint       layoutKind = iota // fixed width unsigned integer
	layoutBytes                        // fixed byte run
	layoutRest                         // bare wildcard, rest as one byte run
	layoutRestRepeat                   // wildcard with trailing integer
	layoutLenBytes                     // length prefixed byte run
	layoutLenGroup                     // length prefixed repeated tuple
)

type layoutField struct {
	group []layoutField
	name  string
	kind  layoutKind
	size  int // integer width or byte run length
	nlen  int // width of the fused length prefix
}

// CompileLayout compiles and validates a layout format string. Malformed
// formats are contract violations of the calling codec, reported here once
// rather than on every pack or unpack call.
func CompileLayout(format string) (*Layout, error) {
	l := &Layout{order: binary.BigEndian, format: format}

	s := format
	if s != "" && (s[0] == '>' || s[0] == '<') {
		if s[0] == '<' {
			l.order = binary.LittleEndian
		}
		s = s[1:]
	}

	seenWildcard := false
	for i := 0; i < len(s); {
		if seenWildcard {
			return nil, layoutErrorf(format, "no fields may follow the wildcard")
		}
		c := s[i]
		switch {
		case c == '>' || c == '<':
			return nil, layoutErrorf(format, "repeated byte order marker")
		case c == 'B' || c == 'H' || c == 'L':
			l.fields = append(l.fields, layoutField{
				kind: layoutUint,
				size: intWidth(c),
				name: fieldName(len(l.fields), c),
			})
			i++
		case c >= '0' && c <= '9':
			n := 0
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				n = n*10 + int(s[i]-'0')
				i++
			}
			if i >= len(s) || s[i] != 's' {
				return nil, layoutErrorf(format, "byte run length %d without 's'", n)
			}
			l.fields = append(l.fields, layoutField{
				kind: layoutBytes,
				size: n,
				name: fieldName(len(l.fields), 's'),
			})
			i++
		case c == '+':
			prev, err := l.popLengthField(format)
			if err != nil {
				return nil, err
			}
			if i+1 < len(s) && s[i+1] == '(' {
				group, consumed, err := compileGroup(format, s[i+2:])
				if err != nil {
					return nil, err
				}
				prev.kind = layoutLenGroup
				prev.group = group
				l.fields = append(l.fields, prev)
				i += 2 + consumed
			} else {
				prev.kind = layoutLenBytes
				l.fields = append(l.fields, prev)
				i++
			}
		case c == '*':
			seenWildcard = true
			if i+1 < len(s) {
				e := s[i+1]
				if e != 'B' && e != 'H' && e != 'L' {
					return nil, layoutErrorf(format, "wildcard may only repeat an integer specifier, got %q", string(e))
				}
				if i+2 < len(s) {
					return nil, layoutErrorf(format, "no fields may follow the wildcard")
				}
				l.fields = append(l.fields, layoutField{
					kind: layoutRestRepeat,
					size: intWidth(e),
					name: fieldName(len(l.fields), '*'),
				})
				i += 2
			} else {
				l.fields = append(l.fields, layoutField{
					kind: layoutRest,
					name: fieldName(len(l.fields), '*'),
				})
				i++
			}
		default:
			return nil, layoutErrorf(format, "unknown specifier %q", string(c))
		}
	}

	return l, nil
}

// MustCompileLayout is like CompileLayout but panics on a malformed format.
// Intended for package level layout variables, following the regexp idiom.
func MustCompileLayout(format string) *Layout {
	l, err := CompileLayout(format)
	if err != nil {
		panic(err)
	}
	return l
}

// popLengthField removes and returns the field preceding a '+', which must
// be a plain fixed width integer.
func (l *Layout) popLengthField(format string) (layoutField, error) {
	if len(l.fields) == 0 {
		return layoutField{}, layoutErrorf(format, "length link without a preceding field")
	}
	prev := l.fields[len(l.fields)-1]
	if prev.kind != layoutUint {
		return layoutField{}, layoutErrorf(format, "length link must follow a fixed width integer field")
	}
	l.fields = l.fields[:len(l.fields)-1]
	prev.nlen = prev.size
	prev.size = 0
	return prev, nil
}

// compileGroup parses the tuple members of a '+( ... )' grouped length
// link. Members must be fixed width: integers or sized byte runs.
func compileGroup(format, s string) (group []layoutField, consumed int, err error) {
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ')':
			if len(group) == 0 {
				return nil, 0, layoutErrorf(format, "empty group")
			}
			return group, i + 1, nil
		case c == 'B' || c == 'H' || c == 'L':
			group = append(group, layoutField{
				kind: layoutUint,
				size: intWidth(c),
				name: fieldName(len(group), c),
			})
			i++
		case c >= '0' && c <= '9':
			n := 0
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				n = n*10 + int(s[i]-'0')
				i++
			}
			if i >= len(s) || s[i] != 's' {
				return nil, 0, layoutErrorf(format, "byte run length %d without 's'", n)
			}
			group = append(group, layoutField{
				kind: layoutBytes,
				size: n,
				name: fieldName(len(group), 's'),
			})
			i++
		default:
			return nil, 0, layoutErrorf(format, "invalid group specifier %q", string(c))
		}
	}
	return nil, 0, layoutErrorf(format, "unterminated group")
}

func layoutErrorf(format, msg string, args ...any) error {
	return fmt.Errorf("ndef: layout %q: "+msg, append([]any{format}, args...)...)
}

func intWidth(c byte) int {
	switch c {
	case 'B':
		return 1
	case 'H':
		return 2
	default: // 'L'
		return 4
	}
}

func fieldName(index int, c byte) string {
	return fmt.Sprintf("field %d (%c)", index, c)
}

// Unpack evaluates the layout against data and returns the decoded field
// values in field order. Length prefixes are consumed by the engine and not
// returned. Insufficient input yields a DecodeError naming the field.
func (l *Layout) Unpack(data []byte) ([]any, error) {
	values := make([]any, 0, len(l.fields))
	off := 0

	for _, f := range l.fields {
		switch f.kind {
		case layoutUint:
			v, err := l.readUint(data, off, f)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			off += f.size

		case layoutBytes:
			if off+f.size > len(data) {
				return nil, underflow(f.name)
			}
			values = append(values, cloneBytes(data[off:off+f.size]))
			off += f.size

		case layoutRest:
			values = append(values, cloneBytes(data[off:]))
			off = len(data)

		case layoutRestRepeat:
			if (len(data)-off)%f.size != 0 {
				return nil, underflow(f.name)
			}
			for off < len(data) {
				v, err := l.readUint(data, off, f)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
				off += f.size
			}

		case layoutLenBytes:
			n, err := l.readLen(data, off, f)
			if err != nil {
				return nil, err
			}
			off += f.nlen
			if off+n > len(data) {
				return nil, underflow(f.name)
			}
			values = append(values, cloneBytes(data[off:off+n]))
			off += n

		case layoutLenGroup:
			n, err := l.readLen(data, off, f)
			if err != nil {
				return nil, err
			}
			off += f.nlen
			tuples := make([][]any, 0, n)
			for i := 0; i < n; i++ {
				tuple := make([]any, 0, len(f.group))
				for _, g := range f.group {
					switch g.kind {
					case layoutUint:
						v, err := l.readUint(data, off, g)
						if err != nil {
							return nil, err
						}
						tuple = append(tuple, v)
						off += g.size
					case layoutBytes:
						if off+g.size > len(data) {
							return nil, underflow(g.name)
						}
						tuple = append(tuple, cloneBytes(data[off:off+g.size]))
						off += g.size
					}
				}
				tuples = append(tuples, tuple)
			}
			values = append(values, tuples)
		}
	}

	return values, nil
}

// UnpackOne evaluates a single field layout against data and returns the
// value directly. Calling it on a layout with more than one field is a
// contract violation of the calling codec and panics.
func (l *Layout) UnpackOne(data []byte) (any, error) {
	if len(l.fields) != 1 {
		panic(fmt.Sprintf("ndef: layout %q: UnpackOne on a %d field layout", l.format, len(l.fields)))
	}
	values, err := l.Unpack(data)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

func (l *Layout) readUint(data []byte, off int, f layoutField) (int, error) {
	if off+f.size > len(data) {
		return 0, underflow(f.name)
	}
	switch f.size {
	case 1:
		return int(data[off]), nil
	case 2:
		return int(l.order.Uint16(data[off : off+2])), nil
	default:
		return int(l.order.Uint32(data[off : off+4])), nil
	}
}

func (l *Layout) readLen(data []byte, off int, f layoutField) (int, error) {
	lf := layoutField{size: f.nlen, name: f.name}
	return l.readUint(data, off, lf)
}

func underflow(field string) *DecodeError {
	return NewDecodeError(field, ErrBufferUnderflow)
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Pack evaluates the layout against the given field values and returns the
// packed bytes. Values are supplied in field order, excluding length
// prefixes, which the engine computes and inserts. A missing, surplus or
// mistyped value yields an EncodeError naming the field.
func (l *Layout) Pack(values ...any) ([]byte, error) {
	var buf bytes.Buffer
	vi := 0

	next := func(f layoutField) (any, error) {
		if vi >= len(values) {
			return nil, encodeErrorf(f.name, "missing value")
		}
		v := values[vi]
		vi++
		return v, nil
	}

	for _, f := range l.fields {
		switch f.kind {
		case layoutUint:
			v, err := next(f)
			if err != nil {
				return nil, err
			}
			if err := l.writeUint(&buf, v, f.size, f.name); err != nil {
				return nil, err
			}

		case layoutBytes:
			v, err := next(f)
			if err != nil {
				return nil, err
			}
			b, err := toBytes(v, f.name)
			if err != nil {
				return nil, err
			}
			if len(b) != f.size {
				return nil, encodeErrorf(f.name, "need %d bytes, got %d", f.size, len(b))
			}
			buf.Write(b)

		case layoutRest:
			v, err := next(f)
			if err != nil {
				return nil, err
			}
			b, err := toBytes(v, f.name)
			if err != nil {
				return nil, err
			}
			buf.Write(b)

		case layoutRestRepeat:
			for vi < len(values) {
				v := values[vi]
				vi++
				if err := l.writeUint(&buf, v, f.size, f.name); err != nil {
					return nil, err
				}
			}

		case layoutLenBytes:
			v, err := next(f)
			if err != nil {
				return nil, err
			}
			b, err := toBytes(v, f.name)
			if err != nil {
				return nil, err
			}
			if err := l.writeUint(&buf, len(b), f.nlen, f.name); err != nil {
				return nil, err
			}
			buf.Write(b)

		case layoutLenGroup:
			v, err := next(f)
			if err != nil {
				return nil, err
			}
			tuples, ok := v.([][]any)
			if !ok {
				return nil, encodeErrorf(f.name, "need [][]any for a grouped field, got %T", v)
			}
			if err := l.writeUint(&buf, len(tuples), f.nlen, f.name); err != nil {
				return nil, err
			}
			for _, tuple := range tuples {
				if len(tuple) != len(f.group) {
					return nil, encodeErrorf(f.name, "need %d values per tuple, got %d", len(f.group), len(tuple))
				}
				for gi, g := range f.group {
					switch g.kind {
					case layoutUint:
						if err := l.writeUint(&buf, tuple[gi], g.size, g.name); err != nil {
							return nil, err
						}
					case layoutBytes:
						b, err := toBytes(tuple[gi], g.name)
						if err != nil {
							return nil, err
						}
						if len(b) != g.size {
							return nil, encodeErrorf(g.name, "need %d bytes, got %d", g.size, len(b))
						}
						buf.Write(b)
					}
				}
			}
		}
	}

	if vi != len(values) {
		return nil, encodeErrorf("", "too many values: %d beyond the layout", len(values)-vi)
	}
	return buf.Bytes(), nil
}

func (l *Layout) writeUint(buf *bytes.Buffer, v any, size int, field string) error {
	n, err := toInt(v, field)
	if err != nil {
		return err
	}
	maxVal := 1<<(8*size) - 1
	if n < 0 || n > maxVal {
		return encodeErrorf(field, "value %d out of range for a %d byte field", n, size)
	}
	switch size {
	case 1:
		buf.WriteByte(byte(n))
	case 2:
		var b [2]byte
		l.order.PutUint16(b[:], uint16(n))
		buf.Write(b[:])
	default:
		var b [4]byte
		l.order.PutUint32(b[:], uint32(n))
		buf.Write(b[:])
	}
	return nil
}

func toInt(v any, field string) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case byte:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	default:
		return 0, encodeErrorf(field, "need an integer, got %T", v)
	}
}

func toBytes(v any, field string) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, encodeErrorf(field, "need bytes, got %T", v)
	}
}
