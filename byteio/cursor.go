// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package byteio provides a positioned, bounds-checked cursor over an
// in-memory byte buffer, for parsing little/big-endian binary formats
// without re-deriving offsets by hand at every call site.
package byteio

import (
	"encoding/binary"
	"errors"
)

// ErrOutOfBounds is returned whenever a read, peek or seek would move
// outside the buffer.
var ErrOutOfBounds = errors.New("byteio: out of bounds")

// Cursor is a positioned reader over a fixed byte slice. The zero value
// is not usable; construct with NewCursor.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for sequential, bounds-checked reading.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Size returns the total length of the underlying buffer.
func (c *Cursor) Size() int { return len(c.data) }

// Tell returns the current cursor position.
func (c *Cursor) Tell() int { return c.pos }

// Bytes returns the whole underlying buffer, unchanged by cursor position.
func (c *Cursor) Bytes() []byte { return c.data }

// SeekSet moves the cursor to an absolute position. The position may
// equal Size() (a read from there will fail), but not be negative or
// exceed Size().
func (c *Cursor) SeekSet(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return ErrOutOfBounds
	}
	c.pos = pos
	return nil
}

// Skip advances (or, with a negative n, rewinds) the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	return c.SeekSet(c.pos + n)
}

func (c *Cursor) require(n int) error {
	if n < 0 || c.pos+n > len(c.data) {
		return ErrOutOfBounds
	}
	return nil
}

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// ReadI8 reads one signed byte.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

// ReadU16LE reads a little-endian uint16.
func (c *Cursor) ReadU16LE() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadU16BE reads a big-endian uint16.
func (c *Cursor) ReadU16BE() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadI16LE reads a little-endian int16.
func (c *Cursor) ReadI16LE() (int16, error) {
	v, err := c.ReadU16LE()
	return int16(v), err
}

// ReadU24LE reads a 3-byte little-endian unsigned integer (common in S3M
// sample pointers).
func (c *Cursor) ReadU24LE() (uint32, error) {
	if err := c.require(3); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.pos]) | uint32(c.data[c.pos+1])<<8 | uint32(c.data[c.pos+2])<<16
	c.pos += 3
	return v, nil
}

// ReadU32LE reads a little-endian uint32.
func (c *Cursor) ReadU32LE() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadU32BE reads a big-endian uint32.
func (c *Cursor) ReadU32BE() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadI32LE reads a little-endian int32.
func (c *Cursor) ReadI32LE() (int32, error) {
	v, err := c.ReadU32LE()
	return int32(v), err
}

// ReadExact reads exactly n bytes and returns them as a sub-slice of the
// underlying buffer (no copy).
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// PeekEquals reports whether the next len(magic) bytes equal magic,
// without advancing the cursor.
func (c *Cursor) PeekEquals(magic []byte) bool {
	if err := c.require(len(magic)); err != nil {
		return false
	}
	for i, b := range magic {
		if c.data[c.pos+i] != b {
			return false
		}
	}
	return true
}

// ExpectMagic advances past magic if present, otherwise leaves the
// cursor untouched and reports false.
func (c *Cursor) ExpectMagic(magic []byte) bool {
	if !c.PeekEquals(magic) {
		return false
	}
	c.pos += len(magic)
	return true
}
