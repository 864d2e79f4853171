// Copyright 2024 Lumen Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xdr

import (
	"bytes"
	"encoding/binary"
)

// Encoder accumulates the wire-format representation of a value. Output is
// always a multiple of 4 bytes; padding inserted for alignment is zero. An
// Encoder is owned by a single encode call and must not be shared
type Encoder struct {
	buf bytes.Buffer
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the bytes written so far
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes written so far
func (e *Encoder) Len() int {
	return e.buf.Len()
}

func (e *Encoder) WriteInt32(v int32) {
	e.WriteUint32(uint32(v))
}

func (e *Encoder) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	e.buf.Write(tmp[:])
}

func (e *Encoder) WriteInt64(v int64) {
	e.WriteUint64(uint64(v))
}

func (e *Encoder) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	e.buf.Write(tmp[:])
}

// WriteBool writes a boolean as a 4-byte 0/1
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint32(1)
	} else {
		e.WriteUint32(0)
	}
}

// WriteFixedOpaque writes exactly size bytes with no length prefix, padded
// to the next 4-byte boundary with zeros. The input length must match size
func (e *Encoder) WriteFixedOpaque(data []byte, size int) error {
	if len(data) != size {
		return &LengthError{Got: len(data), Want: size}
	}
	e.buf.Write(data)
	e.writePadding(size)
	return nil
}

// WriteOpaque writes a 4-byte length prefix, the payload, and zero padding
// to 4-byte alignment. Fails if the payload exceeds maxLen
func (e *Encoder) WriteOpaque(data []byte, maxLen uint32) error {
	if uint64(len(data)) > uint64(maxLen) {
		return &BoundsError{Len: uint32(len(data)), Max: maxLen} //nolint:gosec
	}
	e.WriteUint32(uint32(len(data)))
	e.buf.Write(data)
	e.writePadding(len(data))
	return nil
}

// WriteString writes a string the same way as WriteOpaque
func (e *Encoder) WriteString(s string, maxLen uint32) error {
	return e.WriteOpaque([]byte(s), maxLen)
}

func (e *Encoder) writePadding(dataLen int) {
	for i := 0; i < padLen(dataLen); i++ {
		e.buf.WriteByte(0)
	}
}

// padLen returns the number of zero bytes needed to bring a value of the
// given length to 4-byte alignment
func padLen(dataLen int) int {
	return (4 - dataLen%4) % 4
}
