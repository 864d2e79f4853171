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

import "encoding/binary"

// Decoder is a cursor over an input byte sequence. Every read advances the
// cursor and fails if insufficient bytes remain. The input is borrowed, not
// copied; a Decoder is owned by a single decode call and must not be shared
type Decoder struct {
	data []byte
	pos  int
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Pos returns the current cursor position
func (d *Decoder) Pos() int {
	return d.pos
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// take consumes n bytes from the input, returning a subslice of the
// underlying buffer
func (d *Decoder) take(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, &TruncatedError{Offset: d.pos, Want: n, Have: d.Remaining()}
	}
	ret := d.data[d.pos : d.pos+n]
	d.pos += n
	return ret, nil
}

func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err //nolint:gosec
}

func (d *Decoder) ReadUint32() (uint32, error) {
	tmp, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(tmp), nil
}

func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err //nolint:gosec
}

func (d *Decoder) ReadUint64() (uint64, error) {
	tmp, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(tmp), nil
}

// ReadBool reads a 4-byte boolean, rejecting any value other than 0 or 1
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadInt32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &DiscriminantError{Type: "bool", Value: v}
	}
}

// ReadFixedOpaque reads exactly size bytes plus alignment padding, verifying
// the padding bytes are zero. The returned slice is a copy
func (d *Decoder) ReadFixedOpaque(size int) ([]byte, error) {
	data, err := d.take(size)
	if err != nil {
		return nil, err
	}
	if err := d.readPadding(size); err != nil {
		return nil, err
	}
	ret := make([]byte, size)
	copy(ret, data)
	return ret, nil
}

// ReadOpaque reads a length-prefixed opaque value. The declared length is
// checked against maxLen and against the bytes actually remaining before any
// allocation is made for it
func (d *Decoder) ReadOpaque(maxLen uint32) ([]byte, error) {
	length, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	if length > maxLen {
		return nil, &BoundsError{Len: length, Max: maxLen}
	}
	if uint64(length) > uint64(d.Remaining()) {
		return nil, &TruncatedError{
			Offset: d.pos,
			Want:   int(length),
			Have:   d.Remaining(),
		}
	}
	return d.ReadFixedOpaque(int(length))
}

// ReadString reads a length-prefixed string the same way as ReadOpaque
func (d *Decoder) ReadString(maxLen uint32) (string, error) {
	data, err := d.ReadOpaque(maxLen)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *Decoder) readPadding(dataLen int) error {
	for i := 0; i < padLen(dataLen); i++ {
		tmp, err := d.take(1)
		if err != nil {
			return err
		}
		if tmp[0] != 0 {
			return &PaddingError{Offset: d.pos - 1, Value: tmp[0]}
		}
	}
	return nil
}
