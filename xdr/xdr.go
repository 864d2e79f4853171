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

// Package xdr implements the network's external data representation: a
// big-endian, 4-byte-aligned binary format with length-prefixed variable
// data, presence-flagged optionals, and integer-tagged unions. Encoded
// bytes are required to be byte-identical to those produced by the
// reference network implementation.
//
// Concrete protocol types implement Encodable/Decodable on top of the
// Encoder and Decoder primitives; the generic helpers in this file compose
// them into optionals and bounded arrays. All decode paths validate
// declared lengths against their bounds before allocating, reject unknown
// union discriminants, and require alignment padding to be zero.
package xdr

import (
	"encoding/base64"
	"fmt"
)

// Encodable is implemented by types that can write themselves to an Encoder
type Encodable interface {
	EncodeXDR(e *Encoder) error
}

// Decodable is implemented by types that can read themselves from a Decoder
type Decodable interface {
	DecodeXDR(d *Decoder) error
}

// EncodablePtr is a constraint for a pointer to an Encodable T
type EncodablePtr[T any] interface {
	Encodable
	*T
}

// DecodablePtr is a constraint for a pointer to a Decodable T
type DecodablePtr[T any] interface {
	Decodable
	*T
}

// Marshal encodes the specified value and returns its wire-format bytes
func Marshal(v Encodable) ([]byte, error) {
	e := NewEncoder()
	if err := v.EncodeXDR(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Unmarshal decodes the specified wire-format bytes into the destination
// value, returning the number of bytes consumed
func Unmarshal(data []byte, v Decodable) (int, error) {
	d := NewDecoder(data)
	if err := v.DecodeXDR(d); err != nil {
		return d.Pos(), err
	}
	return d.Pos(), nil
}

// MarshalBase64 encodes the specified value and returns its wire-format
// bytes in the base64 form used at the REST/RPC boundary
func MarshalBase64(v Encodable) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// UnmarshalBase64 decodes a base64-encoded wire-format value into the
// destination value
func UnmarshalBase64(s string, v Decodable) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid base64: %w", err)
	}
	if _, err := Unmarshal(data, v); err != nil {
		return err
	}
	return nil
}

// EncodeOptional writes a 4-byte presence flag, then the value if present
func EncodeOptional[T any, PT EncodablePtr[T]](e *Encoder, v *T) error {
	e.WriteBool(v != nil)
	if v != nil {
		return PT(v).EncodeXDR(e)
	}
	return nil
}

// DecodeOptional reads a 4-byte presence flag, then the value if present
func DecodeOptional[T any, PT DecodablePtr[T]](d *Decoder) (*T, error) {
	present, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var v T
	if err := PT(&v).DecodeXDR(d); err != nil {
		return nil, err
	}
	return &v, nil
}

// EncodeVarArray writes a 4-byte element count, failing if it exceeds
// maxLen, then each element in order
func EncodeVarArray[T any, PT EncodablePtr[T]](
	e *Encoder,
	items []T,
	maxLen uint32,
) error {
	if uint64(len(items)) > uint64(maxLen) {
		return &BoundsError{Len: uint32(len(items)), Max: maxLen} //nolint:gosec
	}
	e.WriteUint32(uint32(len(items)))
	for i := range items {
		if err := PT(&items[i]).EncodeXDR(e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeVarArray reads a 4-byte element count, rejecting a count that
// exceeds maxLen before reading any elements, then each element in order.
// The initial allocation is capped by the bytes actually remaining so a
// hostile count cannot drive allocation
func DecodeVarArray[T any, PT DecodablePtr[T]](
	d *Decoder,
	maxLen uint32,
) ([]T, error) {
	count, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	if count > maxLen {
		return nil, &BoundsError{Len: count, Max: maxLen}
	}
	// Every element occupies at least 4 bytes on the wire
	capHint := min(int(count), d.Remaining()/4)
	items := make([]T, 0, capHint)
	for i := uint32(0); i < count; i++ {
		var item T
		if err := PT(&item).DecodeXDR(d); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// EncodeFixedArray writes exactly size elements with no count prefix
func EncodeFixedArray[T any, PT EncodablePtr[T]](
	e *Encoder,
	items []T,
	size int,
) error {
	if len(items) != size {
		return &LengthError{Got: len(items), Want: size}
	}
	for i := range items {
		if err := PT(&items[i]).EncodeXDR(e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFixedArray reads exactly size elements with no count prefix
func DecodeFixedArray[T any, PT DecodablePtr[T]](
	d *Decoder,
	size int,
) ([]T, error) {
	capHint := min(size, d.Remaining()/4)
	items := make([]T, 0, capHint)
	for i := 0; i < size; i++ {
		var item T
		if err := PT(&item).DecodeXDR(d); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
