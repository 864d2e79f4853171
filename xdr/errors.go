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

import "fmt"

// TruncatedError is returned when fewer bytes remain in the input than the
// current field requires
type TruncatedError struct {
	Offset int
	Want   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf(
		"truncated input at offset %d: need %d bytes, have %d",
		e.Offset,
		e.Want,
		e.Have,
	)
}

// BoundsError is returned when a variable-length value exceeds its declared
// maximum, on either encode or decode
type BoundsError struct {
	Len uint32
	Max uint32
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("length %d exceeds maximum %d", e.Len, e.Max)
}

// DiscriminantError is returned when a union or enum discriminant is not one
// of the type's declared cases
type DiscriminantError struct {
	Type  string
	Value int32
}

func (e *DiscriminantError) Error() string {
	return fmt.Sprintf(
		"invalid discriminant %d for %s",
		e.Value,
		e.Type,
	)
}

// PaddingError is returned when an alignment padding byte is not zero
type PaddingError struct {
	Offset int
	Value  byte
}

func (e *PaddingError) Error() string {
	return fmt.Sprintf(
		"non-zero padding byte 0x%02x at offset %d",
		e.Value,
		e.Offset,
	)
}

// LengthError is returned when a fixed-length value has the wrong length
type LengthError struct {
	Got  int
	Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("wrong length for fixed-size value: got %d, want %d", e.Got, e.Want)
}
