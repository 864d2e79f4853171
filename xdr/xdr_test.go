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
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePrimitives(t *testing.T) {
	e := NewEncoder()
	e.WriteInt32(-1)
	e.WriteUint32(0xdeadbeef)
	e.WriteInt64(-2)
	e.WriteUint64(0x0102030405060708)
	e.WriteBool(true)
	e.WriteBool(false)
	expected := "ffffffff" +
		"deadbeef" +
		"fffffffffffffffe" +
		"0102030405060708" +
		"00000001" +
		"00000000"
	assert.Equal(t, expected, hex.EncodeToString(e.Bytes()))
}

func TestDecodePrimitives(t *testing.T) {
	data, err := hex.DecodeString(
		"ffffffffdeadbeeffffffffffffffffe010203040506070800000001",
	)
	require.NoError(t, err)
	d := NewDecoder(data)
	i32, err := d.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i32)
	u32, err := d.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)
	i64, err := d.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-2), i64)
	u64, err := d.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)
	b, err := d.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)
	assert.Equal(t, 0, d.Remaining())
}

func TestDecodeTruncated(t *testing.T) {
	d := NewDecoder([]byte{0x00, 0x01})
	_, err := d.ReadUint32()
	var truncErr *TruncatedError
	require.ErrorAs(t, err, &truncErr)
	assert.Equal(t, 4, truncErr.Want)
	assert.Equal(t, 2, truncErr.Have)
}

func TestDecodeBoolRejectsOtherValues(t *testing.T) {
	d := NewDecoder([]byte{0x00, 0x00, 0x00, 0x02})
	_, err := d.ReadBool()
	var discErr *DiscriminantError
	require.ErrorAs(t, err, &discErr)
	assert.Equal(t, int32(2), discErr.Value)
}

func TestOpaquePadding(t *testing.T) {
	tests := []struct {
		data []byte
		hex  string
	}{
		{[]byte{}, "00000000"},
		{[]byte{0x01}, "0000000101000000"},
		{[]byte{0x01, 0x02, 0x03}, "0000000301020300"},
		{[]byte{0x01, 0x02, 0x03, 0x04}, "0000000401020304"},
	}
	for _, test := range tests {
		e := NewEncoder()
		require.NoError(t, e.WriteOpaque(test.data, 16))
		assert.Equal(t, test.hex, hex.EncodeToString(e.Bytes()))

		d := NewDecoder(e.Bytes())
		out, err := d.ReadOpaque(16)
		require.NoError(t, err)
		assert.Equal(t, test.data, out)
		assert.Equal(t, 0, d.Remaining())
	}
}

func TestDecodeRejectsNonZeroPadding(t *testing.T) {
	// Length 1, data 0x01, padding 0x00 0x00 0xff
	data, _ := hex.DecodeString("00000001010000ff")
	d := NewDecoder(data)
	_, err := d.ReadOpaque(16)
	var padErr *PaddingError
	require.ErrorAs(t, err, &padErr)
	assert.Equal(t, byte(0xff), padErr.Value)
}

func TestOpaqueBounds(t *testing.T) {
	e := NewEncoder()
	err := e.WriteOpaque(make([]byte, 5), 4)
	var boundsErr *BoundsError
	require.ErrorAs(t, err, &boundsErr)

	// Declared length beyond the bound is rejected on decode
	data, _ := hex.DecodeString("000000050000000000")
	d := NewDecoder(data)
	_, err = d.ReadOpaque(4)
	require.ErrorAs(t, err, &boundsErr)
}

func TestOpaqueHostileLength(t *testing.T) {
	// Declared length far beyond the actual input must fail before any
	// large allocation
	data, _ := hex.DecodeString("fffffff0")
	d := NewDecoder(data)
	_, err := d.ReadOpaque(0xffffffff)
	var truncErr *TruncatedError
	require.ErrorAs(t, err, &truncErr)
}

func TestFixedOpaqueLengthMismatch(t *testing.T) {
	e := NewEncoder()
	err := e.WriteFixedOpaque([]byte{0x01, 0x02}, 3)
	var lenErr *LengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 2, lenErr.Got)
	assert.Equal(t, 3, lenErr.Want)
}

func TestStringRoundTrip(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.WriteString("hello", 32))
	assert.Equal(t, "0000000568656c6c6f000000", hex.EncodeToString(e.Bytes()))

	d := NewDecoder(e.Bytes())
	s, err := d.ReadString(32)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestOptional(t *testing.T) {
	v := Hash{0x01}

	e := NewEncoder()
	require.NoError(t, EncodeOptional(e, &v))
	require.NoError(t, EncodeOptional[Hash](e, nil))

	d := NewDecoder(e.Bytes())
	got, err := DecodeOptional[Hash](d)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, v, *got)
	got, err = DecodeOptional[Hash](d)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, d.Remaining())
}

func TestVarArrayBounds(t *testing.T) {
	items := []Hash{{}, {}, {}}
	e := NewEncoder()
	err := EncodeVarArray(e, items, 2)
	var boundsErr *BoundsError
	require.ErrorAs(t, err, &boundsErr)

	e = NewEncoder()
	require.NoError(t, EncodeVarArray(e, items, 3))
	d := NewDecoder(e.Bytes())
	_, err = DecodeVarArray[Hash](d, 2)
	require.ErrorAs(t, err, &boundsErr)
	assert.Equal(t, uint32(3), boundsErr.Len)
}

func TestVarArrayHostileCount(t *testing.T) {
	// A huge declared count over a tiny input must fail without a huge
	// allocation
	data, _ := hex.DecodeString("7fffffff00000000")
	d := NewDecoder(data)
	_, err := DecodeVarArray[Hash](d, 0x7fffffff)
	require.Error(t, err)
}

func TestFixedArrayRoundTrip(t *testing.T) {
	items := []Hash{{0x01}, {0x02}}
	e := NewEncoder()
	require.NoError(t, EncodeFixedArray(e, items, 2))
	assert.Equal(t, 64, e.Len())

	d := NewDecoder(e.Bytes())
	got, err := DecodeFixedArray[Hash](d, 2)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	err = EncodeFixedArray(NewEncoder(), items, 3)
	var lenErr *LengthError
	require.ErrorAs(t, err, &lenErr)
}

func TestMarshalBase64RoundTrip(t *testing.T) {
	v := Hash{0xab, 0xcd}
	s, err := MarshalBase64(v)
	require.NoError(t, err)
	var out Hash
	require.NoError(t, UnmarshalBase64(s, &out))
	assert.Equal(t, v, out)

	err = UnmarshalBase64("not base64!!", &out)
	require.Error(t, err)
}
