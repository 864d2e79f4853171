// Copyright 2025 Lumen Labs Software
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

// Package contract provides the smart-contract value model: the ScVal
// tagged-variant tree exchanged with the contract runtime, contract
// addresses, and host-function invocation arguments.
package contract

import (
	"fmt"
	"math"

	"github.com/lumenlabs-io/gostellar/strkey"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// ScValType values. Only the types listed in the ScVal codec are declared
// cases; anything else is rejected on decode
const (
	ScValTypeBool      int32 = 0
	ScValTypeVoid      int32 = 1
	ScValTypeU32       int32 = 3
	ScValTypeI32       int32 = 4
	ScValTypeU64       int32 = 5
	ScValTypeI64       int32 = 6
	ScValTypeTimepoint int32 = 7
	ScValTypeDuration  int32 = 8
	ScValTypeU128      int32 = 9
	ScValTypeI128      int32 = 10
	ScValTypeBytes     int32 = 13
	ScValTypeString    int32 = 14
	ScValTypeSymbol    int32 = 15
	ScValTypeVec       int32 = 16
	ScValTypeMap       int32 = 17
	ScValTypeAddress   int32 = 18
)

// ScSymbolLimit is the maximum length of a symbol in bytes
const ScSymbolLimit = 32

// ScBytes is an arbitrary byte string value
type ScBytes []byte

func (b ScBytes) EncodeXDR(e *xdr.Encoder) error {
	return e.WriteOpaque(b, math.MaxUint32)
}

func (b *ScBytes) DecodeXDR(d *xdr.Decoder) error {
	data, err := d.ReadOpaque(math.MaxUint32)
	if err != nil {
		return err
	}
	*b = data
	return nil
}

// ScString is an arbitrary string value
type ScString string

func (s ScString) EncodeXDR(e *xdr.Encoder) error {
	return e.WriteString(string(s), math.MaxUint32)
}

func (s *ScString) DecodeXDR(d *xdr.Decoder) error {
	tmp, err := d.ReadString(math.MaxUint32)
	if err != nil {
		return err
	}
	*s = ScString(tmp)
	return nil
}

// ScSymbol is a short identifier value
type ScSymbol string

func (s ScSymbol) EncodeXDR(e *xdr.Encoder) error {
	return e.WriteString(string(s), ScSymbolLimit)
}

func (s *ScSymbol) DecodeXDR(d *xdr.Decoder) error {
	tmp, err := d.ReadString(ScSymbolLimit)
	if err != nil {
		return err
	}
	*s = ScSymbol(tmp)
	return nil
}

// ScVec is an ordered list of values
type ScVec []ScVal

func (v ScVec) EncodeXDR(e *xdr.Encoder) error {
	return xdr.EncodeVarArray(e, v, math.MaxUint32)
}

func (v *ScVec) DecodeXDR(d *xdr.Decoder) error {
	items, err := xdr.DecodeVarArray[ScVal](d, math.MaxUint32)
	if err != nil {
		return err
	}
	*v = items
	return nil
}

// ScMapEntry is a single key/value pair of a map value
type ScMapEntry struct {
	Key ScVal
	Val ScVal
}

func (m ScMapEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := m.Key.EncodeXDR(e); err != nil {
		return err
	}
	return m.Val.EncodeXDR(e)
}

func (m *ScMapEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := m.Key.DecodeXDR(d); err != nil {
		return err
	}
	return m.Val.DecodeXDR(d)
}

// ScMap is an ordered list of key/value pairs
type ScMap []ScMapEntry

func (m ScMap) EncodeXDR(e *xdr.Encoder) error {
	return xdr.EncodeVarArray(e, m, math.MaxUint32)
}

func (m *ScMap) DecodeXDR(d *xdr.Decoder) error {
	items, err := xdr.DecodeVarArray[ScMapEntry](d, math.MaxUint32)
	if err != nil {
		return err
	}
	*m = items
	return nil
}

// ScAddressType values
const (
	ScAddressTypeAccount  int32 = 0
	ScAddressTypeContract int32 = 1
)

// ScAddress is an account or contract address as seen by the contract
// runtime
type ScAddress struct {
	Type       int32
	AccountId  *xdr.AccountID
	ContractId *xdr.Hash
}

// NewContractAddress returns the ScAddress for a contract id in text form
func NewContractAddress(address string) (ScAddress, error) {
	raw, err := strkey.Decode(strkey.VersionByteContract, address)
	if err != nil {
		return ScAddress{}, err
	}
	var id xdr.Hash
	copy(id[:], raw)
	return ScAddress{Type: ScAddressTypeContract, ContractId: &id}, nil
}

// NewAccountAddress returns the ScAddress for an account id in text form
func NewAccountAddress(address string) (ScAddress, error) {
	accountID, err := xdr.AddressToAccountID(address)
	if err != nil {
		return ScAddress{}, err
	}
	return ScAddress{Type: ScAddressTypeAccount, AccountId: &accountID}, nil
}

func (a ScAddress) EncodeXDR(e *xdr.Encoder) error {
	switch a.Type {
	case ScAddressTypeAccount:
		if a.AccountId == nil {
			return fmt.Errorf("account address has no account id")
		}
		e.WriteInt32(a.Type)
		return a.AccountId.EncodeXDR(e)
	case ScAddressTypeContract:
		if a.ContractId == nil {
			return fmt.Errorf("contract address has no contract id")
		}
		e.WriteInt32(a.Type)
		return a.ContractId.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "ScAddress", Value: a.Type}
	}
}

func (a *ScAddress) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	a.Type = t
	switch t {
	case ScAddressTypeAccount:
		a.AccountId = &xdr.AccountID{}
		return a.AccountId.DecodeXDR(d)
	case ScAddressTypeContract:
		a.ContractId = &xdr.Hash{}
		return a.ContractId.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "ScAddress", Value: t}
	}
}

// Address returns the text form of the address
func (a ScAddress) Address() string {
	switch a.Type {
	case ScAddressTypeAccount:
		if a.AccountId != nil {
			return a.AccountId.Address()
		}
	case ScAddressTypeContract:
		if a.ContractId != nil {
			return strkey.MustEncode(
				strkey.VersionByteContract,
				a.ContractId[:],
			)
		}
	}
	return ""
}

// ScVal is the contract runtime's tagged value union. Exactly one payload
// field corresponding to Type is set; Void carries none. Vec and Map
// payloads are themselves optional on the wire, so a nil pointer for those
// types encodes an absent value
type ScVal struct {
	Type      int32
	B         *bool
	U32       *uint32
	I32       *int32
	U64       *uint64
	I64       *int64
	Timepoint *xdr.TimePoint
	Duration  *xdr.Duration
	U128      *xdr.UInt128Parts
	I128      *xdr.Int128Parts
	Bytes     *ScBytes
	Str       *ScString
	Sym       *ScSymbol
	Vec       *ScVec
	Map       *ScMap
	Address   *ScAddress
}

func (v ScVal) EncodeXDR(e *xdr.Encoder) error {
	switch v.Type {
	case ScValTypeBool:
		if v.B == nil {
			return fmt.Errorf("bool value has no payload")
		}
		e.WriteInt32(v.Type)
		e.WriteBool(*v.B)
		return nil
	case ScValTypeVoid:
		e.WriteInt32(v.Type)
		return nil
	case ScValTypeU32:
		if v.U32 == nil {
			return fmt.Errorf("u32 value has no payload")
		}
		e.WriteInt32(v.Type)
		e.WriteUint32(*v.U32)
		return nil
	case ScValTypeI32:
		if v.I32 == nil {
			return fmt.Errorf("i32 value has no payload")
		}
		e.WriteInt32(v.Type)
		e.WriteInt32(*v.I32)
		return nil
	case ScValTypeU64:
		if v.U64 == nil {
			return fmt.Errorf("u64 value has no payload")
		}
		e.WriteInt32(v.Type)
		e.WriteUint64(*v.U64)
		return nil
	case ScValTypeI64:
		if v.I64 == nil {
			return fmt.Errorf("i64 value has no payload")
		}
		e.WriteInt32(v.Type)
		e.WriteInt64(*v.I64)
		return nil
	case ScValTypeTimepoint:
		if v.Timepoint == nil {
			return fmt.Errorf("timepoint value has no payload")
		}
		e.WriteInt32(v.Type)
		e.WriteUint64(uint64(*v.Timepoint))
		return nil
	case ScValTypeDuration:
		if v.Duration == nil {
			return fmt.Errorf("duration value has no payload")
		}
		e.WriteInt32(v.Type)
		e.WriteUint64(uint64(*v.Duration))
		return nil
	case ScValTypeU128:
		if v.U128 == nil {
			return fmt.Errorf("u128 value has no payload")
		}
		e.WriteInt32(v.Type)
		return v.U128.EncodeXDR(e)
	case ScValTypeI128:
		if v.I128 == nil {
			return fmt.Errorf("i128 value has no payload")
		}
		e.WriteInt32(v.Type)
		return v.I128.EncodeXDR(e)
	case ScValTypeBytes:
		if v.Bytes == nil {
			return fmt.Errorf("bytes value has no payload")
		}
		e.WriteInt32(v.Type)
		return v.Bytes.EncodeXDR(e)
	case ScValTypeString:
		if v.Str == nil {
			return fmt.Errorf("string value has no payload")
		}
		e.WriteInt32(v.Type)
		return v.Str.EncodeXDR(e)
	case ScValTypeSymbol:
		if v.Sym == nil {
			return fmt.Errorf("symbol value has no payload")
		}
		e.WriteInt32(v.Type)
		return v.Sym.EncodeXDR(e)
	case ScValTypeVec:
		e.WriteInt32(v.Type)
		return xdr.EncodeOptional(e, v.Vec)
	case ScValTypeMap:
		e.WriteInt32(v.Type)
		return xdr.EncodeOptional(e, v.Map)
	case ScValTypeAddress:
		if v.Address == nil {
			return fmt.Errorf("address value has no payload")
		}
		e.WriteInt32(v.Type)
		return v.Address.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "ScVal", Value: v.Type}
	}
}

func (v *ScVal) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	v.Type = t
	switch t {
	case ScValTypeBool:
		b, err := d.ReadBool()
		if err != nil {
			return err
		}
		v.B = &b
		return nil
	case ScValTypeVoid:
		return nil
	case ScValTypeU32:
		u, err := d.ReadUint32()
		if err != nil {
			return err
		}
		v.U32 = &u
		return nil
	case ScValTypeI32:
		i, err := d.ReadInt32()
		if err != nil {
			return err
		}
		v.I32 = &i
		return nil
	case ScValTypeU64:
		u, err := d.ReadUint64()
		if err != nil {
			return err
		}
		v.U64 = &u
		return nil
	case ScValTypeI64:
		i, err := d.ReadInt64()
		if err != nil {
			return err
		}
		v.I64 = &i
		return nil
	case ScValTypeTimepoint:
		u, err := d.ReadUint64()
		if err != nil {
			return err
		}
		tp := xdr.TimePoint(u)
		v.Timepoint = &tp
		return nil
	case ScValTypeDuration:
		u, err := d.ReadUint64()
		if err != nil {
			return err
		}
		dur := xdr.Duration(u)
		v.Duration = &dur
		return nil
	case ScValTypeU128:
		v.U128 = &xdr.UInt128Parts{}
		return v.U128.DecodeXDR(d)
	case ScValTypeI128:
		v.I128 = &xdr.Int128Parts{}
		return v.I128.DecodeXDR(d)
	case ScValTypeBytes:
		v.Bytes = &ScBytes{}
		return v.Bytes.DecodeXDR(d)
	case ScValTypeString:
		v.Str = new(ScString)
		return v.Str.DecodeXDR(d)
	case ScValTypeSymbol:
		v.Sym = new(ScSymbol)
		return v.Sym.DecodeXDR(d)
	case ScValTypeVec:
		vec, err := xdr.DecodeOptional[ScVec](d)
		if err != nil {
			return err
		}
		v.Vec = vec
		return nil
	case ScValTypeMap:
		m, err := xdr.DecodeOptional[ScMap](d)
		if err != nil {
			return err
		}
		v.Map = m
		return nil
	case ScValTypeAddress:
		v.Address = &ScAddress{}
		return v.Address.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "ScVal", Value: t}
	}
}

// Convenience constructors for common value shapes

func BoolVal(b bool) ScVal {
	return ScVal{Type: ScValTypeBool, B: &b}
}

func VoidVal() ScVal {
	return ScVal{Type: ScValTypeVoid}
}

func U64Val(u uint64) ScVal {
	return ScVal{Type: ScValTypeU64, U64: &u}
}

func I128Val(hi int64, lo uint64) ScVal {
	return ScVal{Type: ScValTypeI128, I128: &xdr.Int128Parts{Hi: hi, Lo: lo}}
}

func SymbolVal(s string) ScVal {
	sym := ScSymbol(s)
	return ScVal{Type: ScValTypeSymbol, Sym: &sym}
}

func AddressVal(a ScAddress) ScVal {
	return ScVal{Type: ScValTypeAddress, Address: &a}
}
