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

package ledger

import (
	"fmt"

	"github.com/lumenlabs-io/gostellar/xdr"
)

const (
	// Trust line flag values
	TrustLineFlagAuthorized                      uint32 = 1
	TrustLineFlagAuthorizedToMaintainLiabilities uint32 = 2
	TrustLineFlagClawbackEnabled                 uint32 = 4
)

// TrustLineAsset extends Asset with the pool-share case used only by trust
// lines
type TrustLineAsset struct {
	Type            int32
	AlphaNum4       *xdr.AlphaNum4
	AlphaNum12      *xdr.AlphaNum12
	LiquidityPoolID *xdr.PoolID
}

func (a TrustLineAsset) EncodeXDR(e *xdr.Encoder) error {
	switch a.Type {
	case xdr.AssetTypeNative:
		e.WriteInt32(a.Type)
		return nil
	case xdr.AssetTypeCreditAlphanum4:
		if a.AlphaNum4 == nil {
			return fmt.Errorf("alphanum4 trust line asset has no code/issuer")
		}
		e.WriteInt32(a.Type)
		return a.AlphaNum4.EncodeXDR(e)
	case xdr.AssetTypeCreditAlphanum12:
		if a.AlphaNum12 == nil {
			return fmt.Errorf("alphanum12 trust line asset has no code/issuer")
		}
		e.WriteInt32(a.Type)
		return a.AlphaNum12.EncodeXDR(e)
	case xdr.AssetTypePoolShare:
		if a.LiquidityPoolID == nil {
			return fmt.Errorf("pool share trust line asset has no pool id")
		}
		e.WriteInt32(a.Type)
		return a.LiquidityPoolID.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "TrustLineAsset", Value: a.Type}
	}
}

func (a *TrustLineAsset) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	a.Type = t
	switch t {
	case xdr.AssetTypeNative:
		return nil
	case xdr.AssetTypeCreditAlphanum4:
		a.AlphaNum4 = &xdr.AlphaNum4{}
		return a.AlphaNum4.DecodeXDR(d)
	case xdr.AssetTypeCreditAlphanum12:
		a.AlphaNum12 = &xdr.AlphaNum12{}
		return a.AlphaNum12.DecodeXDR(d)
	case xdr.AssetTypePoolShare:
		a.LiquidityPoolID = &xdr.PoolID{}
		return a.LiquidityPoolID.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "TrustLineAsset", Value: t}
	}
}

// TrustLineEntryExtensionV2 adds the count of liquidity pools using the
// trust line
type TrustLineEntryExtensionV2 struct {
	LiquidityPoolUseCount int32
}

func (x TrustLineEntryExtensionV2) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt32(x.LiquidityPoolUseCount)
	e.WriteInt32(0)
	return nil
}

func (x *TrustLineEntryExtensionV2) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if x.LiquidityPoolUseCount, err = d.ReadInt32(); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "TrustLineEntryExtensionV2.Ext", Value: v}
	}
	return nil
}

// TrustLineEntryExtensionV1 adds liabilities. Its own extension point
// carries V2 when present
type TrustLineEntryExtensionV1 struct {
	Liabilities Liabilities
	V2          *TrustLineEntryExtensionV2
}

func (x TrustLineEntryExtensionV1) EncodeXDR(e *xdr.Encoder) error {
	if err := x.Liabilities.EncodeXDR(e); err != nil {
		return err
	}
	if x.V2 != nil {
		e.WriteInt32(2)
		return x.V2.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (x *TrustLineEntryExtensionV1) DecodeXDR(d *xdr.Decoder) error {
	if err := x.Liabilities.DecodeXDR(d); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch v {
	case 0:
		return nil
	case 2:
		x.V2 = &TrustLineEntryExtensionV2{}
		return x.V2.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "TrustLineEntryExtensionV1.Ext", Value: v}
	}
}

// TrustLineEntry is the ledger state of one account's trust of one asset
type TrustLineEntry struct {
	AccountID xdr.AccountID
	Asset     TrustLineAsset
	Balance   int64
	Limit     int64
	Flags     uint32
	V1        *TrustLineEntryExtensionV1
}

func (t TrustLineEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := t.AccountID.EncodeXDR(e); err != nil {
		return err
	}
	if err := t.Asset.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(t.Balance)
	e.WriteInt64(t.Limit)
	e.WriteUint32(t.Flags)
	if t.V1 != nil {
		e.WriteInt32(1)
		return t.V1.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (t *TrustLineEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := t.AccountID.DecodeXDR(d); err != nil {
		return err
	}
	if err := t.Asset.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if t.Balance, err = d.ReadInt64(); err != nil {
		return err
	}
	if t.Limit, err = d.ReadInt64(); err != nil {
		return err
	}
	if t.Flags, err = d.ReadUint32(); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch v {
	case 0:
		return nil
	case 1:
		t.V1 = &TrustLineEntryExtensionV1{}
		return t.V1.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "TrustLineEntry.Ext", Value: v}
	}
}

// IsAuthorized reports whether the trust line is fully authorized
func (t *TrustLineEntry) IsAuthorized() bool {
	return t.Flags&TrustLineFlagAuthorized != 0
}
