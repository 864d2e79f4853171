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
	"bytes"
	"fmt"

	"github.com/lumenlabs-io/gostellar/contract"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// LedgerKeyAccount identifies an account entry
type LedgerKeyAccount struct {
	AccountID xdr.AccountID
}

func (k LedgerKeyAccount) EncodeXDR(e *xdr.Encoder) error {
	return k.AccountID.EncodeXDR(e)
}

func (k *LedgerKeyAccount) DecodeXDR(d *xdr.Decoder) error {
	return k.AccountID.DecodeXDR(d)
}

// LedgerKeyTrustLine identifies a trust line entry
type LedgerKeyTrustLine struct {
	AccountID xdr.AccountID
	Asset     TrustLineAsset
}

func (k LedgerKeyTrustLine) EncodeXDR(e *xdr.Encoder) error {
	if err := k.AccountID.EncodeXDR(e); err != nil {
		return err
	}
	return k.Asset.EncodeXDR(e)
}

func (k *LedgerKeyTrustLine) DecodeXDR(d *xdr.Decoder) error {
	if err := k.AccountID.DecodeXDR(d); err != nil {
		return err
	}
	return k.Asset.DecodeXDR(d)
}

// LedgerKeyOffer identifies an offer entry
type LedgerKeyOffer struct {
	SellerID xdr.AccountID
	OfferID  int64
}

func (k LedgerKeyOffer) EncodeXDR(e *xdr.Encoder) error {
	if err := k.SellerID.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(k.OfferID)
	return nil
}

func (k *LedgerKeyOffer) DecodeXDR(d *xdr.Decoder) error {
	if err := k.SellerID.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	k.OfferID, err = d.ReadInt64()
	return err
}

// LedgerKeyData identifies a data entry
type LedgerKeyData struct {
	AccountID xdr.AccountID
	DataName  xdr.String64
}

func (k LedgerKeyData) EncodeXDR(e *xdr.Encoder) error {
	if err := k.AccountID.EncodeXDR(e); err != nil {
		return err
	}
	return k.DataName.EncodeXDR(e)
}

func (k *LedgerKeyData) DecodeXDR(d *xdr.Decoder) error {
	if err := k.AccountID.DecodeXDR(d); err != nil {
		return err
	}
	return k.DataName.DecodeXDR(d)
}

// LedgerKeyClaimableBalance identifies a claimable balance entry
type LedgerKeyClaimableBalance struct {
	BalanceID ClaimableBalanceID
}

func (k LedgerKeyClaimableBalance) EncodeXDR(e *xdr.Encoder) error {
	return k.BalanceID.EncodeXDR(e)
}

func (k *LedgerKeyClaimableBalance) DecodeXDR(d *xdr.Decoder) error {
	return k.BalanceID.DecodeXDR(d)
}

// LedgerKeyLiquidityPool identifies a liquidity pool entry
type LedgerKeyLiquidityPool struct {
	LiquidityPoolID xdr.PoolID
}

func (k LedgerKeyLiquidityPool) EncodeXDR(e *xdr.Encoder) error {
	return k.LiquidityPoolID.EncodeXDR(e)
}

func (k *LedgerKeyLiquidityPool) DecodeXDR(d *xdr.Decoder) error {
	return k.LiquidityPoolID.DecodeXDR(d)
}

// LedgerKeyContractData identifies a piece of contract storage
type LedgerKeyContractData struct {
	Contract   contract.ScAddress
	Key        contract.ScVal
	Durability int32
}

func (k LedgerKeyContractData) EncodeXDR(e *xdr.Encoder) error {
	if err := k.Contract.EncodeXDR(e); err != nil {
		return err
	}
	if err := k.Key.EncodeXDR(e); err != nil {
		return err
	}
	switch k.Durability {
	case ContractDataTemporary, ContractDataPersistent:
		e.WriteInt32(k.Durability)
		return nil
	default:
		return &xdr.DiscriminantError{
			Type:  "LedgerKeyContractData.Durability",
			Value: k.Durability,
		}
	}
}

func (k *LedgerKeyContractData) DecodeXDR(d *xdr.Decoder) error {
	if err := k.Contract.DecodeXDR(d); err != nil {
		return err
	}
	if err := k.Key.DecodeXDR(d); err != nil {
		return err
	}
	durability, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch durability {
	case ContractDataTemporary, ContractDataPersistent:
		k.Durability = durability
		return nil
	default:
		return &xdr.DiscriminantError{
			Type:  "LedgerKeyContractData.Durability",
			Value: durability,
		}
	}
}

// LedgerKeyContractCode identifies an uploaded contract Wasm blob
type LedgerKeyContractCode struct {
	Hash xdr.Hash
}

func (k LedgerKeyContractCode) EncodeXDR(e *xdr.Encoder) error {
	return k.Hash.EncodeXDR(e)
}

func (k *LedgerKeyContractCode) DecodeXDR(d *xdr.Decoder) error {
	return k.Hash.DecodeXDR(d)
}

// LedgerKeyTtl identifies a TTL entry
type LedgerKeyTtl struct {
	KeyHash xdr.Hash
}

func (k LedgerKeyTtl) EncodeXDR(e *xdr.Encoder) error {
	return k.KeyHash.EncodeXDR(e)
}

func (k *LedgerKeyTtl) DecodeXDR(d *xdr.Decoder) error {
	return k.KeyHash.DecodeXDR(d)
}

// LedgerKey identifies one ledger entry. Exactly one arm is set, matching
// Type
type LedgerKey struct {
	Type             int32
	Account          *LedgerKeyAccount
	TrustLine        *LedgerKeyTrustLine
	Offer            *LedgerKeyOffer
	Data             *LedgerKeyData
	ClaimableBalance *LedgerKeyClaimableBalance
	LiquidityPool    *LedgerKeyLiquidityPool
	ContractData     *LedgerKeyContractData
	ContractCode     *LedgerKeyContractCode
	Ttl              *LedgerKeyTtl
}

func (k LedgerKey) EncodeXDR(e *xdr.Encoder) error {
	arm := k.arm()
	if arm == nil {
		return fmt.Errorf("ledger key has no body for type %d", k.Type)
	}
	e.WriteInt32(k.Type)
	return arm.EncodeXDR(e)
}

func (k LedgerKey) arm() xdr.Encodable {
	switch k.Type {
	case EntryTypeAccount:
		if k.Account != nil {
			return *k.Account
		}
	case EntryTypeTrustLine:
		if k.TrustLine != nil {
			return *k.TrustLine
		}
	case EntryTypeOffer:
		if k.Offer != nil {
			return *k.Offer
		}
	case EntryTypeData:
		if k.Data != nil {
			return *k.Data
		}
	case EntryTypeClaimableBalance:
		if k.ClaimableBalance != nil {
			return *k.ClaimableBalance
		}
	case EntryTypeLiquidityPool:
		if k.LiquidityPool != nil {
			return *k.LiquidityPool
		}
	case EntryTypeContractData:
		if k.ContractData != nil {
			return *k.ContractData
		}
	case EntryTypeContractCode:
		if k.ContractCode != nil {
			return *k.ContractCode
		}
	case EntryTypeTtl:
		if k.Ttl != nil {
			return *k.Ttl
		}
	}
	return nil
}

func (k *LedgerKey) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	k.Type = t
	switch t {
	case EntryTypeAccount:
		k.Account = &LedgerKeyAccount{}
		return k.Account.DecodeXDR(d)
	case EntryTypeTrustLine:
		k.TrustLine = &LedgerKeyTrustLine{}
		return k.TrustLine.DecodeXDR(d)
	case EntryTypeOffer:
		k.Offer = &LedgerKeyOffer{}
		return k.Offer.DecodeXDR(d)
	case EntryTypeData:
		k.Data = &LedgerKeyData{}
		return k.Data.DecodeXDR(d)
	case EntryTypeClaimableBalance:
		k.ClaimableBalance = &LedgerKeyClaimableBalance{}
		return k.ClaimableBalance.DecodeXDR(d)
	case EntryTypeLiquidityPool:
		k.LiquidityPool = &LedgerKeyLiquidityPool{}
		return k.LiquidityPool.DecodeXDR(d)
	case EntryTypeContractData:
		k.ContractData = &LedgerKeyContractData{}
		return k.ContractData.DecodeXDR(d)
	case EntryTypeContractCode:
		k.ContractCode = &LedgerKeyContractCode{}
		return k.ContractCode.DecodeXDR(d)
	case EntryTypeTtl:
		k.Ttl = &LedgerKeyTtl{}
		return k.Ttl.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "LedgerKey", Value: t}
	}
}

// Equals reports whether two keys identify the same entry, compared by wire
// form
func (k LedgerKey) Equals(other LedgerKey) bool {
	a, err := xdr.Marshal(k)
	if err != nil {
		return false
	}
	b, err := xdr.Marshal(other)
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}
