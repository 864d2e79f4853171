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

// LedgerEntryType values
const (
	EntryTypeAccount          int32 = 0
	EntryTypeTrustLine        int32 = 1
	EntryTypeOffer            int32 = 2
	EntryTypeData             int32 = 3
	EntryTypeClaimableBalance int32 = 4
	EntryTypeLiquidityPool    int32 = 5
	EntryTypeContractData     int32 = 6
	EntryTypeContractCode     int32 = 7
	EntryTypeTtl              int32 = 9
)

// LedgerEntryData is the typed body of a ledger entry. Exactly one arm is
// set, matching Type
type LedgerEntryData struct {
	Type             int32
	Account          *AccountEntry
	TrustLine        *TrustLineEntry
	Offer            *OfferEntry
	Data             *DataEntry
	ClaimableBalance *ClaimableBalanceEntry
	LiquidityPool    *LiquidityPoolEntry
	ContractData     *ContractDataEntry
	ContractCode     *ContractCodeEntry
	Ttl              *TtlEntry
}

func (l LedgerEntryData) EncodeXDR(e *xdr.Encoder) error {
	arm := l.arm()
	if arm == nil {
		return fmt.Errorf("ledger entry data has no body for type %d", l.Type)
	}
	e.WriteInt32(l.Type)
	return arm.EncodeXDR(e)
}

func (l LedgerEntryData) arm() xdr.Encodable {
	switch l.Type {
	case EntryTypeAccount:
		if l.Account != nil {
			return *l.Account
		}
	case EntryTypeTrustLine:
		if l.TrustLine != nil {
			return *l.TrustLine
		}
	case EntryTypeOffer:
		if l.Offer != nil {
			return *l.Offer
		}
	case EntryTypeData:
		if l.Data != nil {
			return *l.Data
		}
	case EntryTypeClaimableBalance:
		if l.ClaimableBalance != nil {
			return *l.ClaimableBalance
		}
	case EntryTypeLiquidityPool:
		if l.LiquidityPool != nil {
			return *l.LiquidityPool
		}
	case EntryTypeContractData:
		if l.ContractData != nil {
			return *l.ContractData
		}
	case EntryTypeContractCode:
		if l.ContractCode != nil {
			return *l.ContractCode
		}
	case EntryTypeTtl:
		if l.Ttl != nil {
			return *l.Ttl
		}
	}
	return nil
}

func (l *LedgerEntryData) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	l.Type = t
	switch t {
	case EntryTypeAccount:
		l.Account = &AccountEntry{}
		return l.Account.DecodeXDR(d)
	case EntryTypeTrustLine:
		l.TrustLine = &TrustLineEntry{}
		return l.TrustLine.DecodeXDR(d)
	case EntryTypeOffer:
		l.Offer = &OfferEntry{}
		return l.Offer.DecodeXDR(d)
	case EntryTypeData:
		l.Data = &DataEntry{}
		return l.Data.DecodeXDR(d)
	case EntryTypeClaimableBalance:
		l.ClaimableBalance = &ClaimableBalanceEntry{}
		return l.ClaimableBalance.DecodeXDR(d)
	case EntryTypeLiquidityPool:
		l.LiquidityPool = &LiquidityPoolEntry{}
		return l.LiquidityPool.DecodeXDR(d)
	case EntryTypeContractData:
		l.ContractData = &ContractDataEntry{}
		return l.ContractData.DecodeXDR(d)
	case EntryTypeContractCode:
		l.ContractCode = &ContractCodeEntry{}
		return l.ContractCode.DecodeXDR(d)
	case EntryTypeTtl:
		l.Ttl = &TtlEntry{}
		return l.Ttl.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "LedgerEntryData", Value: t}
	}
}

// LedgerEntryExtensionV1 records the sponsor of the entry, when any
type LedgerEntryExtensionV1 struct {
	SponsoringID *xdr.AccountID
}

func (x LedgerEntryExtensionV1) EncodeXDR(e *xdr.Encoder) error {
	if err := xdr.EncodeOptional(e, x.SponsoringID); err != nil {
		return err
	}
	e.WriteInt32(0)
	return nil
}

func (x *LedgerEntryExtensionV1) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if x.SponsoringID, err = xdr.DecodeOptional[xdr.AccountID](d); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "LedgerEntryExtensionV1.Ext", Value: v}
	}
	return nil
}

// LedgerEntry is one entry of the ledger with the sequence number of the
// ledger that last modified it
type LedgerEntry struct {
	LastModifiedLedgerSeq uint32
	Data                  LedgerEntryData
	V1                    *LedgerEntryExtensionV1
}

func (l LedgerEntry) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint32(l.LastModifiedLedgerSeq)
	if err := l.Data.EncodeXDR(e); err != nil {
		return err
	}
	if l.V1 != nil {
		e.WriteInt32(1)
		return l.V1.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (l *LedgerEntry) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if l.LastModifiedLedgerSeq, err = d.ReadUint32(); err != nil {
		return err
	}
	if err := l.Data.DecodeXDR(d); err != nil {
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
		l.V1 = &LedgerEntryExtensionV1{}
		return l.V1.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "LedgerEntry.Ext", Value: v}
	}
}

// SponsoringID returns the sponsor of the entry, or nil when unsponsored
func (l *LedgerEntry) SponsoringID() *xdr.AccountID {
	if l.V1 == nil {
		return nil
	}
	return l.V1.SponsoringID
}

// Key derives the ledger key identifying this entry
func (l *LedgerEntry) Key() (LedgerKey, error) {
	key := LedgerKey{Type: l.Data.Type}
	switch l.Data.Type {
	case EntryTypeAccount:
		key.Account = &LedgerKeyAccount{AccountID: l.Data.Account.AccountID}
	case EntryTypeTrustLine:
		key.TrustLine = &LedgerKeyTrustLine{
			AccountID: l.Data.TrustLine.AccountID,
			Asset:     l.Data.TrustLine.Asset,
		}
	case EntryTypeOffer:
		key.Offer = &LedgerKeyOffer{
			SellerID: l.Data.Offer.SellerID,
			OfferID:  l.Data.Offer.OfferID,
		}
	case EntryTypeData:
		key.Data = &LedgerKeyData{
			AccountID: l.Data.Data.AccountID,
			DataName:  l.Data.Data.DataName,
		}
	case EntryTypeClaimableBalance:
		key.ClaimableBalance = &LedgerKeyClaimableBalance{
			BalanceID: l.Data.ClaimableBalance.BalanceID,
		}
	case EntryTypeLiquidityPool:
		key.LiquidityPool = &LedgerKeyLiquidityPool{
			LiquidityPoolID: l.Data.LiquidityPool.LiquidityPoolID,
		}
	case EntryTypeContractData:
		key.ContractData = &LedgerKeyContractData{
			Contract:   l.Data.ContractData.Contract,
			Key:        l.Data.ContractData.Key,
			Durability: l.Data.ContractData.Durability,
		}
	case EntryTypeContractCode:
		key.ContractCode = &LedgerKeyContractCode{
			Hash: l.Data.ContractCode.Hash,
		}
	case EntryTypeTtl:
		key.Ttl = &LedgerKeyTtl{KeyHash: l.Data.Ttl.KeyHash}
	default:
		return LedgerKey{}, &xdr.DiscriminantError{
			Type:  "LedgerEntryData",
			Value: l.Data.Type,
		}
	}
	return key, nil
}
