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

// Package ledger provides the typed catalog of ledger entries: accounts,
// trust lines, offers, data entries, claimable balances, liquidity pools,
// and contract state, along with ledger keys, change sets, and headers.
// Every type is a thin application of the xdr codec framework; none of it
// interprets ledger semantics.
package ledger

import (
	"fmt"

	"github.com/lumenlabs-io/gostellar/xdr"
)

const (
	// MaxSigners is the maximum number of signers on one account
	MaxSigners = 20

	// Account flag values
	AccountFlagAuthRequired  uint32 = 1
	AccountFlagAuthRevocable uint32 = 2
	AccountFlagAuthImmutable uint32 = 4
	AccountFlagClawback      uint32 = 8
)

// Liabilities tracks the buying and selling obligations of an account or
// trust line
type Liabilities struct {
	Buying  int64
	Selling int64
}

func (l Liabilities) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt64(l.Buying)
	e.WriteInt64(l.Selling)
	return nil
}

func (l *Liabilities) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if l.Buying, err = d.ReadInt64(); err != nil {
		return err
	}
	l.Selling, err = d.ReadInt64()
	return err
}

// AccountEntryExtensionV3 adds the ledger and time of the last sequence
// number bump
type AccountEntryExtensionV3 struct {
	Ext       xdr.ExtensionPoint
	SeqLedger uint32
	SeqTime   xdr.TimePoint
}

func (x AccountEntryExtensionV3) EncodeXDR(e *xdr.Encoder) error {
	if err := x.Ext.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(x.SeqLedger)
	e.WriteUint64(uint64(x.SeqTime))
	return nil
}

func (x *AccountEntryExtensionV3) DecodeXDR(d *xdr.Decoder) error {
	if err := x.Ext.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if x.SeqLedger, err = d.ReadUint32(); err != nil {
		return err
	}
	seqTime, err := d.ReadUint64()
	if err != nil {
		return err
	}
	x.SeqTime = xdr.TimePoint(seqTime)
	return nil
}

// AccountEntryExtensionV2 adds sponsorship counters. Its own extension
// point carries V3 when present
type AccountEntryExtensionV2 struct {
	NumSponsored        uint32
	NumSponsoring       uint32
	SignerSponsoringIDs []*xdr.AccountID
	V3                  *AccountEntryExtensionV3
}

func (x AccountEntryExtensionV2) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint32(x.NumSponsored)
	e.WriteUint32(x.NumSponsoring)
	if len(x.SignerSponsoringIDs) > MaxSigners {
		return &xdr.BoundsError{
			Len: uint32(len(x.SignerSponsoringIDs)), //nolint:gosec
			Max: MaxSigners,
		}
	}
	e.WriteUint32(uint32(len(x.SignerSponsoringIDs)))
	for _, id := range x.SignerSponsoringIDs {
		if err := xdr.EncodeOptional(e, id); err != nil {
			return err
		}
	}
	if x.V3 != nil {
		e.WriteInt32(3)
		return x.V3.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (x *AccountEntryExtensionV2) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if x.NumSponsored, err = d.ReadUint32(); err != nil {
		return err
	}
	if x.NumSponsoring, err = d.ReadUint32(); err != nil {
		return err
	}
	count, err := d.ReadUint32()
	if err != nil {
		return err
	}
	if count > MaxSigners {
		return &xdr.BoundsError{Len: count, Max: MaxSigners}
	}
	x.SignerSponsoringIDs = make([]*xdr.AccountID, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := xdr.DecodeOptional[xdr.AccountID](d)
		if err != nil {
			return err
		}
		x.SignerSponsoringIDs = append(x.SignerSponsoringIDs, id)
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch v {
	case 0:
		return nil
	case 3:
		x.V3 = &AccountEntryExtensionV3{}
		return x.V3.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "AccountEntryExtensionV2.Ext", Value: v}
	}
}

// AccountEntryExtensionV1 adds liabilities. Its own extension point carries
// V2 when present
type AccountEntryExtensionV1 struct {
	Liabilities Liabilities
	V2          *AccountEntryExtensionV2
}

func (x AccountEntryExtensionV1) EncodeXDR(e *xdr.Encoder) error {
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

func (x *AccountEntryExtensionV1) DecodeXDR(d *xdr.Decoder) error {
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
		x.V2 = &AccountEntryExtensionV2{}
		return x.V2.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "AccountEntryExtensionV1.Ext", Value: v}
	}
}

// AccountEntry is the ledger state of one account
type AccountEntry struct {
	AccountID     xdr.AccountID
	Balance       int64
	SeqNum        xdr.SequenceNumber
	NumSubEntries uint32
	InflationDest *xdr.AccountID
	Flags         uint32
	HomeDomain    xdr.String32
	Thresholds    xdr.Thresholds
	Signers       []xdr.Signer
	V1            *AccountEntryExtensionV1
}

func (a AccountEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := a.AccountID.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(a.Balance)
	e.WriteInt64(int64(a.SeqNum))
	e.WriteUint32(a.NumSubEntries)
	if err := xdr.EncodeOptional(e, a.InflationDest); err != nil {
		return err
	}
	e.WriteUint32(a.Flags)
	if err := a.HomeDomain.EncodeXDR(e); err != nil {
		return err
	}
	if err := a.Thresholds.EncodeXDR(e); err != nil {
		return err
	}
	if err := xdr.EncodeVarArray(e, a.Signers, MaxSigners); err != nil {
		return err
	}
	if a.V1 != nil {
		e.WriteInt32(1)
		return a.V1.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (a *AccountEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := a.AccountID.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if a.Balance, err = d.ReadInt64(); err != nil {
		return err
	}
	seqNum, err := d.ReadInt64()
	if err != nil {
		return err
	}
	a.SeqNum = xdr.SequenceNumber(seqNum)
	if a.NumSubEntries, err = d.ReadUint32(); err != nil {
		return err
	}
	if a.InflationDest, err = xdr.DecodeOptional[xdr.AccountID](d); err != nil {
		return err
	}
	if a.Flags, err = d.ReadUint32(); err != nil {
		return err
	}
	if err := a.HomeDomain.DecodeXDR(d); err != nil {
		return err
	}
	if err := a.Thresholds.DecodeXDR(d); err != nil {
		return err
	}
	if a.Signers, err = xdr.DecodeVarArray[xdr.Signer](d, MaxSigners); err != nil {
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
		a.V1 = &AccountEntryExtensionV1{}
		return a.V1.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "AccountEntry.Ext", Value: v}
	}
}

// SignerSponsoringID returns the sponsor of the signer at the given index,
// or nil when the account's extensions do not record one
func (a *AccountEntry) SignerSponsoringID(idx int) *xdr.AccountID {
	if a.V1 == nil || a.V1.V2 == nil {
		return nil
	}
	if idx < 0 || idx >= len(a.V1.V2.SignerSponsoringIDs) {
		return nil
	}
	return a.V1.V2.SignerSponsoringIDs[idx]
}

// MasterKeyWeight returns the weight of the account's master key
func (a *AccountEntry) MasterKeyWeight() byte {
	return a.Thresholds[0]
}

func (a *AccountEntry) String() string {
	return fmt.Sprintf(
		"AccountEntry (%s, balance %d, seq %d)",
		a.AccountID.Address(),
		a.Balance,
		a.SeqNum,
	)
}
