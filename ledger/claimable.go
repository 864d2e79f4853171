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

	"github.com/lumenlabs-io/gostellar/strkey"
	"github.com/lumenlabs-io/gostellar/xdr"
)

const (
	// MaxClaimants is the maximum number of claimants on one claimable
	// balance
	MaxClaimants = 10

	// ClaimableBalanceFlagClawbackEnabled marks a balance the issuer can
	// claw back
	ClaimableBalanceFlagClawbackEnabled uint32 = 1
)

// ClaimPredicateType values
const (
	ClaimPredicateUnconditional      int32 = 0
	ClaimPredicateAnd                int32 = 1
	ClaimPredicateOr                 int32 = 2
	ClaimPredicateNot                int32 = 3
	ClaimPredicateBeforeAbsoluteTime int32 = 4
	ClaimPredicateBeforeRelativeTime int32 = 5
)

// ClaimPredicate is a recursive condition tree restricting when a claimant
// may claim a balance
type ClaimPredicate struct {
	Type          int32
	AndPredicates []ClaimPredicate
	OrPredicates  []ClaimPredicate
	NotPredicate  *ClaimPredicate
	AbsBefore     int64
	RelBefore     int64
}

func (p ClaimPredicate) EncodeXDR(e *xdr.Encoder) error {
	switch p.Type {
	case ClaimPredicateUnconditional:
		e.WriteInt32(p.Type)
		return nil
	case ClaimPredicateAnd:
		e.WriteInt32(p.Type)
		return xdr.EncodeVarArray(e, p.AndPredicates, 2)
	case ClaimPredicateOr:
		e.WriteInt32(p.Type)
		return xdr.EncodeVarArray(e, p.OrPredicates, 2)
	case ClaimPredicateNot:
		e.WriteInt32(p.Type)
		return xdr.EncodeOptional(e, p.NotPredicate)
	case ClaimPredicateBeforeAbsoluteTime:
		e.WriteInt32(p.Type)
		e.WriteInt64(p.AbsBefore)
		return nil
	case ClaimPredicateBeforeRelativeTime:
		e.WriteInt32(p.Type)
		e.WriteInt64(p.RelBefore)
		return nil
	default:
		return &xdr.DiscriminantError{Type: "ClaimPredicate", Value: p.Type}
	}
}

func (p *ClaimPredicate) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	p.Type = t
	switch t {
	case ClaimPredicateUnconditional:
		return nil
	case ClaimPredicateAnd:
		p.AndPredicates, err = xdr.DecodeVarArray[ClaimPredicate](d, 2)
		return err
	case ClaimPredicateOr:
		p.OrPredicates, err = xdr.DecodeVarArray[ClaimPredicate](d, 2)
		return err
	case ClaimPredicateNot:
		p.NotPredicate, err = xdr.DecodeOptional[ClaimPredicate](d)
		return err
	case ClaimPredicateBeforeAbsoluteTime:
		p.AbsBefore, err = d.ReadInt64()
		return err
	case ClaimPredicateBeforeRelativeTime:
		p.RelBefore, err = d.ReadInt64()
		return err
	default:
		return &xdr.DiscriminantError{Type: "ClaimPredicate", Value: t}
	}
}

// ClaimantType values
const (
	ClaimantTypeV0 int32 = 0
)

// Claimant names a destination allowed to claim a balance, with the
// predicate it must satisfy
type Claimant struct {
	Type        int32
	Destination xdr.AccountID
	Predicate   ClaimPredicate
}

func (c Claimant) EncodeXDR(e *xdr.Encoder) error {
	if c.Type != ClaimantTypeV0 {
		return &xdr.DiscriminantError{Type: "Claimant", Value: c.Type}
	}
	e.WriteInt32(c.Type)
	if err := c.Destination.EncodeXDR(e); err != nil {
		return err
	}
	return c.Predicate.EncodeXDR(e)
}

func (c *Claimant) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if t != ClaimantTypeV0 {
		return &xdr.DiscriminantError{Type: "Claimant", Value: t}
	}
	c.Type = t
	if err := c.Destination.DecodeXDR(d); err != nil {
		return err
	}
	return c.Predicate.DecodeXDR(d)
}

// ClaimableBalanceIDType values
const (
	ClaimableBalanceIDTypeV0 int32 = 0
)

// ClaimableBalanceID identifies a claimable balance
type ClaimableBalanceID struct {
	Type int32
	V0   xdr.Hash
}

func (id ClaimableBalanceID) EncodeXDR(e *xdr.Encoder) error {
	if id.Type != ClaimableBalanceIDTypeV0 {
		return &xdr.DiscriminantError{Type: "ClaimableBalanceID", Value: id.Type}
	}
	e.WriteInt32(id.Type)
	return id.V0.EncodeXDR(e)
}

func (id *ClaimableBalanceID) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if t != ClaimableBalanceIDTypeV0 {
		return &xdr.DiscriminantError{Type: "ClaimableBalanceID", Value: t}
	}
	id.Type = t
	return id.V0.DecodeXDR(d)
}

// Address returns the text form of the balance id. The sub-version byte of
// the text form is the union discriminant
func (id ClaimableBalanceID) Address() string {
	payload := make([]byte, 0, 33)
	payload = append(payload, byte(id.Type))
	payload = append(payload, id.V0[:]...)
	return strkey.MustEncode(strkey.VersionByteClaimableBalance, payload)
}

// ParseClaimableBalanceID converts the text form of a claimable balance id
// back to its typed form
func ParseClaimableBalanceID(address string) (ClaimableBalanceID, error) {
	raw, err := strkey.Decode(strkey.VersionByteClaimableBalance, address)
	if err != nil {
		return ClaimableBalanceID{}, err
	}
	if raw[0] != 0x00 {
		return ClaimableBalanceID{}, fmt.Errorf(
			"unknown claimable balance id version 0x%02x",
			raw[0],
		)
	}
	var id ClaimableBalanceID
	copy(id.V0[:], raw[1:])
	return id, nil
}

// ClaimableBalanceEntryExtensionV1 adds flags
type ClaimableBalanceEntryExtensionV1 struct {
	Flags uint32
}

func (x ClaimableBalanceEntryExtensionV1) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt32(0)
	e.WriteUint32(x.Flags)
	return nil
}

func (x *ClaimableBalanceEntryExtensionV1) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{
			Type:  "ClaimableBalanceEntryExtensionV1.Ext",
			Value: v,
		}
	}
	x.Flags, err = d.ReadUint32()
	return err
}

// ClaimableBalanceEntry is a balance held by the ledger until one of its
// claimants claims it
type ClaimableBalanceEntry struct {
	BalanceID ClaimableBalanceID
	Claimants []Claimant
	Asset     xdr.Asset
	Amount    int64
	V1        *ClaimableBalanceEntryExtensionV1
}

func (c ClaimableBalanceEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := c.BalanceID.EncodeXDR(e); err != nil {
		return err
	}
	if err := xdr.EncodeVarArray(e, c.Claimants, MaxClaimants); err != nil {
		return err
	}
	if err := c.Asset.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(c.Amount)
	if c.V1 != nil {
		e.WriteInt32(1)
		return c.V1.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (c *ClaimableBalanceEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := c.BalanceID.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if c.Claimants, err = xdr.DecodeVarArray[Claimant](d, MaxClaimants); err != nil {
		return err
	}
	if err := c.Asset.DecodeXDR(d); err != nil {
		return err
	}
	if c.Amount, err = d.ReadInt64(); err != nil {
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
		c.V1 = &ClaimableBalanceEntryExtensionV1{}
		return c.V1.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "ClaimableBalanceEntry.Ext", Value: v}
	}
}
