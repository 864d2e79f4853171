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

package transaction

import (
	"fmt"
	"math"

	"github.com/lumenlabs-io/gostellar/contract"
	"github.com/lumenlabs-io/gostellar/ledger"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// OperationType values
const (
	OperationTypeCreateAccount          int32 = 0
	OperationTypePayment                int32 = 1
	OperationTypeManageSellOffer        int32 = 3
	OperationTypeSetOptions             int32 = 5
	OperationTypeChangeTrust            int32 = 6
	OperationTypeAccountMerge           int32 = 8
	OperationTypeManageData             int32 = 10
	OperationTypeBumpSequence           int32 = 11
	OperationTypeCreateClaimableBalance int32 = 14
	OperationTypeInvokeHostFunction     int32 = 24
)

// CreateAccountOp funds a new account with a starting balance
type CreateAccountOp struct {
	Destination     xdr.AccountID
	StartingBalance int64
}

func (op CreateAccountOp) EncodeXDR(e *xdr.Encoder) error {
	if err := op.Destination.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(op.StartingBalance)
	return nil
}

func (op *CreateAccountOp) DecodeXDR(d *xdr.Decoder) error {
	if err := op.Destination.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	op.StartingBalance, err = d.ReadInt64()
	return err
}

// PaymentOp sends an amount of an asset to a destination
type PaymentOp struct {
	Destination xdr.MuxedAccount
	Asset       xdr.Asset
	Amount      int64
}

func (op PaymentOp) EncodeXDR(e *xdr.Encoder) error {
	if err := op.Destination.EncodeXDR(e); err != nil {
		return err
	}
	if err := op.Asset.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(op.Amount)
	return nil
}

func (op *PaymentOp) DecodeXDR(d *xdr.Decoder) error {
	if err := op.Destination.DecodeXDR(d); err != nil {
		return err
	}
	if err := op.Asset.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	op.Amount, err = d.ReadInt64()
	return err
}

// ManageSellOfferOp creates, updates, or deletes a sell offer. OfferID zero
// creates a new offer; amount zero deletes an existing one
type ManageSellOfferOp struct {
	Selling xdr.Asset
	Buying  xdr.Asset
	Amount  int64
	Price   xdr.Price
	OfferID int64
}

func (op ManageSellOfferOp) EncodeXDR(e *xdr.Encoder) error {
	if err := op.Selling.EncodeXDR(e); err != nil {
		return err
	}
	if err := op.Buying.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(op.Amount)
	if err := op.Price.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(op.OfferID)
	return nil
}

func (op *ManageSellOfferOp) DecodeXDR(d *xdr.Decoder) error {
	if err := op.Selling.DecodeXDR(d); err != nil {
		return err
	}
	if err := op.Buying.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if op.Amount, err = d.ReadInt64(); err != nil {
		return err
	}
	if err := op.Price.DecodeXDR(d); err != nil {
		return err
	}
	op.OfferID, err = d.ReadInt64()
	return err
}

// SetOptionsOp adjusts account settings. Every field is optional; absent
// fields are left unchanged
type SetOptionsOp struct {
	InflationDest *xdr.AccountID
	ClearFlags    *uint32
	SetFlags      *uint32
	MasterWeight  *uint32
	LowThreshold  *uint32
	MedThreshold  *uint32
	HighThreshold *uint32
	HomeDomain    *xdr.String32
	Signer        *xdr.Signer
}

func encodeOptionalUint32(e *xdr.Encoder, v *uint32) {
	if v != nil {
		e.WriteBool(true)
		e.WriteUint32(*v)
	} else {
		e.WriteBool(false)
	}
}

func decodeOptionalUint32(d *xdr.Decoder) (*uint32, error) {
	present, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (op SetOptionsOp) EncodeXDR(e *xdr.Encoder) error {
	if err := xdr.EncodeOptional(e, op.InflationDest); err != nil {
		return err
	}
	encodeOptionalUint32(e, op.ClearFlags)
	encodeOptionalUint32(e, op.SetFlags)
	encodeOptionalUint32(e, op.MasterWeight)
	encodeOptionalUint32(e, op.LowThreshold)
	encodeOptionalUint32(e, op.MedThreshold)
	encodeOptionalUint32(e, op.HighThreshold)
	if err := xdr.EncodeOptional(e, op.HomeDomain); err != nil {
		return err
	}
	return xdr.EncodeOptional(e, op.Signer)
}

func (op *SetOptionsOp) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if op.InflationDest, err = xdr.DecodeOptional[xdr.AccountID](d); err != nil {
		return err
	}
	if op.ClearFlags, err = decodeOptionalUint32(d); err != nil {
		return err
	}
	if op.SetFlags, err = decodeOptionalUint32(d); err != nil {
		return err
	}
	if op.MasterWeight, err = decodeOptionalUint32(d); err != nil {
		return err
	}
	if op.LowThreshold, err = decodeOptionalUint32(d); err != nil {
		return err
	}
	if op.MedThreshold, err = decodeOptionalUint32(d); err != nil {
		return err
	}
	if op.HighThreshold, err = decodeOptionalUint32(d); err != nil {
		return err
	}
	if op.HomeDomain, err = xdr.DecodeOptional[xdr.String32](d); err != nil {
		return err
	}
	op.Signer, err = xdr.DecodeOptional[xdr.Signer](d)
	return err
}

// ChangeTrustOp creates, updates, or deletes a trust line. A zero limit
// deletes the trust line
type ChangeTrustOp struct {
	Line  xdr.Asset
	Limit int64
}

func (op ChangeTrustOp) EncodeXDR(e *xdr.Encoder) error {
	if err := op.Line.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(op.Limit)
	return nil
}

func (op *ChangeTrustOp) DecodeXDR(d *xdr.Decoder) error {
	if err := op.Line.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	op.Limit, err = d.ReadInt64()
	return err
}

// ManageDataOp sets or removes a named data entry on the source account. A
// nil value removes the entry
type ManageDataOp struct {
	DataName  xdr.String64
	DataValue *xdr.DataValue
}

func (op ManageDataOp) EncodeXDR(e *xdr.Encoder) error {
	if err := op.DataName.EncodeXDR(e); err != nil {
		return err
	}
	return xdr.EncodeOptional(e, op.DataValue)
}

func (op *ManageDataOp) DecodeXDR(d *xdr.Decoder) error {
	if err := op.DataName.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	op.DataValue, err = xdr.DecodeOptional[xdr.DataValue](d)
	return err
}

// BumpSequenceOp raises the source account's sequence number
type BumpSequenceOp struct {
	BumpTo xdr.SequenceNumber
}

func (op BumpSequenceOp) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt64(int64(op.BumpTo))
	return nil
}

func (op *BumpSequenceOp) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.ReadInt64()
	if err != nil {
		return err
	}
	op.BumpTo = xdr.SequenceNumber(v)
	return nil
}

// CreateClaimableBalanceOp locks an amount of an asset behind a claimant
// list
type CreateClaimableBalanceOp struct {
	Asset     xdr.Asset
	Amount    int64
	Claimants []ledger.Claimant
}

func (op CreateClaimableBalanceOp) EncodeXDR(e *xdr.Encoder) error {
	if err := op.Asset.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(op.Amount)
	return xdr.EncodeVarArray(e, op.Claimants, ledger.MaxClaimants)
}

func (op *CreateClaimableBalanceOp) DecodeXDR(d *xdr.Decoder) error {
	if err := op.Asset.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if op.Amount, err = d.ReadInt64(); err != nil {
		return err
	}
	op.Claimants, err = xdr.DecodeVarArray[ledger.Claimant](d, ledger.MaxClaimants)
	return err
}

// InvokeHostFunctionOp invokes a contract host function with its
// authorization entries
type InvokeHostFunctionOp struct {
	HostFunction contract.HostFunction
	Auth         []contract.SorobanAuthorizationEntry
}

func (op InvokeHostFunctionOp) EncodeXDR(e *xdr.Encoder) error {
	if err := op.HostFunction.EncodeXDR(e); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, op.Auth, math.MaxUint32)
}

func (op *InvokeHostFunctionOp) DecodeXDR(d *xdr.Decoder) error {
	if err := op.HostFunction.DecodeXDR(d); err != nil {
		return err
	}
	auth, err := xdr.DecodeVarArray[contract.SorobanAuthorizationEntry](
		d,
		math.MaxUint32,
	)
	if err != nil {
		return err
	}
	op.Auth = auth
	return nil
}

// OperationBody is the typed payload of an operation. Exactly one arm is
// set, matching Type. AccountMerge carries its destination directly
type OperationBody struct {
	Type                   int32
	CreateAccount          *CreateAccountOp
	Payment                *PaymentOp
	ManageSellOffer        *ManageSellOfferOp
	SetOptions             *SetOptionsOp
	ChangeTrust            *ChangeTrustOp
	Destination            *xdr.MuxedAccount
	ManageData             *ManageDataOp
	BumpSequence           *BumpSequenceOp
	CreateClaimableBalance *CreateClaimableBalanceOp
	InvokeHostFunction     *InvokeHostFunctionOp
}

func (b OperationBody) EncodeXDR(e *xdr.Encoder) error {
	arm := b.arm()
	if arm == nil {
		return fmt.Errorf("operation body has no payload for type %d", b.Type)
	}
	e.WriteInt32(b.Type)
	return arm.EncodeXDR(e)
}

func (b OperationBody) arm() xdr.Encodable {
	switch b.Type {
	case OperationTypeCreateAccount:
		if b.CreateAccount != nil {
			return *b.CreateAccount
		}
	case OperationTypePayment:
		if b.Payment != nil {
			return *b.Payment
		}
	case OperationTypeManageSellOffer:
		if b.ManageSellOffer != nil {
			return *b.ManageSellOffer
		}
	case OperationTypeSetOptions:
		if b.SetOptions != nil {
			return *b.SetOptions
		}
	case OperationTypeChangeTrust:
		if b.ChangeTrust != nil {
			return *b.ChangeTrust
		}
	case OperationTypeAccountMerge:
		if b.Destination != nil {
			return *b.Destination
		}
	case OperationTypeManageData:
		if b.ManageData != nil {
			return *b.ManageData
		}
	case OperationTypeBumpSequence:
		if b.BumpSequence != nil {
			return *b.BumpSequence
		}
	case OperationTypeCreateClaimableBalance:
		if b.CreateClaimableBalance != nil {
			return *b.CreateClaimableBalance
		}
	case OperationTypeInvokeHostFunction:
		if b.InvokeHostFunction != nil {
			return *b.InvokeHostFunction
		}
	}
	return nil
}

func (b *OperationBody) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	b.Type = t
	switch t {
	case OperationTypeCreateAccount:
		b.CreateAccount = &CreateAccountOp{}
		return b.CreateAccount.DecodeXDR(d)
	case OperationTypePayment:
		b.Payment = &PaymentOp{}
		return b.Payment.DecodeXDR(d)
	case OperationTypeManageSellOffer:
		b.ManageSellOffer = &ManageSellOfferOp{}
		return b.ManageSellOffer.DecodeXDR(d)
	case OperationTypeSetOptions:
		b.SetOptions = &SetOptionsOp{}
		return b.SetOptions.DecodeXDR(d)
	case OperationTypeChangeTrust:
		b.ChangeTrust = &ChangeTrustOp{}
		return b.ChangeTrust.DecodeXDR(d)
	case OperationTypeAccountMerge:
		b.Destination = &xdr.MuxedAccount{}
		return b.Destination.DecodeXDR(d)
	case OperationTypeManageData:
		b.ManageData = &ManageDataOp{}
		return b.ManageData.DecodeXDR(d)
	case OperationTypeBumpSequence:
		b.BumpSequence = &BumpSequenceOp{}
		return b.BumpSequence.DecodeXDR(d)
	case OperationTypeCreateClaimableBalance:
		b.CreateClaimableBalance = &CreateClaimableBalanceOp{}
		return b.CreateClaimableBalance.DecodeXDR(d)
	case OperationTypeInvokeHostFunction:
		b.InvokeHostFunction = &InvokeHostFunctionOp{}
		return b.InvokeHostFunction.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "OperationBody", Value: t}
	}
}

// Operation is one unit of work in a transaction, optionally overriding the
// transaction's source account
type Operation struct {
	SourceAccount *xdr.MuxedAccount
	Body          OperationBody
}

func (op Operation) EncodeXDR(e *xdr.Encoder) error {
	if err := xdr.EncodeOptional(e, op.SourceAccount); err != nil {
		return err
	}
	return op.Body.EncodeXDR(e)
}

func (op *Operation) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if op.SourceAccount, err = xdr.DecodeOptional[xdr.MuxedAccount](d); err != nil {
		return err
	}
	return op.Body.DecodeXDR(d)
}
