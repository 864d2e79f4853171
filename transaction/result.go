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
	"math"

	"github.com/lumenlabs-io/gostellar/xdr"
)

// TransactionResultCode values
const (
	TxSuccess             int32 = 0
	TxFailed              int32 = -1
	TxTooEarly            int32 = -2
	TxTooLate             int32 = -3
	TxMissingOperation    int32 = -4
	TxBadSeq              int32 = -5
	TxBadAuth             int32 = -6
	TxInsufficientBalance int32 = -7
	TxNoAccount           int32 = -8
	TxInsufficientFee     int32 = -9
	TxBadAuthExtra        int32 = -10
	TxInternalError       int32 = -11
	TxNotSupported        int32 = -12
	TxBadSponsorship      int32 = -14
	TxBadMinSeqAgeOrGap   int32 = -15
	TxMalformed           int32 = -16
	TxSorobanInvalid      int32 = -17
)

// OperationResultCode values
const (
	OpInner        int32 = 0
	OpBadAuth      int32 = -1
	OpNoAccount    int32 = -2
	OpNotSupported int32 = -3
)

// CreateAccountResult carries the outcome of a create account operation.
// Every arm of the underlying union is void
type CreateAccountResult struct {
	Code int32
}

func (r CreateAccountResult) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt32(r.Code)
	return nil
}

func (r *CreateAccountResult) DecodeXDR(d *xdr.Decoder) error {
	var err error
	r.Code, err = d.ReadInt32()
	return err
}

// PaymentResult carries the outcome of a payment operation. Every arm of
// the underlying union is void
type PaymentResult struct {
	Code int32
}

func (r PaymentResult) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt32(r.Code)
	return nil
}

func (r *PaymentResult) DecodeXDR(d *xdr.Decoder) error {
	var err error
	r.Code, err = d.ReadInt32()
	return err
}

// OperationResultTr is the per-operation-type inner result
type OperationResultTr struct {
	Type          int32
	CreateAccount *CreateAccountResult
	Payment       *PaymentResult
}

func (tr OperationResultTr) EncodeXDR(e *xdr.Encoder) error {
	switch tr.Type {
	case OperationTypeCreateAccount:
		if tr.CreateAccount == nil {
			return &xdr.DiscriminantError{Type: "OperationResultTr", Value: tr.Type}
		}
		e.WriteInt32(tr.Type)
		return tr.CreateAccount.EncodeXDR(e)
	case OperationTypePayment:
		if tr.Payment == nil {
			return &xdr.DiscriminantError{Type: "OperationResultTr", Value: tr.Type}
		}
		e.WriteInt32(tr.Type)
		return tr.Payment.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "OperationResultTr", Value: tr.Type}
	}
}

func (tr *OperationResultTr) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	tr.Type = t
	switch t {
	case OperationTypeCreateAccount:
		tr.CreateAccount = &CreateAccountResult{}
		return tr.CreateAccount.DecodeXDR(d)
	case OperationTypePayment:
		tr.Payment = &PaymentResult{}
		return tr.Payment.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "OperationResultTr", Value: t}
	}
}

// OperationResult is the outcome of one operation. Tr is present only when
// the operation was actually applied
type OperationResult struct {
	Code int32
	Tr   *OperationResultTr
}

func (r OperationResult) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt32(r.Code)
	if r.Code == OpInner {
		if r.Tr == nil {
			return &xdr.DiscriminantError{Type: "OperationResult", Value: r.Code}
		}
		return r.Tr.EncodeXDR(e)
	}
	return nil
}

func (r *OperationResult) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if r.Code, err = d.ReadInt32(); err != nil {
		return err
	}
	if r.Code == OpInner {
		r.Tr = &OperationResultTr{}
		return r.Tr.DecodeXDR(d)
	}
	return nil
}

// TransactionResult is the outcome of one transaction, with per-operation
// results when the transaction made it far enough to run them
type TransactionResult struct {
	FeeCharged int64
	Code       int32
	Results    []OperationResult
}

// Successful reports whether the transaction was applied
func (r *TransactionResult) Successful() bool {
	return r.Code == TxSuccess
}

func (r TransactionResult) EncodeXDR(e *xdr.Encoder) error {
	e.WriteInt64(r.FeeCharged)
	e.WriteInt32(r.Code)
	switch r.Code {
	case TxSuccess, TxFailed:
		if err := xdr.EncodeVarArray(e, r.Results, math.MaxUint32); err != nil {
			return err
		}
	}
	e.WriteInt32(0)
	return nil
}

func (r *TransactionResult) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if r.FeeCharged, err = d.ReadInt64(); err != nil {
		return err
	}
	if r.Code, err = d.ReadInt32(); err != nil {
		return err
	}
	switch r.Code {
	case TxSuccess, TxFailed:
		if r.Results, err = xdr.DecodeVarArray[OperationResult](d, math.MaxUint32); err != nil {
			return err
		}
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "TransactionResult.Ext", Value: v}
	}
	return nil
}
