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

// Package transaction provides transactions, their operations, envelopes,
// signing, and results. A transaction is built up from typed operations,
// wrapped in an envelope, signed against a network passphrase, and submitted
// in wire form
package transaction

import (
	"fmt"
	"math"

	"github.com/lumenlabs-io/gostellar/ledger"
	"github.com/lumenlabs-io/gostellar/xdr"
)

const (
	// MaxOperations is the maximum number of operations in one transaction
	MaxOperations = 100

	// MaxSignatures is the maximum number of signatures on one envelope
	MaxSignatures = 20

	// MinBaseFee is the network minimum fee per operation, in stroops
	MinBaseFee = 100
)

// LedgerFootprint lists the ledger entries a contract invocation may read
// and write
type LedgerFootprint struct {
	ReadOnly  []ledger.LedgerKey
	ReadWrite []ledger.LedgerKey
}

func (f LedgerFootprint) EncodeXDR(e *xdr.Encoder) error {
	if err := xdr.EncodeVarArray(e, f.ReadOnly, math.MaxUint32); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, f.ReadWrite, math.MaxUint32)
}

func (f *LedgerFootprint) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if f.ReadOnly, err = xdr.DecodeVarArray[ledger.LedgerKey](d, math.MaxUint32); err != nil {
		return err
	}
	f.ReadWrite, err = xdr.DecodeVarArray[ledger.LedgerKey](d, math.MaxUint32)
	return err
}

// SorobanResources declares the resources a contract invocation may consume
type SorobanResources struct {
	Footprint    LedgerFootprint
	Instructions uint32
	ReadBytes    uint32
	WriteBytes   uint32
}

func (r SorobanResources) EncodeXDR(e *xdr.Encoder) error {
	if err := r.Footprint.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(r.Instructions)
	e.WriteUint32(r.ReadBytes)
	e.WriteUint32(r.WriteBytes)
	return nil
}

func (r *SorobanResources) DecodeXDR(d *xdr.Decoder) error {
	if err := r.Footprint.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if r.Instructions, err = d.ReadUint32(); err != nil {
		return err
	}
	if r.ReadBytes, err = d.ReadUint32(); err != nil {
		return err
	}
	r.WriteBytes, err = d.ReadUint32()
	return err
}

// SorobanTransactionData carries resource declarations and the fee paying
// for them
type SorobanTransactionData struct {
	Ext         xdr.ExtensionPoint
	Resources   SorobanResources
	ResourceFee int64
}

func (s SorobanTransactionData) EncodeXDR(e *xdr.Encoder) error {
	if err := s.Ext.EncodeXDR(e); err != nil {
		return err
	}
	if err := s.Resources.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(s.ResourceFee)
	return nil
}

func (s *SorobanTransactionData) DecodeXDR(d *xdr.Decoder) error {
	if err := s.Ext.DecodeXDR(d); err != nil {
		return err
	}
	if err := s.Resources.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	s.ResourceFee, err = d.ReadInt64()
	return err
}

// Transaction is the current-generation transaction form
type Transaction struct {
	SourceAccount xdr.MuxedAccount
	Fee           uint32
	SeqNum        xdr.SequenceNumber
	Cond          Preconditions
	Memo          Memo
	Operations    []Operation
	SorobanData   *SorobanTransactionData
}

func (t Transaction) EncodeXDR(e *xdr.Encoder) error {
	if err := t.SourceAccount.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(t.Fee)
	e.WriteInt64(int64(t.SeqNum))
	if err := t.Cond.EncodeXDR(e); err != nil {
		return err
	}
	if err := t.Memo.EncodeXDR(e); err != nil {
		return err
	}
	if err := xdr.EncodeVarArray(e, t.Operations, MaxOperations); err != nil {
		return err
	}
	if t.SorobanData != nil {
		e.WriteInt32(1)
		return t.SorobanData.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (t *Transaction) DecodeXDR(d *xdr.Decoder) error {
	if err := t.SourceAccount.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if t.Fee, err = d.ReadUint32(); err != nil {
		return err
	}
	seqNum, err := d.ReadInt64()
	if err != nil {
		return err
	}
	t.SeqNum = xdr.SequenceNumber(seqNum)
	if err := t.Cond.DecodeXDR(d); err != nil {
		return err
	}
	if err := t.Memo.DecodeXDR(d); err != nil {
		return err
	}
	if t.Operations, err = xdr.DecodeVarArray[Operation](d, MaxOperations); err != nil {
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
		t.SorobanData = &SorobanTransactionData{}
		return t.SorobanData.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "Transaction.Ext", Value: v}
	}
}

// TransactionV0 is the legacy transaction form, identifying the source
// account by raw key bytes
type TransactionV0 struct {
	SourceAccountEd25519 xdr.Uint256
	Fee                  uint32
	SeqNum               xdr.SequenceNumber
	TimeBounds           *TimeBounds
	Memo                 Memo
	Operations           []Operation
}

func (t TransactionV0) EncodeXDR(e *xdr.Encoder) error {
	if err := t.SourceAccountEd25519.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(t.Fee)
	e.WriteInt64(int64(t.SeqNum))
	if err := xdr.EncodeOptional(e, t.TimeBounds); err != nil {
		return err
	}
	if err := t.Memo.EncodeXDR(e); err != nil {
		return err
	}
	if err := xdr.EncodeVarArray(e, t.Operations, MaxOperations); err != nil {
		return err
	}
	e.WriteInt32(0)
	return nil
}

func (t *TransactionV0) DecodeXDR(d *xdr.Decoder) error {
	if err := t.SourceAccountEd25519.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if t.Fee, err = d.ReadUint32(); err != nil {
		return err
	}
	seqNum, err := d.ReadInt64()
	if err != nil {
		return err
	}
	t.SeqNum = xdr.SequenceNumber(seqNum)
	if t.TimeBounds, err = xdr.DecodeOptional[TimeBounds](d); err != nil {
		return err
	}
	if err := t.Memo.DecodeXDR(d); err != nil {
		return err
	}
	if t.Operations, err = xdr.DecodeVarArray[Operation](d, MaxOperations); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "TransactionV0.Ext", Value: v}
	}
	return nil
}

// SourceAccount returns the muxed form of the legacy source account
func (t *TransactionV0) SourceAccount() xdr.MuxedAccount {
	return xdr.NewMuxedAccount(t.SourceAccountEd25519)
}

// FeeBumpTransaction wraps a signed v1 transaction with a higher fee paid by
// another account
type FeeBumpTransaction struct {
	FeeSource xdr.MuxedAccount
	Fee       int64
	InnerTx   TransactionV1Envelope
}

func (t FeeBumpTransaction) EncodeXDR(e *xdr.Encoder) error {
	if err := t.FeeSource.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(t.Fee)
	e.WriteInt32(EnvelopeTypeTx)
	if err := t.InnerTx.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt32(0)
	return nil
}

func (t *FeeBumpTransaction) DecodeXDR(d *xdr.Decoder) error {
	if err := t.FeeSource.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if t.Fee, err = d.ReadInt64(); err != nil {
		return err
	}
	innerType, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if innerType != EnvelopeTypeTx {
		return &xdr.DiscriminantError{
			Type:  "FeeBumpTransaction.InnerTx",
			Value: innerType,
		}
	}
	if err := t.InnerTx.DecodeXDR(d); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "FeeBumpTransaction.Ext", Value: v}
	}
	return nil
}

// EnvelopeType values
const (
	EnvelopeTypeTxV0      int32 = 0
	EnvelopeTypeScp       int32 = 1
	EnvelopeTypeTx        int32 = 2
	EnvelopeTypeAuth      int32 = 3
	EnvelopeTypeScpValue  int32 = 4
	EnvelopeTypeTxFeeBump int32 = 5
)

// TransactionV0Envelope pairs a legacy transaction with its signatures
type TransactionV0Envelope struct {
	Tx         TransactionV0
	Signatures []xdr.DecoratedSignature
}

func (env TransactionV0Envelope) EncodeXDR(e *xdr.Encoder) error {
	if err := env.Tx.EncodeXDR(e); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, env.Signatures, MaxSignatures)
}

func (env *TransactionV0Envelope) DecodeXDR(d *xdr.Decoder) error {
	if err := env.Tx.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	env.Signatures, err = xdr.DecodeVarArray[xdr.DecoratedSignature](d, MaxSignatures)
	return err
}

// TransactionV1Envelope pairs a transaction with its signatures
type TransactionV1Envelope struct {
	Tx         Transaction
	Signatures []xdr.DecoratedSignature
}

func (env TransactionV1Envelope) EncodeXDR(e *xdr.Encoder) error {
	if err := env.Tx.EncodeXDR(e); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, env.Signatures, MaxSignatures)
}

func (env *TransactionV1Envelope) DecodeXDR(d *xdr.Decoder) error {
	if err := env.Tx.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	env.Signatures, err = xdr.DecodeVarArray[xdr.DecoratedSignature](d, MaxSignatures)
	return err
}

// FeeBumpTransactionEnvelope pairs a fee bump transaction with the fee
// source's signatures
type FeeBumpTransactionEnvelope struct {
	Tx         FeeBumpTransaction
	Signatures []xdr.DecoratedSignature
}

func (env FeeBumpTransactionEnvelope) EncodeXDR(e *xdr.Encoder) error {
	if err := env.Tx.EncodeXDR(e); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, env.Signatures, MaxSignatures)
}

func (env *FeeBumpTransactionEnvelope) DecodeXDR(d *xdr.Decoder) error {
	if err := env.Tx.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	env.Signatures, err = xdr.DecodeVarArray[xdr.DecoratedSignature](d, MaxSignatures)
	return err
}

// TransactionEnvelope is any of the three envelope generations. Exactly one
// arm is set, matching Type
type TransactionEnvelope struct {
	Type    int32
	V0      *TransactionV0Envelope
	V1      *TransactionV1Envelope
	FeeBump *FeeBumpTransactionEnvelope
}

// NewEnvelope wraps an unsigned transaction in a v1 envelope
func NewEnvelope(tx Transaction) TransactionEnvelope {
	return TransactionEnvelope{
		Type: EnvelopeTypeTx,
		V1:   &TransactionV1Envelope{Tx: tx},
	}
}

func (env TransactionEnvelope) EncodeXDR(e *xdr.Encoder) error {
	switch env.Type {
	case EnvelopeTypeTxV0:
		if env.V0 == nil {
			return fmt.Errorf("v0 envelope has no transaction")
		}
		e.WriteInt32(env.Type)
		return env.V0.EncodeXDR(e)
	case EnvelopeTypeTx:
		if env.V1 == nil {
			return fmt.Errorf("v1 envelope has no transaction")
		}
		e.WriteInt32(env.Type)
		return env.V1.EncodeXDR(e)
	case EnvelopeTypeTxFeeBump:
		if env.FeeBump == nil {
			return fmt.Errorf("fee bump envelope has no transaction")
		}
		e.WriteInt32(env.Type)
		return env.FeeBump.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "TransactionEnvelope", Value: env.Type}
	}
}

func (env *TransactionEnvelope) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	env.Type = t
	switch t {
	case EnvelopeTypeTxV0:
		env.V0 = &TransactionV0Envelope{}
		return env.V0.DecodeXDR(d)
	case EnvelopeTypeTx:
		env.V1 = &TransactionV1Envelope{}
		return env.V1.DecodeXDR(d)
	case EnvelopeTypeTxFeeBump:
		env.FeeBump = &FeeBumpTransactionEnvelope{}
		return env.FeeBump.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "TransactionEnvelope", Value: t}
	}
}

// SourceAccount returns the source (or fee source) account of whichever
// transaction generation the envelope carries
func (env *TransactionEnvelope) SourceAccount() (xdr.MuxedAccount, error) {
	switch env.Type {
	case EnvelopeTypeTxV0:
		return env.V0.Tx.SourceAccount(), nil
	case EnvelopeTypeTx:
		return env.V1.Tx.SourceAccount, nil
	case EnvelopeTypeTxFeeBump:
		return env.FeeBump.Tx.FeeSource, nil
	default:
		return xdr.MuxedAccount{}, &xdr.DiscriminantError{
			Type:  "TransactionEnvelope",
			Value: env.Type,
		}
	}
}

// SeqNum returns the sequence number of the envelope's transaction. For fee
// bumps this is the inner transaction's sequence number
func (env *TransactionEnvelope) SeqNum() (xdr.SequenceNumber, error) {
	switch env.Type {
	case EnvelopeTypeTxV0:
		return env.V0.Tx.SeqNum, nil
	case EnvelopeTypeTx:
		return env.V1.Tx.SeqNum, nil
	case EnvelopeTypeTxFeeBump:
		return env.FeeBump.Tx.InnerTx.Tx.SeqNum, nil
	default:
		return 0, &xdr.DiscriminantError{
			Type:  "TransactionEnvelope",
			Value: env.Type,
		}
	}
}
