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

package transaction_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs-io/gostellar/keypair"
	"github.com/lumenlabs-io/gostellar/ledger"
	"github.com/lumenlabs-io/gostellar/transaction"
	"github.com/lumenlabs-io/gostellar/xdr"
)

const testnetPassphrase = "Test SDF Network ; September 2015"

// testTransaction is a single payment of 1 XLM from the zero source account,
// with minimum fee and no preconditions
func testTransaction() transaction.Transaction {
	return transaction.Transaction{
		SourceAccount: xdr.NewMuxedAccount(xdr.Uint256{}),
		Fee:           transaction.MinBaseFee,
		SeqNum:        1,
		Cond:          transaction.Preconditions{Type: transaction.PreconditionTypeNone},
		Memo:          transaction.MemoNone(),
		Operations: []transaction.Operation{
			{
				Body: transaction.OperationBody{
					Type: transaction.OperationTypePayment,
					Payment: &transaction.PaymentOp{
						Destination: xdr.NewMuxedAccount(repeatUint256(0x01)),
						Asset:       xdr.NewNativeAsset(),
						Amount:      10000000,
					},
				},
			},
		},
	}
}

func repeatUint256(b byte) xdr.Uint256 {
	var out xdr.Uint256
	for i := range out {
		out[i] = b
	}
	return out
}

func TestTransactionEncoding(t *testing.T) {
	tx := testTransaction()
	encoded, err := xdr.Marshal(tx)
	require.NoError(t, err)

	expected := "00000000" + strings.Repeat("00", 32) + // source account
		"00000064" + // fee
		"0000000000000001" + // sequence number
		"00000000" + // no preconditions
		"00000000" + // no memo
		"00000001" + // one operation
		"00000000" + // no operation source account
		"00000001" + // payment
		"00000000" + strings.Repeat("01", 32) + // destination
		"00000000" + // native asset
		"0000000000989680" + // amount
		"00000000" // extension
	assert.Equal(t, expected, hex.EncodeToString(encoded))

	var decoded transaction.Transaction
	read, err := xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), read)
	assert.Equal(t, tx, decoded)
}

func TestTransactionWithSorobanData(t *testing.T) {
	tx := testTransaction()
	tx.SorobanData = &transaction.SorobanTransactionData{
		Resources: transaction.SorobanResources{
			Footprint: transaction.LedgerFootprint{
				ReadOnly:  []ledger.LedgerKey{},
				ReadWrite: []ledger.LedgerKey{},
			},
			Instructions: 1000000,
			ReadBytes:    2048,
			WriteBytes:   1024,
		},
		ResourceFee: 50000,
	}
	encoded, err := xdr.Marshal(tx)
	require.NoError(t, err)
	var decoded transaction.Transaction
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)
}

func TestNetworkID(t *testing.T) {
	id := transaction.NetworkID(testnetPassphrase)
	assert.Equal(
		t,
		"cee0302d59844d32bdca915c8203dd44b33fbb7edc19051ea37abedf28ecd472",
		hex.EncodeToString(id[:]),
	)
}

func TestEnvelopeHash(t *testing.T) {
	env := transaction.NewEnvelope(testTransaction())
	h, err := env.Hash(testnetPassphrase)
	require.NoError(t, err)
	assert.Equal(
		t,
		"872e9908c501039591c1f4d49aca56db1d9b2887b8d2e7869c2f397b9d9d93d2",
		hex.EncodeToString(h[:]),
	)

	// The hash depends on the network
	other, err := env.Hash("Standalone Network ; February 2017")
	require.NoError(t, err)
	assert.NotEqual(t, h, other)
}

func TestEnvelopeSign(t *testing.T) {
	kp := keypair.FromRawSeed([32]byte{})
	env := transaction.NewEnvelope(testTransaction())
	require.NoError(t, env.Sign(testnetPassphrase, kp))
	require.Len(t, env.V1.Signatures, 1)

	sig := env.V1.Signatures[0]
	assert.Equal(t, kp.Hint(), sig.Hint)

	h, err := env.Hash(testnetPassphrase)
	require.NoError(t, err)
	assert.NoError(t, kp.Verify(h[:], sig.Signature))

	// A signature made for one network fails on another
	otherHash, err := env.Hash("Standalone Network ; February 2017")
	require.NoError(t, err)
	assert.Error(t, kp.Verify(otherHash[:], sig.Signature))
}

func TestEnvelopeSignatureLimit(t *testing.T) {
	kp := keypair.FromRawSeed([32]byte{})
	env := transaction.NewEnvelope(testTransaction())
	env.V1.Signatures = make([]xdr.DecoratedSignature, transaction.MaxSignatures)
	err := env.Sign(testnetPassphrase, kp)
	var boundsErr *xdr.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Equal(t, uint32(transaction.MaxSignatures), boundsErr.Max)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	v0 := transaction.TransactionEnvelope{
		Type: transaction.EnvelopeTypeTxV0,
		V0: &transaction.TransactionV0Envelope{
			Tx: transaction.TransactionV0{
				SourceAccountEd25519: xdr.Uint256{},
				Fee:                  transaction.MinBaseFee,
				SeqNum:               1,
				TimeBounds:           &transaction.TimeBounds{MinTime: 0, MaxTime: 100},
				Memo:                 transaction.MemoNone(),
				Operations:           testTransaction().Operations,
			},
			Signatures: []xdr.DecoratedSignature{},
		},
	}
	v1 := transaction.NewEnvelope(testTransaction())
	v1.V1.Signatures = []xdr.DecoratedSignature{}
	feeBump := transaction.TransactionEnvelope{
		Type: transaction.EnvelopeTypeTxFeeBump,
		FeeBump: &transaction.FeeBumpTransactionEnvelope{
			Tx: transaction.FeeBumpTransaction{
				FeeSource: xdr.NewMuxedAccount(repeatUint256(0x02)),
				Fee:       1000,
				InnerTx: transaction.TransactionV1Envelope{
					Tx:         testTransaction(),
					Signatures: []xdr.DecoratedSignature{},
				},
			},
			Signatures: []xdr.DecoratedSignature{},
		},
	}

	for _, env := range []transaction.TransactionEnvelope{v0, v1, feeBump} {
		encoded, err := xdr.Marshal(env)
		require.NoError(t, err)
		var decoded transaction.TransactionEnvelope
		read, err := xdr.Unmarshal(encoded, &decoded)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), read)
		assert.Equal(t, env, decoded)
	}
}

func TestEnvelopeHelpers(t *testing.T) {
	feeSource := xdr.NewMuxedAccount(repeatUint256(0x02))
	env := transaction.TransactionEnvelope{
		Type: transaction.EnvelopeTypeTxFeeBump,
		FeeBump: &transaction.FeeBumpTransactionEnvelope{
			Tx: transaction.FeeBumpTransaction{
				FeeSource: feeSource,
				Fee:       1000,
				InnerTx: transaction.TransactionV1Envelope{
					Tx: testTransaction(),
				},
			},
		},
	}

	source, err := env.SourceAccount()
	require.NoError(t, err)
	assert.Equal(t, feeSource, source)

	seqNum, err := env.SeqNum()
	require.NoError(t, err)
	assert.Equal(t, xdr.SequenceNumber(1), seqNum)

	bad := transaction.TransactionEnvelope{Type: 9}
	_, err = bad.SourceAccount()
	require.Error(t, err)
	_, err = bad.SeqNum()
	require.Error(t, err)
}

func TestV0SignatureBaseMatchesV1(t *testing.T) {
	ops := testTransaction().Operations
	v0 := transaction.TransactionEnvelope{
		Type: transaction.EnvelopeTypeTxV0,
		V0: &transaction.TransactionV0Envelope{
			Tx: transaction.TransactionV0{
				SourceAccountEd25519: xdr.Uint256{},
				Fee:                  transaction.MinBaseFee,
				SeqNum:               1,
				TimeBounds:           &transaction.TimeBounds{MinTime: 10, MaxTime: 20},
				Memo:                 transaction.MemoNone(),
				Operations:           ops,
			},
		},
	}
	tx := testTransaction()
	tx.Cond = transaction.NewTimeBoundsPreconditions(10, 20)
	v1 := transaction.NewEnvelope(tx)

	v0Base, err := v0.SignatureBase(testnetPassphrase)
	require.NoError(t, err)
	v1Base, err := v1.SignatureBase(testnetPassphrase)
	require.NoError(t, err)
	assert.Equal(t, v1Base, v0Base)
}

func TestEnvelopeClone(t *testing.T) {
	kp := keypair.FromRawSeed([32]byte{})
	env := transaction.NewEnvelope(testTransaction())

	clone, err := env.Clone()
	require.NoError(t, err)
	require.NoError(t, clone.Sign(testnetPassphrase, kp))

	assert.Len(t, clone.V1.Signatures, 1)
	assert.Empty(t, env.V1.Signatures)

	clone.V1.Tx.Operations[0].Body.Payment.Amount = 1
	assert.Equal(t, int64(10000000), env.V1.Tx.Operations[0].Body.Payment.Amount)
}

func TestFeeBumpRejectsNonV1Inner(t *testing.T) {
	// fee source, fee, then an inner envelope type that is not a v1
	// transaction
	data := "00000000" + strings.Repeat("00", 32) +
		"00000000000003e8" +
		"00000000"
	raw, err := hex.DecodeString(data)
	require.NoError(t, err)

	var decoded transaction.FeeBumpTransaction
	_, err = xdr.Unmarshal(raw, &decoded)
	var discErr *xdr.DiscriminantError
	require.ErrorAs(t, err, &discErr)
}

func TestTransactionResultRoundTrip(t *testing.T) {
	success := transaction.TransactionResult{
		FeeCharged: 100,
		Code:       transaction.TxSuccess,
		Results: []transaction.OperationResult{
			{
				Code: transaction.OpInner,
				Tr: &transaction.OperationResultTr{
					Type:    transaction.OperationTypePayment,
					Payment: &transaction.PaymentResult{Code: 0},
				},
			},
		},
	}
	encoded, err := xdr.Marshal(success)
	require.NoError(t, err)
	var decoded transaction.TransactionResult
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, success, decoded)
	assert.True(t, decoded.Successful())
}

func TestTransactionResultBadSeq(t *testing.T) {
	result := transaction.TransactionResult{
		FeeCharged: 0,
		Code:       transaction.TxBadSeq,
	}
	encoded, err := xdr.Marshal(result)
	require.NoError(t, err)
	// fee, code, extension; no per-operation results
	assert.Equal(
		t,
		"0000000000000000"+"fffffffb"+"00000000",
		hex.EncodeToString(encoded),
	)

	var decoded transaction.TransactionResult
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, result, decoded)
	assert.False(t, decoded.Successful())
}

func TestOperationResultNotApplied(t *testing.T) {
	result := transaction.OperationResult{Code: transaction.OpNoAccount}
	encoded, err := xdr.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t, "fffffffe", hex.EncodeToString(encoded))

	var decoded transaction.OperationResult
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Nil(t, decoded.Tr)
}
