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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs-io/gostellar/transaction"
	"github.com/lumenlabs-io/gostellar/xdr"
)

func TestPreconditionsNoneEncoding(t *testing.T) {
	cond := transaction.Preconditions{Type: transaction.PreconditionTypeNone}
	encoded, err := xdr.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, "00000000", hex.EncodeToString(encoded))
}

func TestTimeBoundsPreconditionsEncoding(t *testing.T) {
	cond := transaction.NewTimeBoundsPreconditions(100, 200)
	encoded, err := xdr.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(
		t,
		"00000001"+ // time bounds
			"0000000000000064"+ // min time
			"00000000000000c8", // max time
		hex.EncodeToString(encoded),
	)

	var decoded transaction.Preconditions
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, cond, decoded)
}

func TestPreconditionsV2RoundTrip(t *testing.T) {
	minSeqNum := xdr.SequenceNumber(42)
	cond := transaction.Preconditions{
		Type: transaction.PreconditionTypeV2,
		V2: &transaction.PreconditionsV2{
			TimeBounds:      &transaction.TimeBounds{MinTime: 1, MaxTime: 2},
			LedgerBounds:    &transaction.LedgerBounds{MinLedger: 10, MaxLedger: 20},
			MinSeqNum:       &minSeqNum,
			MinSeqAge:       3600,
			MinSeqLedgerGap: 5,
			ExtraSigners: []xdr.SignerKey{
				{Type: xdr.SignerKeyTypeEd25519, Ed25519: xdr.Uint256{0x01}},
				{Type: xdr.SignerKeyTypePreAuthTx, PreAuthTx: xdr.Uint256{0x02}},
			},
		},
	}
	encoded, err := xdr.Marshal(cond)
	require.NoError(t, err)
	var decoded transaction.Preconditions
	read, err := xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), read)
	assert.Equal(t, cond, decoded)
}

func TestPreconditionsV2AllAbsent(t *testing.T) {
	cond := transaction.Preconditions{
		Type: transaction.PreconditionTypeV2,
		V2: &transaction.PreconditionsV2{
			ExtraSigners: []xdr.SignerKey{},
		},
	}
	encoded, err := xdr.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(
		t,
		"00000002"+ // v2
			"00000000"+ // no time bounds
			"00000000"+ // no ledger bounds
			"00000000"+ // no minimum sequence number
			"0000000000000000"+ // min seq age
			"00000000"+ // min seq ledger gap
			"00000000", // no extra signers
		hex.EncodeToString(encoded),
	)

	var decoded transaction.Preconditions
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, cond, decoded)
	assert.Nil(t, decoded.V2.MinSeqNum)
}

func TestPreconditionsV2ExtraSignerBounds(t *testing.T) {
	signers := make([]xdr.SignerKey, transaction.MaxExtraSigners+1)
	for i := range signers {
		signers[i] = xdr.SignerKey{Type: xdr.SignerKeyTypeEd25519}
	}
	cond := transaction.Preconditions{
		Type: transaction.PreconditionTypeV2,
		V2:   &transaction.PreconditionsV2{ExtraSigners: signers},
	}
	_, err := xdr.Marshal(cond)
	var boundsErr *xdr.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Equal(t, uint32(transaction.MaxExtraSigners), boundsErr.Max)
}

func TestPreconditionsMissingBody(t *testing.T) {
	var discErr *xdr.DiscriminantError

	cond := transaction.Preconditions{Type: transaction.PreconditionTypeTime}
	_, err := xdr.Marshal(cond)
	require.ErrorAs(t, err, &discErr)

	cond = transaction.Preconditions{Type: transaction.PreconditionTypeV2}
	_, err = xdr.Marshal(cond)
	require.ErrorAs(t, err, &discErr)

	cond = transaction.Preconditions{Type: 3}
	_, err = xdr.Marshal(cond)
	require.ErrorAs(t, err, &discErr)
}
