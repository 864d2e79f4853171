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

package consensus_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs-io/gostellar/consensus"
	"github.com/lumenlabs-io/gostellar/xdr"
)

func repeatByte(b byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = b
	}
	return out
}

func TestScpBallotEncoding(t *testing.T) {
	ballot := consensus.ScpBallot{
		Counter: 3,
		Value:   consensus.Value("abc"),
	}
	encoded, err := xdr.Marshal(ballot)
	require.NoError(t, err)
	assert.Equal(t, "000000030000000361626300", hex.EncodeToString(encoded))

	var decoded consensus.ScpBallot
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, ballot, decoded)
}

func TestScpQuorumSetEncoding(t *testing.T) {
	qs := consensus.ScpQuorumSet{
		Threshold: 2,
		Validators: []xdr.NodeID{
			xdr.NewAccountID([32]byte{}),
			xdr.NewAccountID(repeatByte(0x01)),
		},
		InnerSets: []consensus.ScpQuorumSet{
			{
				Threshold:  1,
				Validators: []xdr.NodeID{xdr.NewAccountID(repeatByte(0x02))},
				InnerSets:  []consensus.ScpQuorumSet{},
			},
		},
	}
	encoded, err := xdr.Marshal(qs)
	require.NoError(t, err)

	expected := "00000002" + // threshold
		"00000002" + // two validators
		"00000000" + strings.Repeat("00", 32) +
		"00000000" + strings.Repeat("01", 32) +
		"00000001" + // one inner set
		"00000001" + // inner threshold
		"00000001" + // one inner validator
		"00000000" + strings.Repeat("02", 32) +
		"00000000" // no nested inner sets
	assert.Equal(t, expected, hex.EncodeToString(encoded))

	var decoded consensus.ScpQuorumSet
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, qs, decoded)
}

func TestScpQuorumSetIsSane(t *testing.T) {
	sane := consensus.ScpQuorumSet{
		Threshold:  2,
		Validators: []xdr.NodeID{xdr.NewAccountID(repeatByte(0x01))},
		InnerSets: []consensus.ScpQuorumSet{
			{
				Threshold:  1,
				Validators: []xdr.NodeID{xdr.NewAccountID(repeatByte(0x02))},
			},
		},
	}
	assert.True(t, sane.IsSane())

	zeroThreshold := consensus.ScpQuorumSet{
		Validators: []xdr.NodeID{xdr.NewAccountID(repeatByte(0x01))},
	}
	assert.False(t, zeroThreshold.IsSane())

	overThreshold := consensus.ScpQuorumSet{
		Threshold:  2,
		Validators: []xdr.NodeID{xdr.NewAccountID(repeatByte(0x01))},
	}
	assert.False(t, overThreshold.IsSane())

	badInner := sane
	badInner.InnerSets = []consensus.ScpQuorumSet{{Threshold: 1}}
	assert.False(t, badInner.IsSane())

	// Nesting past the depth limit
	deep := consensus.ScpQuorumSet{
		Threshold:  1,
		Validators: []xdr.NodeID{xdr.NewAccountID(repeatByte(0x03))},
	}
	for i := 0; i < consensus.MaxQuorumSetDepth; i++ {
		deep = consensus.ScpQuorumSet{
			Threshold: 1,
			InnerSets: []consensus.ScpQuorumSet{deep},
		}
	}
	assert.False(t, deep.IsSane())
}

func TestScpStatementRoundTrip(t *testing.T) {
	quorumHash := xdr.Hash{0x0a}
	ballot := consensus.ScpBallot{Counter: 1, Value: consensus.Value("v")}
	prepared := consensus.ScpBallot{Counter: 2, Value: consensus.Value("w")}

	statements := []consensus.ScpStatement{
		{
			NodeID:    xdr.NewAccountID(repeatByte(0x01)),
			SlotIndex: 100,
			Type:      consensus.ScpStatementTypePrepare,
			Prepare: &consensus.ScpStatementPrepare{
				QuorumSetHash: quorumHash,
				Ballot:        ballot,
				Prepared:      &prepared,
				NC:            1,
				NH:            2,
			},
		},
		{
			NodeID:    xdr.NewAccountID(repeatByte(0x01)),
			SlotIndex: 100,
			Type:      consensus.ScpStatementTypeConfirm,
			Confirm: &consensus.ScpStatementConfirm{
				Ballot:        ballot,
				NPrepared:     1,
				NCommit:       1,
				NH:            2,
				QuorumSetHash: quorumHash,
			},
		},
		{
			NodeID:    xdr.NewAccountID(repeatByte(0x01)),
			SlotIndex: 100,
			Type:      consensus.ScpStatementTypeExternalize,
			Externalize: &consensus.ScpStatementExternalize{
				Commit:              ballot,
				NH:                  2,
				CommitQuorumSetHash: quorumHash,
			},
		},
		{
			NodeID:    xdr.NewAccountID(repeatByte(0x01)),
			SlotIndex: 101,
			Type:      consensus.ScpStatementTypeNominate,
			Nominate: &consensus.ScpNomination{
				QuorumSetHash: quorumHash,
				Votes:         []consensus.Value{consensus.Value("x")},
				Accepted:      []consensus.Value{},
			},
		},
	}
	for _, statement := range statements {
		encoded, err := xdr.Marshal(statement)
		require.NoError(t, err)
		var decoded consensus.ScpStatement
		read, err := xdr.Unmarshal(encoded, &decoded)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), read)
		assert.Equal(t, statement, decoded)
	}
}

func TestScpStatementMissingPledge(t *testing.T) {
	statement := consensus.ScpStatement{
		Type: consensus.ScpStatementTypePrepare,
	}
	_, err := xdr.Marshal(statement)
	require.Error(t, err)

	statement.Type = 4
	_, err = xdr.Marshal(statement)
	var discErr *xdr.DiscriminantError
	require.ErrorAs(t, err, &discErr)
}

func TestScpEnvelopeRoundTrip(t *testing.T) {
	env := consensus.ScpEnvelope{
		Statement: consensus.ScpStatement{
			NodeID:    xdr.NewAccountID(repeatByte(0x03)),
			SlotIndex: 7,
			Type:      consensus.ScpStatementTypeExternalize,
			Externalize: &consensus.ScpStatementExternalize{
				Commit: consensus.ScpBallot{
					Counter: 1,
					Value:   consensus.Value("agreed"),
				},
				NH:                  1,
				CommitQuorumSetHash: xdr.Hash{0x0b},
			},
		},
		Signature: make(xdr.Signature, 64),
	}
	encoded, err := xdr.Marshal(env)
	require.NoError(t, err)
	var decoded consensus.ScpEnvelope
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, env, decoded)
}

func TestStellarValueRoundTrip(t *testing.T) {
	basic := consensus.StellarValue{
		TxSetHash: xdr.Hash{0x01},
		CloseTime: 1700000000,
		Upgrades:  []consensus.UpgradeType{{0x02, 0x03}},
	}
	encoded, err := xdr.Marshal(basic)
	require.NoError(t, err)
	var decoded consensus.StellarValue
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, basic, decoded)
	assert.Nil(t, decoded.Signature)

	signed := basic
	signed.Signature = &consensus.LedgerCloseValueSignature{
		NodeID:    xdr.NewAccountID(repeatByte(0x04)),
		Signature: make(xdr.Signature, 64),
	}
	encoded, err = xdr.Marshal(signed)
	require.NoError(t, err)
	decoded = consensus.StellarValue{}
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, signed, decoded)
}

func TestStellarValueUpgradeBounds(t *testing.T) {
	v := consensus.StellarValue{
		Upgrades: make([]consensus.UpgradeType, consensus.MaxUpgrades+1),
	}
	for i := range v.Upgrades {
		v.Upgrades[i] = consensus.UpgradeType{0x01}
	}
	_, err := xdr.Marshal(v)
	var boundsErr *xdr.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Equal(t, uint32(consensus.MaxUpgrades), boundsErr.Max)
}
