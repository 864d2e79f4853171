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

package ledger_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs-io/gostellar/ledger"
	"github.com/lumenlabs-io/gostellar/xdr"
)

const zeroAccountHex = "00000000" +
	"0000000000000000000000000000000000000000000000000000000000000000"

func testAccountEntry() ledger.AccountEntry {
	return ledger.AccountEntry{
		AccountID:  xdr.NewAccountID([32]byte{}),
		Balance:    1000,
		SeqNum:     5,
		HomeDomain: "example.com",
		Thresholds: xdr.Thresholds{0x01, 0x02, 0x03, 0x04},
		Signers:    []xdr.Signer{},
		V1: &ledger.AccountEntryExtensionV1{
			Liabilities: ledger.Liabilities{Buying: 1, Selling: 2},
			V2: &ledger.AccountEntryExtensionV2{
				SignerSponsoringIDs: []*xdr.AccountID{},
				V3: &ledger.AccountEntryExtensionV3{
					SeqLedger: 9,
					SeqTime:   99,
				},
			},
		},
	}
}

func TestAccountEntryEncoding(t *testing.T) {
	entry := testAccountEntry()
	encoded, err := xdr.Marshal(entry)
	require.NoError(t, err)

	expected := zeroAccountHex + // account id
		"00000000000003e8" + // balance
		"0000000000000005" + // sequence number
		"00000000" + // sub entries
		"00000000" + // no inflation destination
		"00000000" + // flags
		"0000000b6578616d706c652e636f6d00" + // home domain
		"01020304" + // thresholds
		"00000000" + // no signers
		"00000001" + // extension v1
		"0000000000000001" + // buying liabilities
		"0000000000000002" + // selling liabilities
		"00000002" + // extension v2
		"00000000" + // sponsored
		"00000000" + // sponsoring
		"00000000" + // no sponsoring ids
		"00000003" + // extension v3
		"00000000" + // extension point
		"00000009" + // seq ledger
		"0000000000000063" // seq time
	assert.Equal(t, expected, hex.EncodeToString(encoded))

	var decoded ledger.AccountEntry
	read, err := xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), read)
	assert.Equal(t, entry, decoded)
}

func TestAccountEntryWithoutExtensions(t *testing.T) {
	signer := xdr.Signer{
		Key:    xdr.SignerKey{Type: xdr.SignerKeyTypeEd25519, Ed25519: xdr.Uint256{0x01}},
		Weight: 10,
	}
	inflation := xdr.NewAccountID([32]byte{0x02})
	entry := ledger.AccountEntry{
		AccountID:     xdr.NewAccountID([32]byte{0x01}),
		Balance:       42,
		SeqNum:        1,
		NumSubEntries: 2,
		InflationDest: &inflation,
		Flags:         ledger.AccountFlagAuthRequired | ledger.AccountFlagClawback,
		Thresholds:    xdr.Thresholds{0x01, 0x00, 0x00, 0x00},
		Signers:       []xdr.Signer{signer},
	}
	encoded, err := xdr.Marshal(entry)
	require.NoError(t, err)
	var decoded ledger.AccountEntry
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
	assert.Nil(t, decoded.V1)
}

func TestAccountEntryTooManySigners(t *testing.T) {
	entry := testAccountEntry()
	entry.Signers = make([]xdr.Signer, ledger.MaxSigners+1)
	for i := range entry.Signers {
		entry.Signers[i] = xdr.Signer{
			Key: xdr.SignerKey{Type: xdr.SignerKeyTypeEd25519},
		}
	}
	_, err := xdr.Marshal(entry)
	var boundsErr *xdr.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Equal(t, uint32(ledger.MaxSigners), boundsErr.Max)
}

func TestAccountEntryHelpers(t *testing.T) {
	entry := testAccountEntry()
	assert.Equal(t, byte(0x01), entry.MasterKeyWeight())
	assert.Nil(t, entry.SignerSponsoringID(0))

	sponsor := xdr.NewAccountID([32]byte{0x03})
	entry.V1.V2.SignerSponsoringIDs = []*xdr.AccountID{nil, &sponsor}
	assert.Nil(t, entry.SignerSponsoringID(0))
	require.NotNil(t, entry.SignerSponsoringID(1))
	assert.True(t, sponsor.Equals(*entry.SignerSponsoringID(1)))
	assert.Nil(t, entry.SignerSponsoringID(2))
	assert.Nil(t, entry.SignerSponsoringID(-1))
}

func TestTrustLineEntryRoundTrip(t *testing.T) {
	usd, err := xdr.NewCreditAsset("USD", xdr.NewAccountID([32]byte{0x01}))
	require.NoError(t, err)

	entry := ledger.TrustLineEntry{
		AccountID: xdr.NewAccountID([32]byte{0x02}),
		Asset: ledger.TrustLineAsset{
			Type:      xdr.AssetTypeCreditAlphanum4,
			AlphaNum4: usd.AlphaNum4,
		},
		Balance: 500,
		Limit:   10000,
		Flags:   ledger.TrustLineFlagAuthorized,
		V1: &ledger.TrustLineEntryExtensionV1{
			Liabilities: ledger.Liabilities{Buying: 5, Selling: 7},
			V2: &ledger.TrustLineEntryExtensionV2{
				LiquidityPoolUseCount: 1,
			},
		},
	}
	encoded, err := xdr.Marshal(entry)
	require.NoError(t, err)
	var decoded ledger.TrustLineEntry
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
	assert.True(t, decoded.IsAuthorized())
}

func TestTrustLinePoolShareAsset(t *testing.T) {
	poolID := xdr.PoolID{0x0a}
	asset := ledger.TrustLineAsset{
		Type:            xdr.AssetTypePoolShare,
		LiquidityPoolID: &poolID,
	}
	encoded, err := xdr.Marshal(asset)
	require.NoError(t, err)
	var decoded ledger.TrustLineAsset
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, asset, decoded)
}

func TestOfferEntryRoundTrip(t *testing.T) {
	usd, err := xdr.NewCreditAsset("USD", xdr.NewAccountID([32]byte{0x01}))
	require.NoError(t, err)

	entry := ledger.OfferEntry{
		SellerID: xdr.NewAccountID([32]byte{0x02}),
		OfferID:  7,
		Selling:  xdr.NewNativeAsset(),
		Buying:   usd,
		Amount:   1000000,
		Price:    xdr.Price{N: 3, D: 2},
		Flags:    ledger.OfferFlagPassive,
	}
	encoded, err := xdr.Marshal(entry)
	require.NoError(t, err)
	var decoded ledger.OfferEntry
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestDataEntryRoundTrip(t *testing.T) {
	entry := ledger.DataEntry{
		AccountID: xdr.NewAccountID([32]byte{0x01}),
		DataName:  "config",
		DataValue: xdr.DataValue{0xde, 0xad},
	}
	encoded, err := xdr.Marshal(entry)
	require.NoError(t, err)
	var decoded ledger.DataEntry
	_, err = xdr.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}
