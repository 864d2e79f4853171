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

package strkey_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs-io/gostellar/strkey"
)

var zero32 = make([]byte, 32)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		version  strkey.VersionByte
		payload  []byte
		expected string
	}{
		{
			name:     "account",
			version:  strkey.VersionByteAccountID,
			payload:  zero32,
			expected: "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF",
		},
		{
			name:     "seed",
			version:  strkey.VersionByteSeed,
			payload:  zero32,
			expected: "SAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSU2",
		},
		{
			name:     "contract",
			version:  strkey.VersionByteContract,
			payload:  zero32,
			expected: "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4",
		},
		{
			name:     "liquidity pool",
			version:  strkey.VersionByteLiquidityPool,
			payload:  zero32,
			expected: "LAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABLIR",
		},
		{
			name:     "pre-auth tx",
			version:  strkey.VersionBytePreAuthTx,
			payload:  zero32,
			expected: "TAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABLVU",
		},
		{
			name:     "hash-x",
			version:  strkey.VersionByteHashX,
			payload:  zero32,
			expected: "XAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAPQN",
		},
		{
			name:     "muxed account id 0",
			version:  strkey.VersionByteMuxedAccount,
			payload:  make([]byte, 40),
			expected: "MAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAB5IG",
		},
		{
			name:    "muxed account id 1",
			version: strkey.VersionByteMuxedAccount,
			payload: append(
				append([]byte{}, zero32...),
				0, 0, 0, 0, 0, 0, 0, 1,
			),
			expected: "MAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAFNZG",
		},
		{
			name:     "claimable balance bare hash",
			version:  strkey.VersionByteClaimableBalance,
			payload:  zero32,
			expected: "BAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAFMUE",
		},
		{
			name:     "claimable balance with sub-version",
			version:  strkey.VersionByteClaimableBalance,
			payload:  make([]byte, 33),
			expected: "BAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAFMUE",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := strkey.Encode(test.version, test.payload)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestEncodeRealSeed(t *testing.T) {
	payload, err := hex.DecodeString(
		"d278c0bc3098842800043c83e39abff6581567a51607c94a1f0651b3f4bdac28",
	)
	require.NoError(t, err)
	got, err := strkey.Encode(strkey.VersionByteSeed, payload)
	require.NoError(t, err)
	assert.Equal(
		t,
		"SDJHRQF4GCMIIKAAAQ6IHY42X73FQFLHUULAPSKKD4DFDM7UXWWCRHBE",
		got,
	)
}

func TestEncodeRejectsBadLengths(t *testing.T) {
	_, err := strkey.Encode(strkey.VersionByteAccountID, make([]byte, 31))
	require.ErrorIs(t, err, strkey.ErrInvalidLength)

	_, err = strkey.Encode(strkey.VersionByteClaimableBalance, make([]byte, 34))
	require.ErrorIs(t, err, strkey.ErrInvalidLength)
}

func TestEncodeRejectsUnknownClaimableSubVersion(t *testing.T) {
	payload := make([]byte, 33)
	payload[0] = 0x01
	_, err := strkey.Encode(strkey.VersionByteClaimableBalance, payload)
	require.ErrorIs(t, err, strkey.ErrInvalidPayload)
}

func TestDecode(t *testing.T) {
	got, err := strkey.Decode(
		strkey.VersionByteAccountID,
		"GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF",
	)
	require.NoError(t, err)
	assert.Equal(t, zero32, got)

	// Claimable balance ids decode to the canonical 33-byte form
	got, err = strkey.Decode(
		strkey.VersionByteClaimableBalance,
		"BAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAFMUE",
	)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 33), got)
}

func TestDecodeErrors(t *testing.T) {
	account := "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"

	tests := []struct {
		name     string
		version  strkey.VersionByte
		input    string
		expected error
	}{
		{
			name:     "padding character",
			version:  strkey.VersionByteAccountID,
			input:    account + "====",
			expected: strkey.ErrInvalidEncoding,
		},
		{
			name:     "lowercase input",
			version:  strkey.VersionByteAccountID,
			input:    "gaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaawhf",
			expected: strkey.ErrInvalidEncoding,
		},
		{
			name:     "too short",
			version:  strkey.VersionByteAccountID,
			input:    "GA",
			expected: strkey.ErrInvalidLength,
		},
		{
			name:     "wrong length for kind",
			version:  strkey.VersionByteAccountID,
			input:    "MAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAB5IG",
			expected: strkey.ErrInvalidLength,
		},
		{
			name:     "wrong kind",
			version:  strkey.VersionByteSeed,
			input:    account,
			expected: strkey.ErrInvalidVersionByte,
		},
		{
			name:     "corrupted checksum",
			version:  strkey.VersionByteAccountID,
			input:    account[:len(account)-2] + "AA",
			expected: strkey.ErrChecksumMismatch,
		},
		{
			name:    "flipped body character",
			version: strkey.VersionByteAccountID,
			input: account[:10] + string(
				func() byte {
					if account[10] == 'B' {
						return 'C'
					}
					return 'B'
				}(),
			) + account[11:],
			expected: strkey.ErrChecksumMismatch,
		},
		{
			// 58 characters leave 2 unused trailing bits; bumping the final
			// character from 'E' to 'F' decodes to the same bytes but sets
			// the lowest trailing bit
			name:     "non-zero trailing bits",
			version:  strkey.VersionByteClaimableBalance,
			input:    "BAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAFMUF",
			expected: strkey.ErrNonZeroTrailingBits,
		},
		{
			// Muxed strings leave 1 unused trailing bit
			name:     "non-zero trailing bit in muxed id",
			version:  strkey.VersionByteMuxedAccount,
			input:    "MAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAB5IH",
			expected: strkey.ErrNonZeroTrailingBits,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := strkey.Decode(test.version, test.input)
			require.ErrorIs(t, err, test.expected)
		})
	}
}

func TestSignedPayload(t *testing.T) {
	encoded, err := strkey.EncodeSignedPayload(zero32, []byte{0x01, 0x02, 0x03})
	require.NoError(t, err)
	assert.Equal(
		t,
		"PAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABQCAQDADQYQ",
		encoded,
	)

	decoded, err := strkey.Decode(strkey.VersionByteSignedPayload, encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 44)
	assert.Equal(t, zero32, decoded[:32])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x03}, decoded[32:36])
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x00}, decoded[36:])
}

func TestSignedPayloadBounds(t *testing.T) {
	_, err := strkey.EncodeSignedPayload(zero32, nil)
	require.ErrorIs(t, err, strkey.ErrInvalidPayload)

	_, err = strkey.EncodeSignedPayload(zero32, make([]byte, 65))
	require.ErrorIs(t, err, strkey.ErrInvalidPayload)

	_, err = strkey.EncodeSignedPayload(make([]byte, 31), []byte{0x01})
	require.ErrorIs(t, err, strkey.ErrInvalidPayload)

	// The longest allowed payload still round-trips
	long := bytes.Repeat([]byte{0xab}, 64)
	encoded, err := strkey.EncodeSignedPayload(zero32, long)
	require.NoError(t, err)
	decoded, err := strkey.Decode(strkey.VersionByteSignedPayload, encoded)
	require.NoError(t, err)
	assert.Equal(t, long, decoded[36:])
}

func TestVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected strkey.VersionByte
	}{
		{
			"GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF",
			strkey.VersionByteAccountID,
		},
		{
			"SAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSU2",
			strkey.VersionByteSeed,
		},
		{
			"CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4",
			strkey.VersionByteContract,
		},
		{
			"MAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAB5IG",
			strkey.VersionByteMuxedAccount,
		},
	}
	for _, test := range tests {
		got, err := strkey.Version(test.input)
		require.NoError(t, err)
		assert.Equal(t, test.expected, got)
	}

	_, err := strkey.Version("not strkey")
	require.Error(t, err)
}

func TestIsValidHelpers(t *testing.T) {
	account := "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"
	seed := "SAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSU2"
	contract := "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4"
	muxed := "MAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAB5IG"

	assert.True(t, strkey.IsValidEd25519PublicKey(account))
	assert.False(t, strkey.IsValidEd25519PublicKey(seed))
	assert.False(t, strkey.IsValidEd25519PublicKey(""))

	assert.True(t, strkey.IsValidEd25519SecretSeed(seed))
	assert.False(t, strkey.IsValidEd25519SecretSeed(account))

	assert.True(t, strkey.IsValidMuxedAccount(muxed))
	assert.False(t, strkey.IsValidMuxedAccount(account))

	assert.True(t, strkey.IsValidContractAddress(contract))
	assert.False(t, strkey.IsValidContractAddress(account))
}

func TestMustEncodePanics(t *testing.T) {
	assert.Panics(t, func() {
		strkey.MustEncode(strkey.VersionByteAccountID, make([]byte, 3))
	})
	assert.Panics(t, func() {
		strkey.MustDecode(strkey.VersionByteAccountID, "junk")
	})
}
