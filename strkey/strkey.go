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

// Package strkey implements the checksummed, versioned base-32 text
// encoding used for human-facing identifiers: a one-byte version prefix
// naming the payload kind, the raw payload, and a trailing CRC-16/XMODEM
// checksum, base-32 encoded without padding characters.
//
// Decoding is strict: an unknown alphabet character, a wrong length for
// the requested kind, a version byte for a different kind, a checksum
// mismatch, or non-zero unused trailing bits each fail with a distinct
// error. A string that decodes as one kind never decodes as another.
package strkey

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// VersionByte names the kind of payload carried by an encoded string. The
// values are chosen so that the first character of the text form is the
// kind's well-known leading letter
type VersionByte byte

const (
	// VersionByteAccountID is an ed25519 public key ('G')
	VersionByteAccountID VersionByte = 6 << 3
	// VersionByteSeed is an ed25519 secret seed ('S')
	VersionByteSeed VersionByte = 18 << 3
	// VersionByteMuxedAccount is an ed25519 public key with a 64-bit
	// multiplexing id ('M')
	VersionByteMuxedAccount VersionByte = 12 << 3
	// VersionBytePreAuthTx is a pre-authorized transaction hash ('T')
	VersionBytePreAuthTx VersionByte = 19 << 3
	// VersionByteHashX is a SHA-256 hash for hash-lock signers ('X')
	VersionByteHashX VersionByte = 23 << 3
	// VersionByteSignedPayload is an ed25519 public key plus the payload it
	// must sign ('P')
	VersionByteSignedPayload VersionByte = 15 << 3
	// VersionByteContract is a contract id ('C')
	VersionByteContract VersionByte = 2 << 3
	// VersionByteLiquidityPool is a liquidity pool id ('L')
	VersionByteLiquidityPool VersionByte = 11 << 3
	// VersionByteClaimableBalance is a claimable balance id ('B')
	VersionByteClaimableBalance VersionByte = 1 << 3
)

var (
	// ErrInvalidEncoding is returned when a string is not valid unpadded
	// base-32
	ErrInvalidEncoding = errors.New("invalid base-32 encoding")
	// ErrInvalidLength is returned when the decoded length is wrong for the
	// requested kind
	ErrInvalidLength = errors.New("invalid decoded length")
	// ErrInvalidVersionByte is returned when the version byte does not match
	// the requested kind
	ErrInvalidVersionByte = errors.New("invalid version byte")
	// ErrChecksumMismatch is returned when the trailing checksum does not
	// match the decoded data
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrNonZeroTrailingBits is returned when the unused bits of the final
	// base-32 character are not zero
	ErrNonZeroTrailingBits = errors.New("non-zero trailing bits")
	// ErrInvalidPayload is returned when the payload fails its kind-specific
	// structural checks
	ErrInvalidPayload = errors.New("invalid payload")
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

const (
	// signedPayloadMinLength is an ed25519 key, a 4-byte length, and a
	// minimum 1-byte payload padded to 4 bytes
	signedPayloadMinLength = 32 + 4 + 4
	// signedPayloadMaxLength is an ed25519 key, a 4-byte length, and a
	// 64-byte payload
	signedPayloadMaxLength = 32 + 4 + 64
)

// payloadSizes holds the expected raw payload length for each fixed-length
// kind. Signed payloads are variable length and validated separately
var payloadSizes = map[VersionByte]int{
	VersionByteAccountID:        32,
	VersionByteSeed:             32,
	VersionByteMuxedAccount:     40,
	VersionBytePreAuthTx:        32,
	VersionByteHashX:            32,
	VersionByteContract:         32,
	VersionByteLiquidityPool:    32,
	VersionByteClaimableBalance: 33,
}

// Encode encodes the given payload as the requested kind. Claimable balance
// ids may be supplied as either the bare 32-byte hash or the 33-byte form
// with the leading sub-version byte; both produce identical output
func Encode(version VersionByte, src []byte) (string, error) {
	src, err := checkPayload(version, src)
	if err != nil {
		return "", err
	}
	raw := make([]byte, 0, len(src)+3)
	raw = append(raw, byte(version))
	raw = append(raw, src...)
	raw = binary.LittleEndian.AppendUint16(raw, crc16Checksum(raw))
	return encoding.EncodeToString(raw), nil
}

// MustEncode is like Encode but panics on error
func MustEncode(version VersionByte, src []byte) string {
	ret, err := Encode(version, src)
	if err != nil {
		panic(err)
	}
	return ret
}

// EncodeSignedPayload encodes an ed25519 signed payload signer from its
// parts: the 32-byte signer key and the payload it must sign (1-64 bytes)
func EncodeSignedPayload(signer []byte, payload []byte) (string, error) {
	if len(signer) != 32 {
		return "", fmt.Errorf("%w: signer must be 32 bytes, got %d",
			ErrInvalidPayload, len(signer))
	}
	if len(payload) == 0 || len(payload) > 64 {
		return "", fmt.Errorf("%w: payload must be 1-64 bytes, got %d",
			ErrInvalidPayload, len(payload))
	}
	src := make([]byte, 0, signedPayloadMaxLength)
	src = append(src, signer...)
	src = binary.BigEndian.AppendUint32(src, uint32(len(payload)))
	src = append(src, payload...)
	for len(src)%4 != 0 {
		src = append(src, 0)
	}
	return Encode(VersionByteSignedPayload, src)
}

// Decode decodes the given string, requiring it to be of the expected kind.
// Validation proceeds in fixed stages: base-32 alphabet, decoded length,
// version byte, checksum, unused trailing bits, then kind-specific payload
// structure. Each stage fails with its own error
func Decode(expected VersionByte, src string) ([]byte, error) {
	raw, err := decodeBase32(src)
	if err != nil {
		return nil, err
	}
	if len(raw) < 3 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(raw))
	}
	payload := raw[1 : len(raw)-2]
	if err := checkLength(expected, len(payload)); err != nil {
		return nil, err
	}
	if _, ok := payloadSizes[expected]; !ok &&
		expected != VersionByteSignedPayload {
		return nil, fmt.Errorf("%w: unknown kind 0x%02x", ErrInvalidVersionByte, byte(expected))
	}
	if VersionByte(raw[0]) != expected {
		return nil, fmt.Errorf(
			"%w: got 0x%02x, want 0x%02x",
			ErrInvalidVersionByte,
			raw[0],
			byte(expected),
		)
	}
	wantChecksum := binary.LittleEndian.Uint16(raw[len(raw)-2:])
	if crc16Checksum(raw[:len(raw)-2]) != wantChecksum {
		return nil, ErrChecksumMismatch
	}
	if err := checkTrailingBits(src); err != nil {
		return nil, err
	}
	if _, err := checkPayload(expected, payload); err != nil {
		return nil, err
	}
	ret := make([]byte, len(payload))
	copy(ret, payload)
	return ret, nil
}

// MustDecode is like Decode but panics on error
func MustDecode(expected VersionByte, src string) []byte {
	ret, err := Decode(expected, src)
	if err != nil {
		panic(err)
	}
	return ret
}

// Version returns the kind of an encoded string without fully validating
// it. Use Decode to both identify and validate
func Version(src string) (VersionByte, error) {
	raw, err := decodeBase32(src)
	if err != nil {
		return 0, err
	}
	if len(raw) < 3 {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(raw))
	}
	version := VersionByte(raw[0])
	if _, ok := payloadSizes[version]; !ok &&
		version != VersionByteSignedPayload {
		return 0, fmt.Errorf("%w: 0x%02x", ErrInvalidVersionByte, raw[0])
	}
	return version, nil
}

// IsValidEd25519PublicKey reports whether the string is a valid account
// public key
func IsValidEd25519PublicKey(s string) bool {
	_, err := Decode(VersionByteAccountID, s)
	return err == nil
}

// IsValidEd25519SecretSeed reports whether the string is a valid secret seed
func IsValidEd25519SecretSeed(s string) bool {
	_, err := Decode(VersionByteSeed, s)
	return err == nil
}

// IsValidMuxedAccount reports whether the string is a valid muxed account id
func IsValidMuxedAccount(s string) bool {
	_, err := Decode(VersionByteMuxedAccount, s)
	return err == nil
}

// IsValidContractAddress reports whether the string is a valid contract id
func IsValidContractAddress(s string) bool {
	_, err := Decode(VersionByteContract, s)
	return err == nil
}

func decodeBase32(src string) ([]byte, error) {
	// Padding characters never appear in this encoding
	if strings.ContainsRune(src, '=') {
		return nil, fmt.Errorf("%w: padding character", ErrInvalidEncoding)
	}
	raw, err := encoding.DecodeString(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, err)
	}
	return raw, nil
}

func checkLength(version VersionByte, payloadLen int) error {
	if version == VersionByteSignedPayload {
		if payloadLen < signedPayloadMinLength ||
			payloadLen > signedPayloadMaxLength ||
			payloadLen%4 != 0 {
			return fmt.Errorf(
				"%w: %d bytes for signed payload",
				ErrInvalidLength,
				payloadLen,
			)
		}
		return nil
	}
	if want, ok := payloadSizes[version]; ok && payloadLen != want {
		return fmt.Errorf(
			"%w: got %d bytes, want %d",
			ErrInvalidLength,
			payloadLen,
			want,
		)
	}
	return nil
}

// checkTrailingBits verifies that the bits of the final base-32 character
// that fall beyond the last decoded byte are zero. A non-zero value would
// allow a second, distinct string to decode to the same bytes
func checkTrailingBits(src string) error {
	leftover := (len(src) * 5) % 8
	if leftover == 0 {
		return nil
	}
	lastChar := src[len(src)-1]
	idx := strings.IndexByte(base32Alphabet, lastChar)
	if idx < 0 {
		return fmt.Errorf("%w: character %q", ErrInvalidEncoding, lastChar)
	}
	if idx&((1<<leftover)-1) != 0 {
		return ErrNonZeroTrailingBits
	}
	return nil
}

// checkPayload applies kind-specific structural rules, returning the
// payload in its canonical form
func checkPayload(version VersionByte, payload []byte) ([]byte, error) {
	switch version {
	case VersionByteClaimableBalance:
		// Accept the bare 32-byte hash on encode, normalizing to the 33-byte
		// form with the v0 sub-version byte
		if len(payload) == 32 {
			return append([]byte{0x00}, payload...), nil
		}
		if len(payload) != 33 {
			return nil, fmt.Errorf(
				"%w: got %d bytes, want 32 or 33",
				ErrInvalidLength,
				len(payload),
			)
		}
		if payload[0] != 0x00 {
			return nil, fmt.Errorf(
				"%w: unknown claimable balance sub-version 0x%02x",
				ErrInvalidPayload,
				payload[0],
			)
		}
		return payload, nil
	case VersionByteSignedPayload:
		if err := checkLength(version, len(payload)); err != nil {
			return nil, err
		}
		innerLen := binary.BigEndian.Uint32(payload[32:36])
		if innerLen == 0 || innerLen > 64 {
			return nil, fmt.Errorf(
				"%w: signed payload length %d out of range",
				ErrInvalidPayload,
				innerLen,
			)
		}
		padded := (int(innerLen) + 3) / 4 * 4
		if len(payload) != 36+padded {
			return nil, fmt.Errorf(
				"%w: signed payload length %d does not match size %d",
				ErrInvalidPayload,
				innerLen,
				len(payload),
			)
		}
		for _, b := range payload[36+innerLen:] {
			if b != 0 {
				return nil, fmt.Errorf(
					"%w: non-zero signed payload padding",
					ErrInvalidPayload,
				)
			}
		}
		return payload, nil
	default:
		if err := checkLength(version, len(payload)); err != nil {
			return nil, err
		}
		if _, ok := payloadSizes[version]; !ok {
			return nil, fmt.Errorf(
				"%w: unknown kind 0x%02x",
				ErrInvalidVersionByte,
				byte(version),
			)
		}
		return payload, nil
	}
}
