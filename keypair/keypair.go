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

// Package keypair provides ed25519 signing keys identified by their
// strkey text forms: a Full keypair backed by a secret seed, and a
// verify-only FromAddress backed by just the public key.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/lumenlabs-io/gostellar/strkey"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// ErrInvalidSignature is returned when signature verification fails
var ErrInvalidSignature = errors.New("signature verification failed")

// KP is the shared interface of Full and FromAddress keypairs
type KP interface {
	Address() string
	Hint() xdr.SignatureHint
	Verify(input []byte, signature []byte) error
}

// Full is a keypair backed by a secret seed, able to both sign and verify
type Full struct {
	rawSeed [32]byte
	priv    ed25519.PrivateKey
	pub     ed25519.PublicKey
}

// FromAddress is a verify-only keypair holding just the public key
type FromAddress struct {
	pub ed25519.PublicKey
}

// Random returns a Full keypair with a seed drawn from crypto/rand
func Random() (*Full, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	return FromRawSeed(seed), nil
}

// FromRawSeed returns the Full keypair for the given raw 32-byte seed
func FromRawSeed(seed [32]byte) *Full {
	priv := ed25519.NewKeyFromSeed(seed[:])
	return &Full{
		rawSeed: seed,
		priv:    priv,
		pub:     priv.Public().(ed25519.PublicKey),
	}
}

// ParseFull returns the Full keypair for a secret seed in text form
func ParseFull(seed string) (*Full, error) {
	raw, err := strkey.Decode(strkey.VersionByteSeed, seed)
	if err != nil {
		return nil, err
	}
	var tmp [32]byte
	copy(tmp[:], raw)
	return FromRawSeed(tmp), nil
}

// Parse returns a verify-only keypair for a public key in text form. The
// key bytes must be a canonical point on the ed25519 curve
func Parse(address string) (*FromAddress, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return nil, err
	}
	if _, err := new(edwards25519.Point).SetBytes(raw); err != nil {
		return nil, fmt.Errorf("public key is not a valid curve point: %w", err)
	}
	return &FromAddress{pub: ed25519.PublicKey(raw)}, nil
}

// Address returns the public key in text form
func (kp *Full) Address() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, kp.pub)
}

// Seed returns the secret seed in text form
func (kp *Full) Seed() string {
	return strkey.MustEncode(strkey.VersionByteSeed, kp.rawSeed[:])
}

// PublicKey returns the raw ed25519 public key
func (kp *Full) PublicKey() ed25519.PublicKey {
	return kp.pub
}

// AccountID returns the public key as a wire-format account identifier
func (kp *Full) AccountID() xdr.AccountID {
	var key [32]byte
	copy(key[:], kp.pub)
	return xdr.NewAccountID(key)
}

// Hint returns the last 4 bytes of the public key
func (kp *Full) Hint() xdr.SignatureHint {
	return hint(kp.pub)
}

// Sign signs the input with the keypair's secret key
func (kp *Full) Sign(input []byte) ([]byte, error) {
	return ed25519.Sign(kp.priv, input), nil
}

// SignDecorated signs the input and pairs the signature with the keypair's
// hint
func (kp *Full) SignDecorated(input []byte) (xdr.DecoratedSignature, error) {
	sig, err := kp.Sign(input)
	if err != nil {
		return xdr.DecoratedSignature{}, err
	}
	return xdr.DecoratedSignature{
		Hint:      kp.Hint(),
		Signature: sig,
	}, nil
}

// SignPayloadDecorated signs the payload for a signed-payload signer. The
// hint is the keypair's hint XORed with the last 4 bytes of the payload,
// right-padded with zeros when the payload is shorter than 4 bytes
func (kp *Full) SignPayloadDecorated(payload []byte) (xdr.DecoratedSignature, error) {
	sig, err := kp.Sign(payload)
	if err != nil {
		return xdr.DecoratedSignature{}, err
	}
	h := kp.Hint()
	var last [4]byte
	if len(payload) >= 4 {
		copy(last[:], payload[len(payload)-4:])
	} else {
		copy(last[:], payload)
	}
	for i := range h {
		h[i] ^= last[i]
	}
	return xdr.DecoratedSignature{Hint: h, Signature: sig}, nil
}

// Verify checks the signature against the input
func (kp *Full) Verify(input []byte, signature []byte) error {
	return verify(kp.pub, input, signature)
}

// Address returns the public key in text form
func (kp *FromAddress) Address() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, kp.pub)
}

// PublicKey returns the raw ed25519 public key
func (kp *FromAddress) PublicKey() ed25519.PublicKey {
	return kp.pub
}

// AccountID returns the public key as a wire-format account identifier
func (kp *FromAddress) AccountID() xdr.AccountID {
	var key [32]byte
	copy(key[:], kp.pub)
	return xdr.NewAccountID(key)
}

// Hint returns the last 4 bytes of the public key
func (kp *FromAddress) Hint() xdr.SignatureHint {
	return hint(kp.pub)
}

// Verify checks the signature against the input
func (kp *FromAddress) Verify(input []byte, signature []byte) error {
	return verify(kp.pub, input, signature)
}

func hint(pub ed25519.PublicKey) xdr.SignatureHint {
	var h xdr.SignatureHint
	copy(h[:], pub[len(pub)-4:])
	return h
}

func verify(pub ed25519.PublicKey, input []byte, signature []byte) error {
	if len(signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(pub, input, signature) {
		return ErrInvalidSignature
	}
	return nil
}
