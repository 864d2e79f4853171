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

package xdr

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/lumenlabs-io/gostellar/strkey"
)

const (
	// MaxSignatureLength is the maximum length of a signature in bytes
	MaxSignatureLength = 64

	// MaxDataValueLength is the maximum length of a data entry value
	MaxDataValueLength = 64
)

// Hash is a 32-byte hash value
type Hash [32]byte

func (h Hash) EncodeXDR(e *Encoder) error {
	return e.WriteFixedOpaque(h[:], len(h))
}

func (h *Hash) DecodeXDR(d *Decoder) error {
	data, err := d.ReadFixedOpaque(len(h))
	if err != nil {
		return err
	}
	copy(h[:], data)
	return nil
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Uint256 is a 256-bit value, most commonly an ed25519 key
type Uint256 [32]byte

func (u Uint256) EncodeXDR(e *Encoder) error {
	return e.WriteFixedOpaque(u[:], len(u))
}

func (u *Uint256) DecodeXDR(d *Decoder) error {
	data, err := d.ReadFixedOpaque(len(u))
	if err != nil {
		return err
	}
	copy(u[:], data)
	return nil
}

// Int128Parts is a signed 128-bit value split into two 64-bit halves
type Int128Parts struct {
	Hi int64
	Lo uint64
}

func (i Int128Parts) EncodeXDR(e *Encoder) error {
	e.WriteInt64(i.Hi)
	e.WriteUint64(i.Lo)
	return nil
}

func (i *Int128Parts) DecodeXDR(d *Decoder) error {
	var err error
	if i.Hi, err = d.ReadInt64(); err != nil {
		return err
	}
	if i.Lo, err = d.ReadUint64(); err != nil {
		return err
	}
	return nil
}

// UInt128Parts is an unsigned 128-bit value split into two 64-bit halves
type UInt128Parts struct {
	Hi uint64
	Lo uint64
}

func (u UInt128Parts) EncodeXDR(e *Encoder) error {
	e.WriteUint64(u.Hi)
	e.WriteUint64(u.Lo)
	return nil
}

func (u *UInt128Parts) DecodeXDR(d *Decoder) error {
	var err error
	if u.Hi, err = d.ReadUint64(); err != nil {
		return err
	}
	if u.Lo, err = d.ReadUint64(); err != nil {
		return err
	}
	return nil
}

// SequenceNumber is an account sequence number
type SequenceNumber int64

// TimePoint is a count of seconds since the Unix epoch
type TimePoint uint64

// Duration is a count of seconds
type Duration uint64

// PublicKeyType values
const (
	PublicKeyTypeEd25519 int32 = 0
)

// PublicKey is the public key union. Ed25519 is the only declared case
type PublicKey struct {
	Type    int32
	Ed25519 Uint256
}

// AccountID identifies an account by its public key
type AccountID = PublicKey

// NodeID identifies a validator node by its public key
type NodeID = PublicKey

func (pk PublicKey) EncodeXDR(e *Encoder) error {
	switch pk.Type {
	case PublicKeyTypeEd25519:
		e.WriteInt32(pk.Type)
		return pk.Ed25519.EncodeXDR(e)
	default:
		return &DiscriminantError{Type: "PublicKey", Value: pk.Type}
	}
}

func (pk *PublicKey) DecodeXDR(d *Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch t {
	case PublicKeyTypeEd25519:
		pk.Type = t
		return pk.Ed25519.DecodeXDR(d)
	default:
		return &DiscriminantError{Type: "PublicKey", Value: t}
	}
}

// Address returns the text form of the public key
func (pk PublicKey) Address() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, pk.Ed25519[:])
}

// Equals reports whether two public keys are the same key
func (pk PublicKey) Equals(other PublicKey) bool {
	return pk.Type == other.Type && pk.Ed25519 == other.Ed25519
}

// NewAccountID returns an ed25519 AccountID for the given key bytes
func NewAccountID(key [32]byte) AccountID {
	return AccountID{Type: PublicKeyTypeEd25519, Ed25519: key}
}

// AddressToAccountID converts the text form of an account identifier to an
// AccountID
func AddressToAccountID(address string) (AccountID, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return AccountID{}, err
	}
	var key [32]byte
	copy(key[:], raw)
	return NewAccountID(key), nil
}

// MustAddressToAccountID is like AddressToAccountID but panics on error
func MustAddressToAccountID(address string) AccountID {
	ret, err := AddressToAccountID(address)
	if err != nil {
		panic(err)
	}
	return ret
}

// CryptoKeyType values
const (
	CryptoKeyTypeEd25519      int32 = 0
	CryptoKeyTypeMuxedEd25519 int32 = 0x100
)

// MuxedAccountMed25519 is an ed25519 key qualified by a 64-bit multiplexing id
type MuxedAccountMed25519 struct {
	Id      uint64
	Ed25519 Uint256
}

func (m MuxedAccountMed25519) EncodeXDR(e *Encoder) error {
	e.WriteUint64(m.Id)
	return m.Ed25519.EncodeXDR(e)
}

func (m *MuxedAccountMed25519) DecodeXDR(d *Decoder) error {
	var err error
	if m.Id, err = d.ReadUint64(); err != nil {
		return err
	}
	return m.Ed25519.DecodeXDR(d)
}

// MuxedAccount is an account identifier that may carry a multiplexing id
type MuxedAccount struct {
	Type     int32
	Ed25519  Uint256
	Med25519 *MuxedAccountMed25519
}

func (m MuxedAccount) EncodeXDR(e *Encoder) error {
	switch m.Type {
	case CryptoKeyTypeEd25519:
		e.WriteInt32(m.Type)
		return m.Ed25519.EncodeXDR(e)
	case CryptoKeyTypeMuxedEd25519:
		if m.Med25519 == nil {
			return fmt.Errorf("muxed account has no med25519 payload")
		}
		e.WriteInt32(m.Type)
		return m.Med25519.EncodeXDR(e)
	default:
		return &DiscriminantError{Type: "MuxedAccount", Value: m.Type}
	}
}

func (m *MuxedAccount) DecodeXDR(d *Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch t {
	case CryptoKeyTypeEd25519:
		m.Type = t
		return m.Ed25519.DecodeXDR(d)
	case CryptoKeyTypeMuxedEd25519:
		m.Type = t
		m.Med25519 = &MuxedAccountMed25519{}
		return m.Med25519.DecodeXDR(d)
	default:
		return &DiscriminantError{Type: "MuxedAccount", Value: t}
	}
}

// NewMuxedAccount returns a MuxedAccount wrapping a bare ed25519 key
func NewMuxedAccount(key [32]byte) MuxedAccount {
	return MuxedAccount{Type: CryptoKeyTypeEd25519, Ed25519: key}
}

// NewMuxedAccountWithId returns a MuxedAccount carrying a multiplexing id
func NewMuxedAccountWithId(key [32]byte, id uint64) MuxedAccount {
	return MuxedAccount{
		Type:     CryptoKeyTypeMuxedEd25519,
		Med25519: &MuxedAccountMed25519{Id: id, Ed25519: key},
	}
}

// ToAccountID strips any multiplexing id, returning the underlying account
func (m MuxedAccount) ToAccountID() AccountID {
	if m.Type == CryptoKeyTypeMuxedEd25519 && m.Med25519 != nil {
		return NewAccountID(m.Med25519.Ed25519)
	}
	return NewAccountID(m.Ed25519)
}

// Address returns the text form of the account identifier. Muxed accounts
// use the muxed text form, which embeds the multiplexing id
func (m MuxedAccount) Address() string {
	if m.Type == CryptoKeyTypeMuxedEd25519 && m.Med25519 != nil {
		payload := make([]byte, 0, 40)
		payload = append(payload, m.Med25519.Ed25519[:]...)
		payload = binary.BigEndian.AppendUint64(payload, m.Med25519.Id)
		return strkey.MustEncode(strkey.VersionByteMuxedAccount, payload)
	}
	return strkey.MustEncode(strkey.VersionByteAccountID, m.Ed25519[:])
}

// AddressToMuxedAccount converts the text form of an account or muxed
// account identifier to a MuxedAccount
func AddressToMuxedAccount(address string) (MuxedAccount, error) {
	version, err := strkey.Version(address)
	if err != nil {
		return MuxedAccount{}, err
	}
	switch version {
	case strkey.VersionByteAccountID:
		raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
		if err != nil {
			return MuxedAccount{}, err
		}
		var key [32]byte
		copy(key[:], raw)
		return NewMuxedAccount(key), nil
	case strkey.VersionByteMuxedAccount:
		raw, err := strkey.Decode(strkey.VersionByteMuxedAccount, address)
		if err != nil {
			return MuxedAccount{}, err
		}
		var key [32]byte
		copy(key[:], raw[:32])
		return NewMuxedAccountWithId(key, binary.BigEndian.Uint64(raw[32:])), nil
	default:
		return MuxedAccount{}, fmt.Errorf(
			"address %q is not an account identifier",
			address,
		)
	}
}

// SignatureHint is the last 4 bytes of the signing key, used to select
// candidate keys when verifying a decorated signature
type SignatureHint [4]byte

func (h SignatureHint) EncodeXDR(e *Encoder) error {
	return e.WriteFixedOpaque(h[:], len(h))
}

func (h *SignatureHint) DecodeXDR(d *Decoder) error {
	data, err := d.ReadFixedOpaque(len(h))
	if err != nil {
		return err
	}
	copy(h[:], data)
	return nil
}

// Signature is a variable-length signature, at most 64 bytes
type Signature []byte

func (s Signature) EncodeXDR(e *Encoder) error {
	return e.WriteOpaque(s, MaxSignatureLength)
}

func (s *Signature) DecodeXDR(d *Decoder) error {
	data, err := d.ReadOpaque(MaxSignatureLength)
	if err != nil {
		return err
	}
	*s = data
	return nil
}

// DecoratedSignature is a signature paired with the hint of the key that
// produced it
type DecoratedSignature struct {
	Hint      SignatureHint
	Signature Signature
}

func (ds DecoratedSignature) EncodeXDR(e *Encoder) error {
	if err := ds.Hint.EncodeXDR(e); err != nil {
		return err
	}
	return ds.Signature.EncodeXDR(e)
}

func (ds *DecoratedSignature) DecodeXDR(d *Decoder) error {
	if err := ds.Hint.DecodeXDR(d); err != nil {
		return err
	}
	return ds.Signature.DecodeXDR(d)
}

// Thresholds packs the master weight and the low/medium/high operation
// thresholds into 4 bytes
type Thresholds [4]byte

func (t Thresholds) EncodeXDR(e *Encoder) error {
	return e.WriteFixedOpaque(t[:], len(t))
}

func (t *Thresholds) DecodeXDR(d *Decoder) error {
	data, err := d.ReadFixedOpaque(len(t))
	if err != nil {
		return err
	}
	copy(t[:], data)
	return nil
}

// String32 is a string of at most 32 bytes
type String32 string

func (s String32) EncodeXDR(e *Encoder) error {
	return e.WriteString(string(s), 32)
}

func (s *String32) DecodeXDR(d *Decoder) error {
	tmp, err := d.ReadString(32)
	if err != nil {
		return err
	}
	*s = String32(tmp)
	return nil
}

// String64 is a string of at most 64 bytes
type String64 string

func (s String64) EncodeXDR(e *Encoder) error {
	return e.WriteString(string(s), 64)
}

func (s *String64) DecodeXDR(d *Decoder) error {
	tmp, err := d.ReadString(64)
	if err != nil {
		return err
	}
	*s = String64(tmp)
	return nil
}

// DataValue is the value of a managed data entry, at most 64 bytes
type DataValue []byte

func (v DataValue) EncodeXDR(e *Encoder) error {
	return e.WriteOpaque(v, MaxDataValueLength)
}

func (v *DataValue) DecodeXDR(d *Decoder) error {
	data, err := d.ReadOpaque(MaxDataValueLength)
	if err != nil {
		return err
	}
	*v = data
	return nil
}

// SignerKeyType values
const (
	SignerKeyTypeEd25519              int32 = 0
	SignerKeyTypePreAuthTx            int32 = 1
	SignerKeyTypeHashX                int32 = 2
	SignerKeyTypeEd25519SignedPayload int32 = 3
)

// SignerKeyEd25519SignedPayload is an ed25519 key that must sign a specific
// payload for the signer to be valid
type SignerKeyEd25519SignedPayload struct {
	Ed25519 Uint256
	Payload []byte
}

func (sp SignerKeyEd25519SignedPayload) EncodeXDR(e *Encoder) error {
	if err := sp.Ed25519.EncodeXDR(e); err != nil {
		return err
	}
	return e.WriteOpaque(sp.Payload, 64)
}

func (sp *SignerKeyEd25519SignedPayload) DecodeXDR(d *Decoder) error {
	if err := sp.Ed25519.DecodeXDR(d); err != nil {
		return err
	}
	payload, err := d.ReadOpaque(64)
	if err != nil {
		return err
	}
	sp.Payload = payload
	return nil
}

// SignerKey identifies a signer authorized on an account
type SignerKey struct {
	Type                 int32
	Ed25519              Uint256
	PreAuthTx            Uint256
	HashX                Uint256
	Ed25519SignedPayload *SignerKeyEd25519SignedPayload
}

func (sk SignerKey) EncodeXDR(e *Encoder) error {
	switch sk.Type {
	case SignerKeyTypeEd25519:
		e.WriteInt32(sk.Type)
		return sk.Ed25519.EncodeXDR(e)
	case SignerKeyTypePreAuthTx:
		e.WriteInt32(sk.Type)
		return sk.PreAuthTx.EncodeXDR(e)
	case SignerKeyTypeHashX:
		e.WriteInt32(sk.Type)
		return sk.HashX.EncodeXDR(e)
	case SignerKeyTypeEd25519SignedPayload:
		if sk.Ed25519SignedPayload == nil {
			return fmt.Errorf("signer key has no signed payload")
		}
		e.WriteInt32(sk.Type)
		return sk.Ed25519SignedPayload.EncodeXDR(e)
	default:
		return &DiscriminantError{Type: "SignerKey", Value: sk.Type}
	}
}

func (sk *SignerKey) DecodeXDR(d *Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	sk.Type = t
	switch t {
	case SignerKeyTypeEd25519:
		return sk.Ed25519.DecodeXDR(d)
	case SignerKeyTypePreAuthTx:
		return sk.PreAuthTx.DecodeXDR(d)
	case SignerKeyTypeHashX:
		return sk.HashX.DecodeXDR(d)
	case SignerKeyTypeEd25519SignedPayload:
		sk.Ed25519SignedPayload = &SignerKeyEd25519SignedPayload{}
		return sk.Ed25519SignedPayload.DecodeXDR(d)
	default:
		return &DiscriminantError{Type: "SignerKey", Value: t}
	}
}

// Signer is a signer key with its voting weight
type Signer struct {
	Key    SignerKey
	Weight uint32
}

func (s Signer) EncodeXDR(e *Encoder) error {
	if err := s.Key.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(s.Weight)
	return nil
}

func (s *Signer) DecodeXDR(d *Decoder) error {
	if err := s.Key.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	s.Weight, err = d.ReadUint32()
	return err
}

// AssetType values
const (
	AssetTypeNative           int32 = 0
	AssetTypeCreditAlphanum4  int32 = 1
	AssetTypeCreditAlphanum12 int32 = 2
	AssetTypePoolShare        int32 = 3
)

// AssetCode4 is a 1-4 character asset code, zero padded
type AssetCode4 [4]byte

func (c AssetCode4) EncodeXDR(e *Encoder) error {
	// Asset codes carry their zero fill as part of the value, so the raw
	// bytes are written rather than zero-checked padding
	return e.WriteFixedOpaque(c[:], len(c))
}

func (c *AssetCode4) DecodeXDR(d *Decoder) error {
	data, err := d.take(len(c))
	if err != nil {
		return err
	}
	copy(c[:], data)
	return nil
}

// AssetCode12 is a 5-12 character asset code, zero padded
type AssetCode12 [12]byte

func (c AssetCode12) EncodeXDR(e *Encoder) error {
	return e.WriteFixedOpaque(c[:], len(c))
}

func (c *AssetCode12) DecodeXDR(d *Decoder) error {
	data, err := d.take(len(c))
	if err != nil {
		return err
	}
	copy(c[:], data)
	return nil
}

// AlphaNum4 is an issued asset with a code of up to 4 characters
type AlphaNum4 struct {
	AssetCode AssetCode4
	Issuer    AccountID
}

func (a AlphaNum4) EncodeXDR(e *Encoder) error {
	if err := a.AssetCode.EncodeXDR(e); err != nil {
		return err
	}
	return a.Issuer.EncodeXDR(e)
}

func (a *AlphaNum4) DecodeXDR(d *Decoder) error {
	if err := a.AssetCode.DecodeXDR(d); err != nil {
		return err
	}
	return a.Issuer.DecodeXDR(d)
}

// AlphaNum12 is an issued asset with a code of 5 to 12 characters
type AlphaNum12 struct {
	AssetCode AssetCode12
	Issuer    AccountID
}

func (a AlphaNum12) EncodeXDR(e *Encoder) error {
	if err := a.AssetCode.EncodeXDR(e); err != nil {
		return err
	}
	return a.Issuer.EncodeXDR(e)
}

func (a *AlphaNum12) DecodeXDR(d *Decoder) error {
	if err := a.AssetCode.DecodeXDR(d); err != nil {
		return err
	}
	return a.Issuer.DecodeXDR(d)
}

// Asset is the native asset or an issued credit asset
type Asset struct {
	Type       int32
	AlphaNum4  *AlphaNum4
	AlphaNum12 *AlphaNum12
}

// NewNativeAsset returns the native asset
func NewNativeAsset() Asset {
	return Asset{Type: AssetTypeNative}
}

// NewCreditAsset returns an issued asset, choosing the short or long code
// form based on the code length
func NewCreditAsset(code string, issuer AccountID) (Asset, error) {
	switch {
	case len(code) >= 1 && len(code) <= 4:
		var ac AssetCode4
		copy(ac[:], code)
		return Asset{
			Type:      AssetTypeCreditAlphanum4,
			AlphaNum4: &AlphaNum4{AssetCode: ac, Issuer: issuer},
		}, nil
	case len(code) >= 5 && len(code) <= 12:
		var ac AssetCode12
		copy(ac[:], code)
		return Asset{
			Type:       AssetTypeCreditAlphanum12,
			AlphaNum12: &AlphaNum12{AssetCode: ac, Issuer: issuer},
		}, nil
	default:
		return Asset{}, fmt.Errorf("invalid asset code length: %d", len(code))
	}
}

func (a Asset) EncodeXDR(e *Encoder) error {
	switch a.Type {
	case AssetTypeNative:
		e.WriteInt32(a.Type)
		return nil
	case AssetTypeCreditAlphanum4:
		if a.AlphaNum4 == nil {
			return fmt.Errorf("alphanum4 asset has no code/issuer")
		}
		e.WriteInt32(a.Type)
		return a.AlphaNum4.EncodeXDR(e)
	case AssetTypeCreditAlphanum12:
		if a.AlphaNum12 == nil {
			return fmt.Errorf("alphanum12 asset has no code/issuer")
		}
		e.WriteInt32(a.Type)
		return a.AlphaNum12.EncodeXDR(e)
	default:
		return &DiscriminantError{Type: "Asset", Value: a.Type}
	}
}

func (a *Asset) DecodeXDR(d *Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	a.Type = t
	switch t {
	case AssetTypeNative:
		return nil
	case AssetTypeCreditAlphanum4:
		a.AlphaNum4 = &AlphaNum4{}
		return a.AlphaNum4.DecodeXDR(d)
	case AssetTypeCreditAlphanum12:
		a.AlphaNum12 = &AlphaNum12{}
		return a.AlphaNum12.DecodeXDR(d)
	default:
		return &DiscriminantError{Type: "Asset", Value: t}
	}
}

// Code returns the asset code with trailing zero fill removed, or empty for
// the native asset
func (a Asset) Code() string {
	switch a.Type {
	case AssetTypeCreditAlphanum4:
		if a.AlphaNum4 != nil {
			return string(bytes.TrimRight(a.AlphaNum4.AssetCode[:], "\x00"))
		}
	case AssetTypeCreditAlphanum12:
		if a.AlphaNum12 != nil {
			return string(bytes.TrimRight(a.AlphaNum12.AssetCode[:], "\x00"))
		}
	}
	return ""
}

// Price is a rational price as a numerator/denominator pair
type Price struct {
	N int32
	D int32
}

func (p Price) EncodeXDR(e *Encoder) error {
	e.WriteInt32(p.N)
	e.WriteInt32(p.D)
	return nil
}

func (p *Price) DecodeXDR(d *Decoder) error {
	var err error
	if p.N, err = d.ReadInt32(); err != nil {
		return err
	}
	p.D, err = d.ReadInt32()
	return err
}

// PoolID identifies a liquidity pool
type PoolID = Hash

// ExtensionPoint is a versioned union reserved for forward-compatible
// evolution. Only the empty case 0 is declared
type ExtensionPoint struct {
	V int32
}

func (x ExtensionPoint) EncodeXDR(e *Encoder) error {
	if x.V != 0 {
		return &DiscriminantError{Type: "ExtensionPoint", Value: x.V}
	}
	e.WriteInt32(0)
	return nil
}

func (x *ExtensionPoint) DecodeXDR(d *Decoder) error {
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &DiscriminantError{Type: "ExtensionPoint", Value: v}
	}
	x.V = v
	return nil
}
