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
	"crypto/sha256"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/lumenlabs-io/gostellar/keypair"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// NetworkID derives the network identifier from its passphrase. Signatures
// made against one network are invalid on every other
func NetworkID(passphrase string) xdr.Hash {
	return sha256.Sum256([]byte(passphrase))
}

// TransactionSignaturePayload is the value whose hash transactions sign
type TransactionSignaturePayload struct {
	NetworkID xdr.Hash
	Type      int32
	Tx        *Transaction
	FeeBump   *FeeBumpTransaction
}

func (p TransactionSignaturePayload) EncodeXDR(e *xdr.Encoder) error {
	if err := p.NetworkID.EncodeXDR(e); err != nil {
		return err
	}
	switch p.Type {
	case EnvelopeTypeTx:
		if p.Tx == nil {
			return fmt.Errorf("signature payload has no transaction")
		}
		e.WriteInt32(p.Type)
		return p.Tx.EncodeXDR(e)
	case EnvelopeTypeTxFeeBump:
		if p.FeeBump == nil {
			return fmt.Errorf("signature payload has no fee bump transaction")
		}
		e.WriteInt32(p.Type)
		return p.FeeBump.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{
			Type:  "TransactionSignaturePayload",
			Value: p.Type,
		}
	}
}

func (p *TransactionSignaturePayload) DecodeXDR(d *xdr.Decoder) error {
	if err := p.NetworkID.DecodeXDR(d); err != nil {
		return err
	}
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	p.Type = t
	switch t {
	case EnvelopeTypeTx:
		p.Tx = &Transaction{}
		return p.Tx.DecodeXDR(d)
	case EnvelopeTypeTxFeeBump:
		p.FeeBump = &FeeBumpTransaction{}
		return p.FeeBump.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{
			Type:  "TransactionSignaturePayload",
			Value: t,
		}
	}
}

// SignatureBase returns the byte sequence signatures of the envelope's
// transaction cover on the given network
func (env *TransactionEnvelope) SignatureBase(passphrase string) ([]byte, error) {
	payload := TransactionSignaturePayload{NetworkID: NetworkID(passphrase)}
	switch env.Type {
	case EnvelopeTypeTxV0:
		// Legacy transactions sign the v1 form of themselves
		tx := Transaction{
			SourceAccount: env.V0.Tx.SourceAccount(),
			Fee:           env.V0.Tx.Fee,
			SeqNum:        env.V0.Tx.SeqNum,
			Memo:          env.V0.Tx.Memo,
			Operations:    env.V0.Tx.Operations,
		}
		if env.V0.Tx.TimeBounds != nil {
			tx.Cond = Preconditions{
				Type:       PreconditionTypeTime,
				TimeBounds: env.V0.Tx.TimeBounds,
			}
		}
		payload.Type = EnvelopeTypeTx
		payload.Tx = &tx
	case EnvelopeTypeTx:
		payload.Type = EnvelopeTypeTx
		payload.Tx = &env.V1.Tx
	case EnvelopeTypeTxFeeBump:
		payload.Type = EnvelopeTypeTxFeeBump
		payload.FeeBump = &env.FeeBump.Tx
	default:
		return nil, &xdr.DiscriminantError{
			Type:  "TransactionEnvelope",
			Value: env.Type,
		}
	}
	return xdr.Marshal(payload)
}

// Hash returns the transaction hash on the given network, the value
// signatures are made over and the identifier the network reports the
// transaction under
func (env *TransactionEnvelope) Hash(passphrase string) (xdr.Hash, error) {
	base, err := env.SignatureBase(passphrase)
	if err != nil {
		return xdr.Hash{}, err
	}
	return sha256.Sum256(base), nil
}

// Sign hashes the envelope for the given network and appends one decorated
// signature per keypair
func (env *TransactionEnvelope) Sign(
	passphrase string,
	keypairs ...*keypair.Full,
) error {
	h, err := env.Hash(passphrase)
	if err != nil {
		return err
	}
	for _, kp := range keypairs {
		sig, err := kp.SignDecorated(h[:])
		if err != nil {
			return err
		}
		if err := env.appendSignature(sig); err != nil {
			return err
		}
	}
	return nil
}

func (env *TransactionEnvelope) appendSignature(sig xdr.DecoratedSignature) error {
	switch env.Type {
	case EnvelopeTypeTxV0:
		if len(env.V0.Signatures) >= MaxSignatures {
			return &xdr.BoundsError{Len: MaxSignatures + 1, Max: MaxSignatures}
		}
		env.V0.Signatures = append(env.V0.Signatures, sig)
	case EnvelopeTypeTx:
		if len(env.V1.Signatures) >= MaxSignatures {
			return &xdr.BoundsError{Len: MaxSignatures + 1, Max: MaxSignatures}
		}
		env.V1.Signatures = append(env.V1.Signatures, sig)
	case EnvelopeTypeTxFeeBump:
		if len(env.FeeBump.Signatures) >= MaxSignatures {
			return &xdr.BoundsError{Len: MaxSignatures + 1, Max: MaxSignatures}
		}
		env.FeeBump.Signatures = append(env.FeeBump.Signatures, sig)
	default:
		return &xdr.DiscriminantError{
			Type:  "TransactionEnvelope",
			Value: env.Type,
		}
	}
	return nil
}

// Clone returns a deep copy of the envelope, so a signed variant can be
// built without mutating the original
func (env *TransactionEnvelope) Clone() (TransactionEnvelope, error) {
	var out TransactionEnvelope
	if err := copier.CopyWithOption(
		&out,
		env,
		copier.Option{DeepCopy: true},
	); err != nil {
		return TransactionEnvelope{}, err
	}
	return out, nil
}
