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

package consensus

import "github.com/lumenlabs-io/gostellar/xdr"

const (
	// MaxUpgrades is the maximum number of upgrade steps in one close value
	MaxUpgrades = 6

	// MaxUpgradeLength is the maximum encoded size of one upgrade step
	MaxUpgradeLength = 128
)

// StellarValueType values
const (
	StellarValueBasic  int32 = 0
	StellarValueSigned int32 = 1
)

// UpgradeType is one opaque network upgrade step carried in a close value
type UpgradeType []byte

func (u UpgradeType) EncodeXDR(e *xdr.Encoder) error {
	return e.WriteOpaque(u, MaxUpgradeLength)
}

func (u *UpgradeType) DecodeXDR(d *xdr.Decoder) error {
	data, err := d.ReadOpaque(MaxUpgradeLength)
	if err != nil {
		return err
	}
	*u = data
	return nil
}

// LedgerCloseValueSignature is the close value signature of the nominating
// node
type LedgerCloseValueSignature struct {
	NodeID    xdr.NodeID
	Signature xdr.Signature
}

func (s LedgerCloseValueSignature) EncodeXDR(e *xdr.Encoder) error {
	if err := s.NodeID.EncodeXDR(e); err != nil {
		return err
	}
	return s.Signature.EncodeXDR(e)
}

func (s *LedgerCloseValueSignature) DecodeXDR(d *xdr.Decoder) error {
	if err := s.NodeID.DecodeXDR(d); err != nil {
		return err
	}
	return s.Signature.DecodeXDR(d)
}

// StellarValue is the value consensus externalizes for one ledger: the
// transaction set to apply, the close time, and any network upgrades
type StellarValue struct {
	TxSetHash xdr.Hash
	CloseTime xdr.TimePoint
	Upgrades  []UpgradeType
	Signature *LedgerCloseValueSignature
}

func (v StellarValue) EncodeXDR(e *xdr.Encoder) error {
	if err := v.TxSetHash.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint64(uint64(v.CloseTime))
	if err := xdr.EncodeVarArray(e, v.Upgrades, MaxUpgrades); err != nil {
		return err
	}
	if v.Signature != nil {
		e.WriteInt32(StellarValueSigned)
		return v.Signature.EncodeXDR(e)
	}
	e.WriteInt32(StellarValueBasic)
	return nil
}

func (v *StellarValue) DecodeXDR(d *xdr.Decoder) error {
	if err := v.TxSetHash.DecodeXDR(d); err != nil {
		return err
	}
	closeTime, err := d.ReadUint64()
	if err != nil {
		return err
	}
	v.CloseTime = xdr.TimePoint(closeTime)
	if v.Upgrades, err = xdr.DecodeVarArray[UpgradeType](d, MaxUpgrades); err != nil {
		return err
	}
	ext, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch ext {
	case StellarValueBasic:
		return nil
	case StellarValueSigned:
		v.Signature = &LedgerCloseValueSignature{}
		return v.Signature.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "StellarValue.Ext", Value: ext}
	}
}
