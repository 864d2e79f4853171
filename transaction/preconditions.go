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

import "github.com/lumenlabs-io/gostellar/xdr"

// MaxExtraSigners is the maximum number of extra signers a transaction may
// require
const MaxExtraSigners = 2

// TimeBounds restricts the wall-clock window in which a transaction is
// valid. A zero MaxTime means no upper bound
type TimeBounds struct {
	MinTime xdr.TimePoint
	MaxTime xdr.TimePoint
}

func (tb TimeBounds) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint64(uint64(tb.MinTime))
	e.WriteUint64(uint64(tb.MaxTime))
	return nil
}

func (tb *TimeBounds) DecodeXDR(d *xdr.Decoder) error {
	minTime, err := d.ReadUint64()
	if err != nil {
		return err
	}
	maxTime, err := d.ReadUint64()
	if err != nil {
		return err
	}
	tb.MinTime = xdr.TimePoint(minTime)
	tb.MaxTime = xdr.TimePoint(maxTime)
	return nil
}

// LedgerBounds restricts the ledger range in which a transaction is valid.
// A zero MaxLedger means no upper bound
type LedgerBounds struct {
	MinLedger uint32
	MaxLedger uint32
}

func (lb LedgerBounds) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint32(lb.MinLedger)
	e.WriteUint32(lb.MaxLedger)
	return nil
}

func (lb *LedgerBounds) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if lb.MinLedger, err = d.ReadUint32(); err != nil {
		return err
	}
	lb.MaxLedger, err = d.ReadUint32()
	return err
}

// PreconditionsV2 carries the full set of validity conditions
type PreconditionsV2 struct {
	TimeBounds      *TimeBounds
	LedgerBounds    *LedgerBounds
	MinSeqNum       *xdr.SequenceNumber
	MinSeqAge       xdr.Duration
	MinSeqLedgerGap uint32
	ExtraSigners    []xdr.SignerKey
}

func (p PreconditionsV2) EncodeXDR(e *xdr.Encoder) error {
	if err := xdr.EncodeOptional(e, p.TimeBounds); err != nil {
		return err
	}
	if err := xdr.EncodeOptional(e, p.LedgerBounds); err != nil {
		return err
	}
	if p.MinSeqNum != nil {
		e.WriteBool(true)
		e.WriteInt64(int64(*p.MinSeqNum))
	} else {
		e.WriteBool(false)
	}
	e.WriteUint64(uint64(p.MinSeqAge))
	e.WriteUint32(p.MinSeqLedgerGap)
	return xdr.EncodeVarArray(e, p.ExtraSigners, MaxExtraSigners)
}

func (p *PreconditionsV2) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if p.TimeBounds, err = xdr.DecodeOptional[TimeBounds](d); err != nil {
		return err
	}
	if p.LedgerBounds, err = xdr.DecodeOptional[LedgerBounds](d); err != nil {
		return err
	}
	present, err := d.ReadBool()
	if err != nil {
		return err
	}
	if present {
		v, err := d.ReadInt64()
		if err != nil {
			return err
		}
		seqNum := xdr.SequenceNumber(v)
		p.MinSeqNum = &seqNum
	}
	minSeqAge, err := d.ReadUint64()
	if err != nil {
		return err
	}
	p.MinSeqAge = xdr.Duration(minSeqAge)
	if p.MinSeqLedgerGap, err = d.ReadUint32(); err != nil {
		return err
	}
	p.ExtraSigners, err = xdr.DecodeVarArray[xdr.SignerKey](d, MaxExtraSigners)
	return err
}

// PreconditionType values
const (
	PreconditionTypeNone int32 = 0
	PreconditionTypeTime int32 = 1
	PreconditionTypeV2   int32 = 2
)

// Preconditions selects which validity conditions a transaction carries
type Preconditions struct {
	Type       int32
	TimeBounds *TimeBounds
	V2         *PreconditionsV2
}

// NewTimeBoundsPreconditions returns time-bounded preconditions
func NewTimeBoundsPreconditions(minTime, maxTime xdr.TimePoint) Preconditions {
	return Preconditions{
		Type:       PreconditionTypeTime,
		TimeBounds: &TimeBounds{MinTime: minTime, MaxTime: maxTime},
	}
}

func (p Preconditions) EncodeXDR(e *xdr.Encoder) error {
	switch p.Type {
	case PreconditionTypeNone:
		e.WriteInt32(p.Type)
		return nil
	case PreconditionTypeTime:
		if p.TimeBounds == nil {
			return &xdr.DiscriminantError{Type: "Preconditions", Value: p.Type}
		}
		e.WriteInt32(p.Type)
		return p.TimeBounds.EncodeXDR(e)
	case PreconditionTypeV2:
		if p.V2 == nil {
			return &xdr.DiscriminantError{Type: "Preconditions", Value: p.Type}
		}
		e.WriteInt32(p.Type)
		return p.V2.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "Preconditions", Value: p.Type}
	}
}

func (p *Preconditions) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	p.Type = t
	switch t {
	case PreconditionTypeNone:
		return nil
	case PreconditionTypeTime:
		p.TimeBounds = &TimeBounds{}
		return p.TimeBounds.DecodeXDR(d)
	case PreconditionTypeV2:
		p.V2 = &PreconditionsV2{}
		return p.V2.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "Preconditions", Value: t}
	}
}
