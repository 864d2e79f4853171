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

// Package consensus provides the wire types of the federated agreement
// protocol: ballots, nomination and ballot-phase statements, signed
// statement envelopes, and quorum set descriptions
package consensus

import (
	"fmt"
	"math"

	"github.com/lumenlabs-io/gostellar/xdr"
)

// Value is an opaque candidate value nodes vote on
type Value []byte

func (v Value) EncodeXDR(e *xdr.Encoder) error {
	return e.WriteOpaque(v, math.MaxUint32)
}

func (v *Value) DecodeXDR(d *xdr.Decoder) error {
	data, err := d.ReadOpaque(math.MaxUint32)
	if err != nil {
		return err
	}
	*v = data
	return nil
}

// ScpBallot pairs a ballot counter with the value being balloted
type ScpBallot struct {
	Counter uint32
	Value   Value
}

func (b ScpBallot) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint32(b.Counter)
	return b.Value.EncodeXDR(e)
}

func (b *ScpBallot) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if b.Counter, err = d.ReadUint32(); err != nil {
		return err
	}
	return b.Value.DecodeXDR(d)
}

// ScpNomination carries the values a node has voted for and accepted as
// nomination candidates
type ScpNomination struct {
	QuorumSetHash xdr.Hash
	Votes         []Value
	Accepted      []Value
}

func (n ScpNomination) EncodeXDR(e *xdr.Encoder) error {
	if err := n.QuorumSetHash.EncodeXDR(e); err != nil {
		return err
	}
	if err := xdr.EncodeVarArray(e, n.Votes, math.MaxUint32); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, n.Accepted, math.MaxUint32)
}

func (n *ScpNomination) DecodeXDR(d *xdr.Decoder) error {
	if err := n.QuorumSetHash.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if n.Votes, err = xdr.DecodeVarArray[Value](d, math.MaxUint32); err != nil {
		return err
	}
	n.Accepted, err = xdr.DecodeVarArray[Value](d, math.MaxUint32)
	return err
}

// ScpStatementPrepare is the ballot-phase prepare pledge
type ScpStatementPrepare struct {
	QuorumSetHash xdr.Hash
	Ballot        ScpBallot
	Prepared      *ScpBallot
	PreparedPrime *ScpBallot
	NC            uint32
	NH            uint32
}

func (p ScpStatementPrepare) EncodeXDR(e *xdr.Encoder) error {
	if err := p.QuorumSetHash.EncodeXDR(e); err != nil {
		return err
	}
	if err := p.Ballot.EncodeXDR(e); err != nil {
		return err
	}
	if err := xdr.EncodeOptional(e, p.Prepared); err != nil {
		return err
	}
	if err := xdr.EncodeOptional(e, p.PreparedPrime); err != nil {
		return err
	}
	e.WriteUint32(p.NC)
	e.WriteUint32(p.NH)
	return nil
}

func (p *ScpStatementPrepare) DecodeXDR(d *xdr.Decoder) error {
	if err := p.QuorumSetHash.DecodeXDR(d); err != nil {
		return err
	}
	if err := p.Ballot.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if p.Prepared, err = xdr.DecodeOptional[ScpBallot](d); err != nil {
		return err
	}
	if p.PreparedPrime, err = xdr.DecodeOptional[ScpBallot](d); err != nil {
		return err
	}
	if p.NC, err = d.ReadUint32(); err != nil {
		return err
	}
	p.NH, err = d.ReadUint32()
	return err
}

// ScpStatementConfirm is the ballot-phase confirm pledge
type ScpStatementConfirm struct {
	Ballot        ScpBallot
	NPrepared     uint32
	NCommit       uint32
	NH            uint32
	QuorumSetHash xdr.Hash
}

func (c ScpStatementConfirm) EncodeXDR(e *xdr.Encoder) error {
	if err := c.Ballot.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(c.NPrepared)
	e.WriteUint32(c.NCommit)
	e.WriteUint32(c.NH)
	return c.QuorumSetHash.EncodeXDR(e)
}

func (c *ScpStatementConfirm) DecodeXDR(d *xdr.Decoder) error {
	if err := c.Ballot.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if c.NPrepared, err = d.ReadUint32(); err != nil {
		return err
	}
	if c.NCommit, err = d.ReadUint32(); err != nil {
		return err
	}
	if c.NH, err = d.ReadUint32(); err != nil {
		return err
	}
	return c.QuorumSetHash.DecodeXDR(d)
}

// ScpStatementExternalize is the terminal pledge fixing the agreed value
type ScpStatementExternalize struct {
	Commit              ScpBallot
	NH                  uint32
	CommitQuorumSetHash xdr.Hash
}

func (x ScpStatementExternalize) EncodeXDR(e *xdr.Encoder) error {
	if err := x.Commit.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(x.NH)
	return x.CommitQuorumSetHash.EncodeXDR(e)
}

func (x *ScpStatementExternalize) DecodeXDR(d *xdr.Decoder) error {
	if err := x.Commit.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if x.NH, err = d.ReadUint32(); err != nil {
		return err
	}
	return x.CommitQuorumSetHash.DecodeXDR(d)
}

// ScpStatementType values
const (
	ScpStatementTypePrepare     int32 = 0
	ScpStatementTypeConfirm     int32 = 1
	ScpStatementTypeExternalize int32 = 2
	ScpStatementTypeNominate    int32 = 3
)

// ScpStatement is one pledge by one node for one consensus slot
type ScpStatement struct {
	NodeID      xdr.NodeID
	SlotIndex   uint64
	Type        int32
	Prepare     *ScpStatementPrepare
	Confirm     *ScpStatementConfirm
	Externalize *ScpStatementExternalize
	Nominate    *ScpNomination
}

func (s ScpStatement) EncodeXDR(e *xdr.Encoder) error {
	if err := s.NodeID.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint64(s.SlotIndex)
	switch s.Type {
	case ScpStatementTypePrepare:
		if s.Prepare == nil {
			return fmt.Errorf("prepare statement has no pledge")
		}
		e.WriteInt32(s.Type)
		return s.Prepare.EncodeXDR(e)
	case ScpStatementTypeConfirm:
		if s.Confirm == nil {
			return fmt.Errorf("confirm statement has no pledge")
		}
		e.WriteInt32(s.Type)
		return s.Confirm.EncodeXDR(e)
	case ScpStatementTypeExternalize:
		if s.Externalize == nil {
			return fmt.Errorf("externalize statement has no pledge")
		}
		e.WriteInt32(s.Type)
		return s.Externalize.EncodeXDR(e)
	case ScpStatementTypeNominate:
		if s.Nominate == nil {
			return fmt.Errorf("nominate statement has no pledge")
		}
		e.WriteInt32(s.Type)
		return s.Nominate.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "ScpStatement", Value: s.Type}
	}
}

func (s *ScpStatement) DecodeXDR(d *xdr.Decoder) error {
	if err := s.NodeID.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if s.SlotIndex, err = d.ReadUint64(); err != nil {
		return err
	}
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	s.Type = t
	switch t {
	case ScpStatementTypePrepare:
		s.Prepare = &ScpStatementPrepare{}
		return s.Prepare.DecodeXDR(d)
	case ScpStatementTypeConfirm:
		s.Confirm = &ScpStatementConfirm{}
		return s.Confirm.DecodeXDR(d)
	case ScpStatementTypeExternalize:
		s.Externalize = &ScpStatementExternalize{}
		return s.Externalize.DecodeXDR(d)
	case ScpStatementTypeNominate:
		s.Nominate = &ScpNomination{}
		return s.Nominate.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "ScpStatement", Value: t}
	}
}

// ScpEnvelope is a statement signed by the node that issued it
type ScpEnvelope struct {
	Statement ScpStatement
	Signature xdr.Signature
}

func (env ScpEnvelope) EncodeXDR(e *xdr.Encoder) error {
	if err := env.Statement.EncodeXDR(e); err != nil {
		return err
	}
	return env.Signature.EncodeXDR(e)
}

func (env *ScpEnvelope) DecodeXDR(d *xdr.Decoder) error {
	if err := env.Statement.DecodeXDR(d); err != nil {
		return err
	}
	return env.Signature.DecodeXDR(d)
}

// ScpQuorumSet is a recursive threshold structure: agreement requires
// threshold many of the validators and inner sets combined
type ScpQuorumSet struct {
	Threshold  uint32
	Validators []xdr.NodeID
	InnerSets  []ScpQuorumSet
}

func (q ScpQuorumSet) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint32(q.Threshold)
	if err := xdr.EncodeVarArray(e, q.Validators, math.MaxUint32); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, q.InnerSets, math.MaxUint32)
}

func (q *ScpQuorumSet) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if q.Threshold, err = d.ReadUint32(); err != nil {
		return err
	}
	if q.Validators, err = xdr.DecodeVarArray[xdr.NodeID](d, math.MaxUint32); err != nil {
		return err
	}
	q.InnerSets, err = xdr.DecodeVarArray[ScpQuorumSet](d, math.MaxUint32)
	return err
}

// MaxQuorumSetDepth is the maximum nesting depth of a sane quorum set
const MaxQuorumSetDepth = 4

// IsSane reports whether the quorum set is well formed: every threshold is
// between 1 and the number of members at that level, and nesting stays
// within MaxQuorumSetDepth
func (q ScpQuorumSet) IsSane() bool {
	return q.isSane(1)
}

func (q ScpQuorumSet) isSane(depth int) bool {
	if depth > MaxQuorumSetDepth {
		return false
	}
	members := len(q.Validators) + len(q.InnerSets)
	if q.Threshold < 1 || int(q.Threshold) > members {
		return false
	}
	for _, inner := range q.InnerSets {
		if !inner.isSane(depth + 1) {
			return false
		}
	}
	return true
}
