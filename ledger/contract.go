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

package ledger

import (
	"math"

	"github.com/lumenlabs-io/gostellar/contract"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// ContractDataDurability values
const (
	ContractDataTemporary  int32 = 0
	ContractDataPersistent int32 = 1
)

// ContractDataEntry is one key/value pair of contract storage
type ContractDataEntry struct {
	Ext        xdr.ExtensionPoint
	Contract   contract.ScAddress
	Key        contract.ScVal
	Durability int32
	Val        contract.ScVal
}

func (c ContractDataEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := c.Ext.EncodeXDR(e); err != nil {
		return err
	}
	if err := c.Contract.EncodeXDR(e); err != nil {
		return err
	}
	if err := c.Key.EncodeXDR(e); err != nil {
		return err
	}
	switch c.Durability {
	case ContractDataTemporary, ContractDataPersistent:
		e.WriteInt32(c.Durability)
	default:
		return &xdr.DiscriminantError{
			Type:  "ContractDataEntry.Durability",
			Value: c.Durability,
		}
	}
	return c.Val.EncodeXDR(e)
}

func (c *ContractDataEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := c.Ext.DecodeXDR(d); err != nil {
		return err
	}
	if err := c.Contract.DecodeXDR(d); err != nil {
		return err
	}
	if err := c.Key.DecodeXDR(d); err != nil {
		return err
	}
	durability, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch durability {
	case ContractDataTemporary, ContractDataPersistent:
		c.Durability = durability
	default:
		return &xdr.DiscriminantError{
			Type:  "ContractDataEntry.Durability",
			Value: durability,
		}
	}
	return c.Val.DecodeXDR(d)
}

// ContractCodeEntry is an uploaded contract Wasm blob, addressed by its hash
type ContractCodeEntry struct {
	Ext  xdr.ExtensionPoint
	Hash xdr.Hash
	Code []byte
}

func (c ContractCodeEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := c.Ext.EncodeXDR(e); err != nil {
		return err
	}
	if err := c.Hash.EncodeXDR(e); err != nil {
		return err
	}
	return e.WriteOpaque(c.Code, math.MaxUint32)
}

func (c *ContractCodeEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := c.Ext.DecodeXDR(d); err != nil {
		return err
	}
	if err := c.Hash.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	c.Code, err = d.ReadOpaque(math.MaxUint32)
	return err
}

// TtlEntry records how long the contract state behind a key hash lives
type TtlEntry struct {
	KeyHash            xdr.Hash
	LiveUntilLedgerSeq uint32
}

func (t TtlEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := t.KeyHash.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(t.LiveUntilLedgerSeq)
	return nil
}

func (t *TtlEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := t.KeyHash.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	t.LiveUntilLedgerSeq, err = d.ReadUint32()
	return err
}
