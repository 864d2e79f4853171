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
	"fmt"
	"math"

	"github.com/lumenlabs-io/gostellar/xdr"
)

// LedgerEntryChangeType values
const (
	EntryChangeCreated int32 = 0
	EntryChangeUpdated int32 = 1
	EntryChangeRemoved int32 = 2
	EntryChangeState   int32 = 3
)

// LedgerEntryChange is one mutation of the ledger observed while applying a
// transaction. Created, updated, and state changes carry the full entry;
// removals carry only the key
type LedgerEntryChange struct {
	Type    int32
	Created *LedgerEntry
	Updated *LedgerEntry
	Removed *LedgerKey
	State   *LedgerEntry
}

func (c LedgerEntryChange) EncodeXDR(e *xdr.Encoder) error {
	switch c.Type {
	case EntryChangeCreated:
		if c.Created == nil {
			return fmt.Errorf("created change has no entry")
		}
		e.WriteInt32(c.Type)
		return c.Created.EncodeXDR(e)
	case EntryChangeUpdated:
		if c.Updated == nil {
			return fmt.Errorf("updated change has no entry")
		}
		e.WriteInt32(c.Type)
		return c.Updated.EncodeXDR(e)
	case EntryChangeRemoved:
		if c.Removed == nil {
			return fmt.Errorf("removed change has no key")
		}
		e.WriteInt32(c.Type)
		return c.Removed.EncodeXDR(e)
	case EntryChangeState:
		if c.State == nil {
			return fmt.Errorf("state change has no entry")
		}
		e.WriteInt32(c.Type)
		return c.State.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "LedgerEntryChange", Value: c.Type}
	}
}

func (c *LedgerEntryChange) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	c.Type = t
	switch t {
	case EntryChangeCreated:
		c.Created = &LedgerEntry{}
		return c.Created.DecodeXDR(d)
	case EntryChangeUpdated:
		c.Updated = &LedgerEntry{}
		return c.Updated.DecodeXDR(d)
	case EntryChangeRemoved:
		c.Removed = &LedgerKey{}
		return c.Removed.DecodeXDR(d)
	case EntryChangeState:
		c.State = &LedgerEntry{}
		return c.State.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "LedgerEntryChange", Value: t}
	}
}

// LedgerEntryChanges is an ordered list of ledger mutations
type LedgerEntryChanges []LedgerEntryChange

func (c LedgerEntryChanges) EncodeXDR(e *xdr.Encoder) error {
	return xdr.EncodeVarArray(e, c, math.MaxUint32)
}

func (c *LedgerEntryChanges) DecodeXDR(d *xdr.Decoder) error {
	changes, err := xdr.DecodeVarArray[LedgerEntryChange](d, math.MaxUint32)
	if err != nil {
		return err
	}
	*c = changes
	return nil
}
