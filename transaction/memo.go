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

// MaxMemoTextLength is the maximum length of a text memo in bytes
const MaxMemoTextLength = 28

// MemoType values
const (
	MemoTypeNone   int32 = 0
	MemoTypeText   int32 = 1
	MemoTypeID     int32 = 2
	MemoTypeHash   int32 = 3
	MemoTypeReturn int32 = 4
)

// Memo attaches a small piece of out-of-band routing information to a
// transaction
type Memo struct {
	Type    int32
	Text    string
	ID      uint64
	Hash    xdr.Hash
	RetHash xdr.Hash
}

// MemoNone returns an empty memo
func MemoNone() Memo {
	return Memo{Type: MemoTypeNone}
}

// MemoText returns a text memo. The text must be at most 28 bytes
func MemoText(text string) Memo {
	return Memo{Type: MemoTypeText, Text: text}
}

// MemoID returns an id memo
func MemoID(id uint64) Memo {
	return Memo{Type: MemoTypeID, ID: id}
}

// MemoHash returns a hash memo
func MemoHash(hash xdr.Hash) Memo {
	return Memo{Type: MemoTypeHash, Hash: hash}
}

// MemoReturn returns a return-hash memo, referencing the transaction being
// refunded
func MemoReturn(hash xdr.Hash) Memo {
	return Memo{Type: MemoTypeReturn, RetHash: hash}
}

func (m Memo) EncodeXDR(e *xdr.Encoder) error {
	switch m.Type {
	case MemoTypeNone:
		e.WriteInt32(m.Type)
		return nil
	case MemoTypeText:
		e.WriteInt32(m.Type)
		return e.WriteString(m.Text, MaxMemoTextLength)
	case MemoTypeID:
		e.WriteInt32(m.Type)
		e.WriteUint64(m.ID)
		return nil
	case MemoTypeHash:
		e.WriteInt32(m.Type)
		return m.Hash.EncodeXDR(e)
	case MemoTypeReturn:
		e.WriteInt32(m.Type)
		return m.RetHash.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "Memo", Value: m.Type}
	}
}

func (m *Memo) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	m.Type = t
	switch t {
	case MemoTypeNone:
		return nil
	case MemoTypeText:
		m.Text, err = d.ReadString(MaxMemoTextLength)
		return err
	case MemoTypeID:
		m.ID, err = d.ReadUint64()
		return err
	case MemoTypeHash:
		return m.Hash.DecodeXDR(d)
	case MemoTypeReturn:
		return m.RetHash.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "Memo", Value: t}
	}
}
