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
	"github.com/lumenlabs-io/gostellar/consensus"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// LedgerHeaderFlagDisableLiquidityPoolTradingFlag and friends gate pool
// operations network-wide
const (
	LedgerHeaderFlagDisableLiquidityPoolTrading    uint32 = 1
	LedgerHeaderFlagDisableLiquidityPoolDeposit    uint32 = 2
	LedgerHeaderFlagDisableLiquidityPoolWithdrawal uint32 = 4
)

// LedgerHeaderExtensionV1 adds network-wide flags
type LedgerHeaderExtensionV1 struct {
	Flags uint32
}

func (x LedgerHeaderExtensionV1) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint32(x.Flags)
	e.WriteInt32(0)
	return nil
}

func (x *LedgerHeaderExtensionV1) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if x.Flags, err = d.ReadUint32(); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "LedgerHeaderExtensionV1.Ext", Value: v}
	}
	return nil
}

// LedgerHeader summarizes one closed ledger: the consensus value that closed
// it, the state hashes, and the network parameters in force
type LedgerHeader struct {
	LedgerVersion      uint32
	PreviousLedgerHash xdr.Hash
	ScpValue           consensus.StellarValue
	TxSetResultHash    xdr.Hash
	BucketListHash     xdr.Hash
	LedgerSeq          uint32
	TotalCoins         int64
	FeePool            int64
	InflationSeq       uint32
	IDPool             uint64
	BaseFee            uint32
	BaseReserve        uint32
	MaxTxSetSize       uint32
	SkipList           [4]xdr.Hash
	V1                 *LedgerHeaderExtensionV1
}

func (h LedgerHeader) EncodeXDR(e *xdr.Encoder) error {
	e.WriteUint32(h.LedgerVersion)
	if err := h.PreviousLedgerHash.EncodeXDR(e); err != nil {
		return err
	}
	if err := h.ScpValue.EncodeXDR(e); err != nil {
		return err
	}
	if err := h.TxSetResultHash.EncodeXDR(e); err != nil {
		return err
	}
	if err := h.BucketListHash.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(h.LedgerSeq)
	e.WriteInt64(h.TotalCoins)
	e.WriteInt64(h.FeePool)
	e.WriteUint32(h.InflationSeq)
	e.WriteUint64(h.IDPool)
	e.WriteUint32(h.BaseFee)
	e.WriteUint32(h.BaseReserve)
	e.WriteUint32(h.MaxTxSetSize)
	for _, hash := range h.SkipList {
		if err := hash.EncodeXDR(e); err != nil {
			return err
		}
	}
	if h.V1 != nil {
		e.WriteInt32(1)
		return h.V1.EncodeXDR(e)
	}
	e.WriteInt32(0)
	return nil
}

func (h *LedgerHeader) DecodeXDR(d *xdr.Decoder) error {
	var err error
	if h.LedgerVersion, err = d.ReadUint32(); err != nil {
		return err
	}
	if err := h.PreviousLedgerHash.DecodeXDR(d); err != nil {
		return err
	}
	if err := h.ScpValue.DecodeXDR(d); err != nil {
		return err
	}
	if err := h.TxSetResultHash.DecodeXDR(d); err != nil {
		return err
	}
	if err := h.BucketListHash.DecodeXDR(d); err != nil {
		return err
	}
	if h.LedgerSeq, err = d.ReadUint32(); err != nil {
		return err
	}
	if h.TotalCoins, err = d.ReadInt64(); err != nil {
		return err
	}
	if h.FeePool, err = d.ReadInt64(); err != nil {
		return err
	}
	if h.InflationSeq, err = d.ReadUint32(); err != nil {
		return err
	}
	if h.IDPool, err = d.ReadUint64(); err != nil {
		return err
	}
	if h.BaseFee, err = d.ReadUint32(); err != nil {
		return err
	}
	if h.BaseReserve, err = d.ReadUint32(); err != nil {
		return err
	}
	if h.MaxTxSetSize, err = d.ReadUint32(); err != nil {
		return err
	}
	for i := range h.SkipList {
		if err := h.SkipList[i].DecodeXDR(d); err != nil {
			return err
		}
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	switch v {
	case 0:
		return nil
	case 1:
		h.V1 = &LedgerHeaderExtensionV1{}
		return h.V1.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "LedgerHeader.Ext", Value: v}
	}
}
