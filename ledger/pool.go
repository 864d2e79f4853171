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

	"github.com/lumenlabs-io/gostellar/xdr"
)

// LiquidityPoolFeeV18 is the trading fee of v18 constant-product pools, in
// basis points
const LiquidityPoolFeeV18 int32 = 30

// LiquidityPoolType values
const (
	LiquidityPoolTypeConstantProduct int32 = 0
)

// LiquidityPoolConstantProductParameters fixes the asset pair and fee of a
// constant-product pool
type LiquidityPoolConstantProductParameters struct {
	AssetA xdr.Asset
	AssetB xdr.Asset
	Fee    int32
}

func (p LiquidityPoolConstantProductParameters) EncodeXDR(e *xdr.Encoder) error {
	if err := p.AssetA.EncodeXDR(e); err != nil {
		return err
	}
	if err := p.AssetB.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt32(p.Fee)
	return nil
}

func (p *LiquidityPoolConstantProductParameters) DecodeXDR(d *xdr.Decoder) error {
	if err := p.AssetA.DecodeXDR(d); err != nil {
		return err
	}
	if err := p.AssetB.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	p.Fee, err = d.ReadInt32()
	return err
}

// LiquidityPoolConstantProduct is the state of a constant-product pool
type LiquidityPoolConstantProduct struct {
	Params                   LiquidityPoolConstantProductParameters
	ReserveA                 int64
	ReserveB                 int64
	TotalPoolShares          int64
	PoolSharesTrustLineCount int64
}

func (p LiquidityPoolConstantProduct) EncodeXDR(e *xdr.Encoder) error {
	if err := p.Params.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(p.ReserveA)
	e.WriteInt64(p.ReserveB)
	e.WriteInt64(p.TotalPoolShares)
	e.WriteInt64(p.PoolSharesTrustLineCount)
	return nil
}

func (p *LiquidityPoolConstantProduct) DecodeXDR(d *xdr.Decoder) error {
	if err := p.Params.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if p.ReserveA, err = d.ReadInt64(); err != nil {
		return err
	}
	if p.ReserveB, err = d.ReadInt64(); err != nil {
		return err
	}
	if p.TotalPoolShares, err = d.ReadInt64(); err != nil {
		return err
	}
	p.PoolSharesTrustLineCount, err = d.ReadInt64()
	return err
}

// LiquidityPoolEntry is the ledger state of one liquidity pool
type LiquidityPoolEntry struct {
	LiquidityPoolID xdr.PoolID
	Type            int32
	ConstantProduct *LiquidityPoolConstantProduct
}

func (l LiquidityPoolEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := l.LiquidityPoolID.EncodeXDR(e); err != nil {
		return err
	}
	switch l.Type {
	case LiquidityPoolTypeConstantProduct:
		if l.ConstantProduct == nil {
			return fmt.Errorf("constant product pool has no body")
		}
		e.WriteInt32(l.Type)
		return l.ConstantProduct.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "LiquidityPoolEntry", Value: l.Type}
	}
}

func (l *LiquidityPoolEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := l.LiquidityPoolID.DecodeXDR(d); err != nil {
		return err
	}
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	l.Type = t
	switch t {
	case LiquidityPoolTypeConstantProduct:
		l.ConstantProduct = &LiquidityPoolConstantProduct{}
		return l.ConstantProduct.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "LiquidityPoolEntry", Value: t}
	}
}
