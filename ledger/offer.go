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

import "github.com/lumenlabs-io/gostellar/xdr"

const (
	// OfferFlagPassive marks an offer that does not cross an offer at the
	// same price
	OfferFlagPassive uint32 = 1
)

// OfferEntry is an open order on the distributed exchange
type OfferEntry struct {
	SellerID xdr.AccountID
	OfferID  int64
	Selling  xdr.Asset
	Buying   xdr.Asset
	Amount   int64
	Price    xdr.Price
	Flags    uint32
}

func (o OfferEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := o.SellerID.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(o.OfferID)
	if err := o.Selling.EncodeXDR(e); err != nil {
		return err
	}
	if err := o.Buying.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(o.Amount)
	if err := o.Price.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteUint32(o.Flags)
	// Reserved extension slot
	e.WriteInt32(0)
	return nil
}

func (o *OfferEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := o.SellerID.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if o.OfferID, err = d.ReadInt64(); err != nil {
		return err
	}
	if err := o.Selling.DecodeXDR(d); err != nil {
		return err
	}
	if err := o.Buying.DecodeXDR(d); err != nil {
		return err
	}
	if o.Amount, err = d.ReadInt64(); err != nil {
		return err
	}
	if err := o.Price.DecodeXDR(d); err != nil {
		return err
	}
	if o.Flags, err = d.ReadUint32(); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "OfferEntry.Ext", Value: v}
	}
	return nil
}

// DataEntry is a named piece of arbitrary data attached to an account
type DataEntry struct {
	AccountID xdr.AccountID
	DataName  xdr.String64
	DataValue xdr.DataValue
}

func (de DataEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := de.AccountID.EncodeXDR(e); err != nil {
		return err
	}
	if err := de.DataName.EncodeXDR(e); err != nil {
		return err
	}
	if err := de.DataValue.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt32(0)
	return nil
}

func (de *DataEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := de.AccountID.DecodeXDR(d); err != nil {
		return err
	}
	if err := de.DataName.DecodeXDR(d); err != nil {
		return err
	}
	if err := de.DataValue.DecodeXDR(d); err != nil {
		return err
	}
	v, err := d.ReadInt32()
	if err != nil {
		return err
	}
	if v != 0 {
		return &xdr.DiscriminantError{Type: "DataEntry.Ext", Value: v}
	}
	return nil
}
