// Copyright 2025 Lumen Labs Software
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

package contract

import (
	"fmt"
	"math"

	"github.com/lumenlabs-io/gostellar/xdr"
)

// InvokeContractArgs names a contract function and its arguments
type InvokeContractArgs struct {
	ContractAddress ScAddress
	FunctionName    ScSymbol
	Args            []ScVal
}

func (a InvokeContractArgs) EncodeXDR(e *xdr.Encoder) error {
	if err := a.ContractAddress.EncodeXDR(e); err != nil {
		return err
	}
	if err := a.FunctionName.EncodeXDR(e); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, a.Args, math.MaxUint32)
}

func (a *InvokeContractArgs) DecodeXDR(d *xdr.Decoder) error {
	if err := a.ContractAddress.DecodeXDR(d); err != nil {
		return err
	}
	if err := a.FunctionName.DecodeXDR(d); err != nil {
		return err
	}
	args, err := xdr.DecodeVarArray[ScVal](d, math.MaxUint32)
	if err != nil {
		return err
	}
	a.Args = args
	return nil
}

// HostFunctionType values
const (
	HostFunctionTypeInvokeContract int32 = 0
	HostFunctionTypeUploadWasm     int32 = 2
)

// HostFunction selects the host operation an invocation performs
type HostFunction struct {
	Type           int32
	InvokeContract *InvokeContractArgs
	Wasm           []byte
}

func (f HostFunction) EncodeXDR(e *xdr.Encoder) error {
	switch f.Type {
	case HostFunctionTypeInvokeContract:
		if f.InvokeContract == nil {
			return fmt.Errorf("invoke host function has no arguments")
		}
		e.WriteInt32(f.Type)
		return f.InvokeContract.EncodeXDR(e)
	case HostFunctionTypeUploadWasm:
		e.WriteInt32(f.Type)
		return e.WriteOpaque(f.Wasm, math.MaxUint32)
	default:
		return &xdr.DiscriminantError{Type: "HostFunction", Value: f.Type}
	}
}

func (f *HostFunction) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	f.Type = t
	switch t {
	case HostFunctionTypeInvokeContract:
		f.InvokeContract = &InvokeContractArgs{}
		return f.InvokeContract.DecodeXDR(d)
	case HostFunctionTypeUploadWasm:
		wasm, err := d.ReadOpaque(math.MaxUint32)
		if err != nil {
			return err
		}
		f.Wasm = wasm
		return nil
	default:
		return &xdr.DiscriminantError{Type: "HostFunction", Value: t}
	}
}

// SorobanAuthorizedFunctionType values
const (
	SorobanAuthorizedFunctionTypeContractFn int32 = 0
)

// SorobanAuthorizedFunction is the function an authorization entry covers
type SorobanAuthorizedFunction struct {
	Type       int32
	ContractFn *InvokeContractArgs
}

func (f SorobanAuthorizedFunction) EncodeXDR(e *xdr.Encoder) error {
	switch f.Type {
	case SorobanAuthorizedFunctionTypeContractFn:
		if f.ContractFn == nil {
			return fmt.Errorf("authorized function has no arguments")
		}
		e.WriteInt32(f.Type)
		return f.ContractFn.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{
			Type:  "SorobanAuthorizedFunction",
			Value: f.Type,
		}
	}
}

func (f *SorobanAuthorizedFunction) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	f.Type = t
	switch t {
	case SorobanAuthorizedFunctionTypeContractFn:
		f.ContractFn = &InvokeContractArgs{}
		return f.ContractFn.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{
			Type:  "SorobanAuthorizedFunction",
			Value: t,
		}
	}
}

// SorobanAuthorizedInvocation is a call tree of authorized invocations.
// Depth is bounded by the protocol, so plain recursion is fine
type SorobanAuthorizedInvocation struct {
	Function       SorobanAuthorizedFunction
	SubInvocations []SorobanAuthorizedInvocation
}

func (i SorobanAuthorizedInvocation) EncodeXDR(e *xdr.Encoder) error {
	if err := i.Function.EncodeXDR(e); err != nil {
		return err
	}
	return xdr.EncodeVarArray(e, i.SubInvocations, math.MaxUint32)
}

func (i *SorobanAuthorizedInvocation) DecodeXDR(d *xdr.Decoder) error {
	if err := i.Function.DecodeXDR(d); err != nil {
		return err
	}
	subs, err := xdr.DecodeVarArray[SorobanAuthorizedInvocation](
		d,
		math.MaxUint32,
	)
	if err != nil {
		return err
	}
	i.SubInvocations = subs
	return nil
}

// SorobanCredentialsType values
const (
	SorobanCredentialsTypeSourceAccount int32 = 0
	SorobanCredentialsTypeAddress       int32 = 1
)

// SorobanAddressCredentials authorizes an invocation with an address
// signature
type SorobanAddressCredentials struct {
	Address                   ScAddress
	Nonce                     int64
	SignatureExpirationLedger uint32
	Signature                 ScVal
}

func (c SorobanAddressCredentials) EncodeXDR(e *xdr.Encoder) error {
	if err := c.Address.EncodeXDR(e); err != nil {
		return err
	}
	e.WriteInt64(c.Nonce)
	e.WriteUint32(c.SignatureExpirationLedger)
	return c.Signature.EncodeXDR(e)
}

func (c *SorobanAddressCredentials) DecodeXDR(d *xdr.Decoder) error {
	if err := c.Address.DecodeXDR(d); err != nil {
		return err
	}
	var err error
	if c.Nonce, err = d.ReadInt64(); err != nil {
		return err
	}
	if c.SignatureExpirationLedger, err = d.ReadUint32(); err != nil {
		return err
	}
	return c.Signature.DecodeXDR(d)
}

// SorobanCredentials selects how an authorization entry is authorized
type SorobanCredentials struct {
	Type    int32
	Address *SorobanAddressCredentials
}

func (c SorobanCredentials) EncodeXDR(e *xdr.Encoder) error {
	switch c.Type {
	case SorobanCredentialsTypeSourceAccount:
		e.WriteInt32(c.Type)
		return nil
	case SorobanCredentialsTypeAddress:
		if c.Address == nil {
			return fmt.Errorf("address credentials have no payload")
		}
		e.WriteInt32(c.Type)
		return c.Address.EncodeXDR(e)
	default:
		return &xdr.DiscriminantError{Type: "SorobanCredentials", Value: c.Type}
	}
}

func (c *SorobanCredentials) DecodeXDR(d *xdr.Decoder) error {
	t, err := d.ReadInt32()
	if err != nil {
		return err
	}
	c.Type = t
	switch t {
	case SorobanCredentialsTypeSourceAccount:
		return nil
	case SorobanCredentialsTypeAddress:
		c.Address = &SorobanAddressCredentials{}
		return c.Address.DecodeXDR(d)
	default:
		return &xdr.DiscriminantError{Type: "SorobanCredentials", Value: t}
	}
}

// SorobanAuthorizationEntry authorizes a tree of invocations
type SorobanAuthorizationEntry struct {
	Credentials    SorobanCredentials
	RootInvocation SorobanAuthorizedInvocation
}

func (a SorobanAuthorizationEntry) EncodeXDR(e *xdr.Encoder) error {
	if err := a.Credentials.EncodeXDR(e); err != nil {
		return err
	}
	return a.RootInvocation.EncodeXDR(e)
}

func (a *SorobanAuthorizationEntry) DecodeXDR(d *xdr.Decoder) error {
	if err := a.Credentials.DecodeXDR(d); err != nil {
		return err
	}
	return a.RootInvocation.DecodeXDR(d)
}
