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

// Package gostellar ties the library together: it binds the REST and
// JSON-RPC clients to a named network so transactions are hashed, signed,
// and submitted against a consistent passphrase
package gostellar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumenlabs-io/gostellar/horizon"
	"github.com/lumenlabs-io/gostellar/keypair"
	"github.com/lumenlabs-io/gostellar/rpc"
	"github.com/lumenlabs-io/gostellar/transaction"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// ErrNoRPCURL is returned when an RPC operation is attempted on a network
// with no JSON-RPC endpoint configured
var ErrNoRPCURL = errors.New("no RPC URL configured for network")

// Client binds the gateway clients to one network
type Client struct {
	network    Network
	horizonURL string
	rpcURL     string
	logger     *slog.Logger
	httpClient *http.Client
	timeout    time.Duration

	Horizon *horizon.Client
	RPC     *rpc.Client
}

// New returns a Client for the configured network. Horizon is always
// available; RPC is nil when the network has no JSON-RPC endpoint
func New(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		network: NetworkTestnet,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.network == NetworkInvalid {
		return nil, errors.New("invalid network")
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.horizonURL == "" {
		c.horizonURL = c.network.HorizonURL
	}
	if c.rpcURL == "" {
		c.rpcURL = c.network.RPCURL
	}
	if c.horizonURL == "" {
		return nil, errors.New("no Horizon URL configured for network")
	}
	horizonOpts := []horizon.ClientOptionFunc{
		horizon.WithLogger(c.logger),
	}
	if c.httpClient != nil {
		horizonOpts = append(horizonOpts, horizon.WithHTTPClient(c.httpClient))
	}
	if c.timeout > 0 {
		horizonOpts = append(horizonOpts, horizon.WithTimeout(c.timeout))
	}
	c.Horizon = horizon.NewClient(c.horizonURL, horizonOpts...)
	if c.rpcURL != "" {
		rpcOpts := []rpc.ClientOptionFunc{
			rpc.WithLogger(c.logger),
		}
		if c.httpClient != nil {
			rpcOpts = append(rpcOpts, rpc.WithHTTPClient(c.httpClient))
		}
		if c.timeout > 0 {
			rpcOpts = append(rpcOpts, rpc.WithTimeout(c.timeout))
		}
		c.RPC = rpc.NewClient(c.rpcURL, rpcOpts...)
	}
	return c, nil
}

// Network returns the network the client targets
func (c *Client) Network() Network {
	return c.network
}

// HashTransaction returns the envelope's hash on the client's network
func (c *Client) HashTransaction(
	env *transaction.TransactionEnvelope,
) (xdr.Hash, error) {
	return env.Hash(c.network.Passphrase)
}

// SignTransaction signs the envelope for the client's network
func (c *Client) SignTransaction(
	env *transaction.TransactionEnvelope,
	keypairs ...*keypair.Full,
) error {
	return env.Sign(c.network.Passphrase, keypairs...)
}

// SubmitTransaction signs nothing; it submits the envelope as-is through
// the REST gateway and decodes the ingestion outcome
func (c *Client) SubmitTransaction(
	ctx context.Context,
	env transaction.TransactionEnvelope,
) (horizon.Transaction, error) {
	return c.Horizon.SubmitTransaction(ctx, env)
}

// SendTransaction submits the envelope through the JSON-RPC endpoint
func (c *Client) SendTransaction(
	ctx context.Context,
	env transaction.TransactionEnvelope,
) (rpc.SendTransactionResult, error) {
	if c.RPC == nil {
		return rpc.SendTransactionResult{}, ErrNoRPCURL
	}
	return c.RPC.SendTransaction(ctx, env)
}
