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

// Package rpc provides a client for the JSON-RPC interface of contract-aware
// nodes: ledger entry lookups, transaction submission and polling, and
// invocation simulation
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lumenlabs-io/gostellar/ledger"
	"github.com/lumenlabs-io/gostellar/transaction"
	"github.com/lumenlabs-io/gostellar/xdr"
)

const defaultTimeout = 30 * time.Second

// Client talks to one node's JSON-RPC endpoint
type Client struct {
	http   *resty.Client
	logger *slog.Logger
	nextID atomic.Uint64
}

// ClientOptionFunc configures a Client
type ClientOptionFunc func(*Client)

// WithHTTPClient specifies the HTTP client to use for requests
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.http = resty.NewWithClient(httpClient)
	}
}

// WithTimeout specifies the per-request timeout
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithLogger specifies the logger to use. Defaults to slog.Default()
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client for the node at the given URL
func NewClient(serverURL string, opts ...ClientOptionFunc) *Client {
	c := &Client{
		http: resty.New().SetTimeout(defaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.http.SetBaseURL(serverURL)
	return c
}

type rpcRequest struct {
	JsonRpc string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JsonRpc string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) call(
	ctx context.Context,
	method string,
	params any,
	result any,
) error {
	req := rpcRequest{
		JsonRpc: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}
	c.logger.Debug(
		"calling rpc method",
		"component", "rpc",
		"method", method,
		"id", req.ID,
	)
	var rpcResp rpcResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&rpcResp).
		Post("")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("rpc transport error: status %d", resp.StatusCode())
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if result != nil {
		return json.Unmarshal(rpcResp.Result, result)
	}
	return nil
}

// LatestLedger is the node's view of the most recently closed ledger
type LatestLedger struct {
	ID              string `json:"id"`
	ProtocolVersion int32  `json:"protocolVersion"`
	Sequence        uint32 `json:"sequence"`
}

// GetLatestLedger fetches the most recently closed ledger the node knows of
func (c *Client) GetLatestLedger(ctx context.Context) (LatestLedger, error) {
	var result LatestLedger
	if err := c.call(ctx, "getLatestLedger", nil, &result); err != nil {
		return LatestLedger{}, err
	}
	return result, nil
}

// LedgerEntryResult is one fetched ledger entry in wire form
type LedgerEntryResult struct {
	Key                string  `json:"key"`
	Xdr                string  `json:"xdr"`
	LastModifiedLedger uint32  `json:"lastModifiedLedgerSeq"`
	LiveUntilLedger    *uint32 `json:"liveUntilLedgerSeq,omitempty"`
}

// Entry decodes the wire form of the fetched entry
func (r *LedgerEntryResult) Entry() (ledger.LedgerEntryData, error) {
	var data ledger.LedgerEntryData
	if err := xdr.UnmarshalBase64(r.Xdr, &data); err != nil {
		return ledger.LedgerEntryData{}, err
	}
	return data, nil
}

// LedgerEntriesResult is the response to a ledger entry lookup
type LedgerEntriesResult struct {
	Entries      []LedgerEntryResult `json:"entries"`
	LatestLedger uint32              `json:"latestLedger"`
}

// GetLedgerEntries fetches current ledger entries by key
func (c *Client) GetLedgerEntries(
	ctx context.Context,
	keys ...ledger.LedgerKey,
) (LedgerEntriesResult, error) {
	encoded := make([]string, 0, len(keys))
	for _, key := range keys {
		b64, err := xdr.MarshalBase64(key)
		if err != nil {
			return LedgerEntriesResult{}, fmt.Errorf("encode ledger key: %w", err)
		}
		encoded = append(encoded, b64)
	}
	params := map[string]any{"keys": encoded}
	var result LedgerEntriesResult
	if err := c.call(ctx, "getLedgerEntries", params, &result); err != nil {
		return LedgerEntriesResult{}, err
	}
	return result, nil
}

// SendTransactionResult is the response to a transaction submission
type SendTransactionResult struct {
	Hash                  string   `json:"hash"`
	Status                string   `json:"status"`
	LatestLedger          uint32   `json:"latestLedger"`
	LatestLedgerCloseTime int64    `json:"latestLedgerCloseTime,string"`
	ErrorResultXdr        string   `json:"errorResultXdr,omitempty"`
	DiagnosticEventsXdr   []string `json:"diagnosticEventsXdr,omitempty"`
}

// SendTransaction submits an envelope. The node answers as soon as the
// transaction is queued; use GetTransaction to poll for the outcome
func (c *Client) SendTransaction(
	ctx context.Context,
	env transaction.TransactionEnvelope,
) (SendTransactionResult, error) {
	envelopeXdr, err := xdr.MarshalBase64(env)
	if err != nil {
		return SendTransactionResult{}, fmt.Errorf("encode envelope: %w", err)
	}
	params := map[string]any{"transaction": envelopeXdr}
	var result SendTransactionResult
	if err := c.call(ctx, "sendTransaction", params, &result); err != nil {
		return SendTransactionResult{}, err
	}
	return result, nil
}

// Transaction status values
const (
	TransactionStatusSuccess  = "SUCCESS"
	TransactionStatusNotFound = "NOT_FOUND"
	TransactionStatusFailed   = "FAILED"
)

// GetTransactionResult is the node's view of one submitted transaction
type GetTransactionResult struct {
	Status           string `json:"status"`
	LatestLedger     uint32 `json:"latestLedger"`
	Ledger           uint32 `json:"ledger,omitempty"`
	CreatedAt        int64  `json:"createdAt,string,omitempty"`
	EnvelopeXdr      string `json:"envelopeXdr,omitempty"`
	ResultXdr        string `json:"resultXdr,omitempty"`
	ResultMetaXdr    string `json:"resultMetaXdr,omitempty"`
	ApplicationOrder int32  `json:"applicationOrder,omitempty"`
}

// Result decodes the wire form of the transaction result, when present
func (r *GetTransactionResult) Result() (transaction.TransactionResult, error) {
	var result transaction.TransactionResult
	if err := xdr.UnmarshalBase64(r.ResultXdr, &result); err != nil {
		return transaction.TransactionResult{}, err
	}
	return result, nil
}

// GetTransaction fetches the status of a previously submitted transaction
func (c *Client) GetTransaction(
	ctx context.Context,
	txHash string,
) (GetTransactionResult, error) {
	params := map[string]any{"hash": txHash}
	var result GetTransactionResult
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return GetTransactionResult{}, err
	}
	return result, nil
}

// SimulateHostFunctionResult is the return value and required authorization
// of one simulated host function
type SimulateHostFunctionResult struct {
	AuthXdr []string `json:"auth,omitempty"`
	XdrVal  string   `json:"xdr"`
}

// SimulateTransactionResult is the node's estimate of an invocation
type SimulateTransactionResult struct {
	TransactionDataXdr string                       `json:"transactionData,omitempty"`
	MinResourceFee     int64                        `json:"minResourceFee,string,omitempty"`
	Results            []SimulateHostFunctionResult `json:"results,omitempty"`
	LatestLedger       uint32                       `json:"latestLedger"`
	ErrorMessage       string                       `json:"error,omitempty"`
}

// TransactionData decodes the recommended resource declarations
func (r *SimulateTransactionResult) TransactionData() (
	transaction.SorobanTransactionData,
	error,
) {
	var data transaction.SorobanTransactionData
	if err := xdr.UnmarshalBase64(r.TransactionDataXdr, &data); err != nil {
		return transaction.SorobanTransactionData{}, err
	}
	return data, nil
}

// SimulateTransaction asks the node to execute an invocation against current
// state without submitting it, returning the resources it would need
func (c *Client) SimulateTransaction(
	ctx context.Context,
	env transaction.TransactionEnvelope,
) (SimulateTransactionResult, error) {
	envelopeXdr, err := xdr.MarshalBase64(env)
	if err != nil {
		return SimulateTransactionResult{}, fmt.Errorf("encode envelope: %w", err)
	}
	params := map[string]any{"transaction": envelopeXdr}
	var result SimulateTransactionResult
	if err := c.call(ctx, "simulateTransaction", params, &result); err != nil {
		return SimulateTransactionResult{}, err
	}
	if result.ErrorMessage != "" {
		return result, fmt.Errorf("simulation failed: %s", result.ErrorMessage)
	}
	return result, nil
}
