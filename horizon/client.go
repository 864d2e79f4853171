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

// Package horizon provides a client for the REST API ledger gateways
// expose: account and ledger lookups plus transaction submission
package horizon

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lumenlabs-io/gostellar/transaction"
	"github.com/lumenlabs-io/gostellar/xdr"
)

const defaultTimeout = 30 * time.Second

// Client talks to one gateway instance
type Client struct {
	http   *resty.Client
	logger *slog.Logger
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

// NewClient returns a Client for the gateway at the given base URL
func NewClient(baseURL string, opts ...ClientOptionFunc) *Client {
	c := &Client{
		http: resty.New().SetTimeout(defaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.http.SetBaseURL(baseURL)
	return c
}

// AccountDetail fetches the account with the given address
func (c *Client) AccountDetail(
	ctx context.Context,
	address string,
) (Account, error) {
	var account Account
	if err := c.get(ctx, "/accounts/"+address, &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// LedgerDetail fetches the ledger with the given sequence number
func (c *Client) LedgerDetail(
	ctx context.Context,
	sequence uint32,
) (Ledger, error) {
	var ledger Ledger
	path := fmt.Sprintf("/ledgers/%d", sequence)
	if err := c.get(ctx, path, &ledger); err != nil {
		return Ledger{}, err
	}
	return ledger, nil
}

// TransactionDetail fetches the transaction with the given hash
func (c *Client) TransactionDetail(
	ctx context.Context,
	txHash string,
) (Transaction, error) {
	var tx Transaction
	if err := c.get(ctx, "/transactions/"+txHash, &tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// SubmitTransaction encodes the envelope and submits it, blocking until the
// gateway reports the ingestion outcome
func (c *Client) SubmitTransaction(
	ctx context.Context,
	env transaction.TransactionEnvelope,
) (Transaction, error) {
	envelopeXdr, err := xdr.MarshalBase64(env)
	if err != nil {
		return Transaction{}, fmt.Errorf("encode envelope: %w", err)
	}
	c.logger.Debug(
		"submitting transaction",
		"component", "horizon",
		"envelope_size", len(envelopeXdr),
	)
	var tx Transaction
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"tx": envelopeXdr}).
		SetResult(&tx).
		SetError(&Problem{}).
		Post("/transactions")
	if err != nil {
		return Transaction{}, err
	}
	if resp.IsError() {
		return Transaction{}, problemFromResponse(resp)
	}
	return tx, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	c.logger.Debug(
		"fetching resource",
		"component", "horizon",
		"path", path,
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&Problem{}).
		Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return problemFromResponse(resp)
	}
	return nil
}

func problemFromResponse(resp *resty.Response) error {
	if problem, ok := resp.Error().(*Problem); ok && problem.Status != 0 {
		return problem
	}
	return &Problem{
		Title:  http.StatusText(resp.StatusCode()),
		Status: resp.StatusCode(),
	}
}

// DecodeResultXdr decodes the base64 result of an ingested transaction
func DecodeResultXdr(resultXdr string) (transaction.TransactionResult, error) {
	data, err := base64.StdEncoding.DecodeString(resultXdr)
	if err != nil {
		return transaction.TransactionResult{}, err
	}
	var result transaction.TransactionResult
	if _, err := xdr.Unmarshal(data, &result); err != nil {
		return transaction.TransactionResult{}, err
	}
	return result, nil
}

// BuildURL is a helper for callers that follow paging links manually
func BuildURL(base string, segments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return u.JoinPath(segments...).String(), nil
}
