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

package gostellar

import (
	"log/slog"
	"net/http"
	"time"
)

// ClientOptionFunc configures a Client
type ClientOptionFunc func(*Client)

// WithNetwork specifies the network the client targets. Defaults to testnet
func WithNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.network = network
	}
}

// WithHorizonURL overrides the network's default REST gateway URL
func WithHorizonURL(horizonURL string) ClientOptionFunc {
	return func(c *Client) {
		c.horizonURL = horizonURL
	}
}

// WithRPCURL overrides the network's default JSON-RPC endpoint URL
func WithRPCURL(rpcURL string) ClientOptionFunc {
	return func(c *Client) {
		c.rpcURL = rpcURL
	}
}

// WithLogger specifies the logger to use. Defaults to slog.Default()
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient specifies the HTTP client to use for requests
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout specifies the per-request timeout
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}
