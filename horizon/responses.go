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

package horizon

import "fmt"

// Balance is one asset position of an account
type Balance struct {
	Balance     string `json:"balance"`
	Limit       string `json:"limit,omitempty"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

// AccountThresholds are the operation thresholds of an account
type AccountThresholds struct {
	LowThreshold  byte `json:"low_threshold"`
	MedThreshold  byte `json:"med_threshold"`
	HighThreshold byte `json:"high_threshold"`
}

// AccountSigner is one signer of an account with its weight
type AccountSigner struct {
	Weight int32  `json:"weight"`
	Key    string `json:"key"`
	Type   string `json:"type"`
}

// Account is the gateway's view of one account
type Account struct {
	ID                   string            `json:"id"`
	AccountID            string            `json:"account_id"`
	Sequence             int64             `json:"sequence,string"`
	SequenceLedger       uint32            `json:"sequence_ledger,omitempty"`
	SubentryCount        int32             `json:"subentry_count"`
	InflationDestination string            `json:"inflation_destination,omitempty"`
	HomeDomain           string            `json:"home_domain,omitempty"`
	LastModifiedLedger   uint32            `json:"last_modified_ledger"`
	Thresholds           AccountThresholds `json:"thresholds"`
	Balances             []Balance         `json:"balances"`
	Signers              []AccountSigner   `json:"signers"`
	Data                 map[string]string `json:"data"`
}

// IncrementSequenceNumber bumps the in-memory sequence number, mirroring
// what the network will do when the next transaction is applied
func (a *Account) IncrementSequenceNumber() int64 {
	a.Sequence++
	return a.Sequence
}

// Ledger is the gateway's view of one closed ledger
type Ledger struct {
	ID                string `json:"id"`
	Hash              string `json:"hash"`
	PrevHash          string `json:"prev_hash,omitempty"`
	Sequence          int32  `json:"sequence"`
	SuccessfulTxCount int32  `json:"successful_transaction_count"`
	FailedTxCount     int32  `json:"failed_transaction_count"`
	OperationCount    int32  `json:"operation_count"`
	ClosedAt          string `json:"closed_at"`
	TotalCoins        string `json:"total_coins"`
	FeePool           string `json:"fee_pool"`
	BaseFee           int32  `json:"base_fee_in_stroops"`
	BaseReserve       int32  `json:"base_reserve_in_stroops"`
	MaxTxSetSize      int32  `json:"max_tx_set_size"`
	ProtocolVersion   int32  `json:"protocol_version"`
}

// Transaction is the gateway's view of one ingested transaction
type Transaction struct {
	ID              string `json:"id"`
	Hash            string `json:"hash"`
	Ledger          int32  `json:"ledger"`
	Successful      bool   `json:"successful"`
	CreatedAt       string `json:"created_at"`
	Account         string `json:"source_account"`
	AccountSequence int64  `json:"source_account_sequence,string"`
	FeeCharged      int64  `json:"fee_charged,string"`
	OperationCount  int32  `json:"operation_count"`
	EnvelopeXdr     string `json:"envelope_xdr"`
	ResultXdr       string `json:"result_xdr"`
	ResultMetaXdr   string `json:"result_meta_xdr"`
	MemoType        string `json:"memo_type"`
	Memo            string `json:"memo,omitempty"`
}

// Problem is the RFC 7807 error document the gateway returns for failed
// requests
type Problem struct {
	Type   string         `json:"type"`
	Title  string         `json:"title"`
	Status int            `json:"status"`
	Detail string         `json:"detail,omitempty"`
	Extras map[string]any `json:"extras,omitempty"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("horizon error: %s (status %d)", p.Title, p.Status)
}

// ResultCodes extracts the embedded result codes from a failed submission,
// when the gateway included them
func (p *Problem) ResultCodes() (string, bool) {
	extra, ok := p.Extras["result_codes"]
	if !ok {
		return "", false
	}
	codes, ok := extra.(map[string]any)
	if !ok {
		return "", false
	}
	txCode, ok := codes["transaction"].(string)
	return txCode, ok
}
