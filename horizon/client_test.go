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

package horizon_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lumenlabs-io/gostellar/horizon"
	"github.com/lumenlabs-io/gostellar/transaction"
	"github.com/lumenlabs-io/gostellar/xdr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testServer(
	t *testing.T,
	handler http.HandlerFunc,
) (*httptest.Server, *horizon.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Client().CloseIdleConnections()
		srv.Close()
	})
	client := horizon.NewClient(srv.URL, horizon.WithHTTPClient(srv.Client()))
	return srv, client
}

func TestAccountDetail(t *testing.T) {
	const address = "GA5WUJ54Z23KILLCUOUNAKTPBVZWKMQVO4O6EQ5GHLAERIMLLHNCSKYH"
	_, client := testServer(
		t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/accounts/"+address, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "` + address + `",
				"account_id": "` + address + `",
				"sequence": "123456789",
				"subentry_count": 1,
				"home_domain": "example.com",
				"thresholds": {
					"low_threshold": 1,
					"med_threshold": 2,
					"high_threshold": 3
				},
				"balances": [
					{"balance": "100.0000000", "asset_type": "native"}
				],
				"data": {"config": "AQ=="}
			}`))
		},
	)

	account, err := client.AccountDetail(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, address, account.AccountID)
	assert.Equal(t, int64(123456789), account.Sequence)
	assert.Equal(t, "example.com", account.HomeDomain)
	assert.Equal(t, byte(2), account.Thresholds.MedThreshold)
	require.Len(t, account.Balances, 1)
	assert.Equal(t, "native", account.Balances[0].AssetType)

	assert.Equal(t, int64(123456790), account.IncrementSequenceNumber())
	assert.Equal(t, int64(123456790), account.Sequence)
}

func TestLedgerDetail(t *testing.T) {
	_, client := testServer(
		t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ledgers/123", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"hash": "abcd",
				"sequence": 123,
				"successful_transaction_count": 10,
				"protocol_version": 23
			}`))
		},
	)

	ledger, err := client.LedgerDetail(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, "abcd", ledger.Hash)
	assert.Equal(t, int32(123), ledger.Sequence)
	assert.Equal(t, int32(23), ledger.ProtocolVersion)
}

func TestSubmitTransaction(t *testing.T) {
	env := transaction.NewEnvelope(transaction.Transaction{
		SourceAccount: xdr.NewMuxedAccount(xdr.Uint256{}),
		Fee:           transaction.MinBaseFee,
		SeqNum:        1,
		Operations: []transaction.Operation{
			{
				Body: transaction.OperationBody{
					Type: transaction.OperationTypePayment,
					Payment: &transaction.PaymentOp{
						Destination: xdr.NewMuxedAccount(xdr.Uint256{0x01}),
						Asset:       xdr.NewNativeAsset(),
						Amount:      10000000,
					},
				},
			},
		},
	})
	envelopeXdr, err := xdr.MarshalBase64(env)
	require.NoError(t, err)

	_, client := testServer(
		t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transactions", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, envelopeXdr, r.PostFormValue("tx"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"hash": "872e9908c501039591c1f4d49aca56db1d9b2887b8d2e7869c2f397b9d9d93d2",
				"ledger": 100,
				"successful": true,
				"fee_charged": "100"
			}`))
		},
	)

	tx, err := client.SubmitTransaction(context.Background(), env)
	require.NoError(t, err)
	assert.True(t, tx.Successful)
	assert.Equal(t, int32(100), tx.Ledger)
	assert.Equal(t, int64(100), tx.FeeCharged)
}

func TestSubmitTransactionProblem(t *testing.T) {
	_, client := testServer(
		t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{
				"type": "transaction_failed",
				"title": "Transaction Failed",
				"status": 400,
				"extras": {
					"result_codes": {"transaction": "tx_bad_seq"}
				}
			}`))
		},
	)

	env := transaction.NewEnvelope(transaction.Transaction{
		SourceAccount: xdr.NewMuxedAccount(xdr.Uint256{}),
		Fee:           transaction.MinBaseFee,
		SeqNum:        1,
		Operations: []transaction.Operation{
			{
				Body: transaction.OperationBody{
					Type: transaction.OperationTypeBumpSequence,
					BumpSequence: &transaction.BumpSequenceOp{
						BumpTo: 2,
					},
				},
			},
		},
	})
	_, err := client.SubmitTransaction(context.Background(), env)
	var problem *horizon.Problem
	require.ErrorAs(t, err, &problem)
	assert.Equal(t, 400, problem.Status)
	assert.Equal(t, "Transaction Failed", problem.Title)

	code, ok := problem.ResultCodes()
	require.True(t, ok)
	assert.Equal(t, "tx_bad_seq", code)
}

func TestProblemFallback(t *testing.T) {
	_, client := testServer(
		t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("something broke"))
		},
	)

	_, err := client.AccountDetail(context.Background(), "GABC")
	var problem *horizon.Problem
	require.ErrorAs(t, err, &problem)
	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, "Internal Server Error", problem.Title)
	_, ok := problem.ResultCodes()
	assert.False(t, ok)
}

func TestDecodeResultXdr(t *testing.T) {
	result := transaction.TransactionResult{
		FeeCharged: 100,
		Code:       transaction.TxSuccess,
		Results: []transaction.OperationResult{
			{
				Code: transaction.OpInner,
				Tr: &transaction.OperationResultTr{
					Type:    transaction.OperationTypePayment,
					Payment: &transaction.PaymentResult{Code: 0},
				},
			},
		},
	}
	encoded, err := xdr.MarshalBase64(result)
	require.NoError(t, err)

	decoded, err := horizon.DecodeResultXdr(encoded)
	require.NoError(t, err)
	assert.Equal(t, result, decoded)
	assert.True(t, decoded.Successful())

	_, err = horizon.DecodeResultXdr("not base64!")
	require.Error(t, err)
}

func TestBuildURL(t *testing.T) {
	u, err := horizon.BuildURL(
		"https://gateway.example.com",
		"accounts",
		"GABC",
		"payments",
	)
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example.com/accounts/GABC/payments", u)

	_, err = horizon.BuildURL("://bad")
	require.Error(t, err)
}
