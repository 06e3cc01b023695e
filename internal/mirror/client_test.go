package mirror

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLatestBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blocks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"blocks":[{"number":42,"hash":"0xabc","previous_hash":"0xdef","timestamp":{"from":"100.0","to":"101.0"}}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	block, err := client.GetLatestBlock(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 42, block.Number)
}

func TestGetBlockNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	_, err := client.GetBlock(context.Background(), "0xdeadbeef")
	assert.Equal(t, ErrNotFound, err)
}

func TestGetNetworkFeesWithTimestamp(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"fees":[{"gas":852000,"transaction_type":"EthereumTransaction"}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	resp, err := client.GetNetworkFees(context.Background(), "1000.5")
	require.NoError(t, err)
	require.Len(t, resp.Fees, 1)
	assert.Equal(t, "EthereumTransaction", resp.Fees[0].TransactionType)
	assert.Equal(t, "timestamp=lte%3A1000.5", gotQuery)
}

func TestGetContractResultsAppliesFilter(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	idx := 3
	_, err := client.GetContractResults(context.Background(), ContractResultsFilter{
		BlockHash:        "0xabc",
		TransactionIndex: &idx,
	}, "")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "block.hash=0xabc")
	assert.Contains(t, gotQuery, "transaction.index=3")
}
