package ethapi

import (
	"context"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/consensus"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

func withGasPrice(m *fakeMirror, c *fakeConsensus) {
	m.fees = &mirror.NetworkFeesResponse{Fees: []mirror.NetworkFee{
		{Gas: 1, TransactionType: "EthereumTransaction"},
	}}
	c.tinybarGasFee = 1
}

// S6 — sendRawTransaction success: the record carries an Ethereum hash,
// which is returned verbatim.
func TestSendRawTransactionReturnsRecordHash(t *testing.T) {
	d, m, c, _ := newTestDispatcher()
	withGasPrice(m, c)
	c.submissionHandle = &consensus.SubmissionHandle{TransactionID: "0.0.5-1-1"}
	c.record = &consensus.ExecutionRecord{EthereumHash: []byte{0x01, 0x02}}

	outcome, err := d.Dispatch(context.Background(), "eth_sendRawTransaction", []any{"0xdead"}, "")
	if err != nil || outcome.Err != nil {
		t.Fatalf("unexpected error: %v %v", err, outcome.Err)
	}
	if outcome.Value != "0x0102" {
		t.Fatalf("got %v, want 0x0102", outcome.Value)
	}
}

// S7 — sendRawTransaction fallback hashing: the record retrieval fails,
// so the relay falls back to keccak256 of the raw transaction bytes.
func TestSendRawTransactionFallsBackToKeccak(t *testing.T) {
	d, m, c, _ := newTestDispatcher()
	withGasPrice(m, c)
	c.submissionHandle = &consensus.SubmissionHandle{TransactionID: "0.0.5-1-1"}
	c.recordErr = context.DeadlineExceeded

	outcome, err := d.Dispatch(context.Background(), "eth_sendRawTransaction", []any{"0xdead"}, "")
	if err != nil || outcome.Err != nil {
		t.Fatalf("unexpected error: %v %v", err, outcome.Err)
	}
	want := fmt.Sprintf("0x%x", crypto.Keccak256([]byte{0xde, 0xad}))
	if outcome.Value != want {
		t.Fatalf("got %v, want %v", outcome.Value, want)
	}
}

func TestSendRawTransactionPrecheckRejection(t *testing.T) {
	d, m, c, p := newTestDispatcher()
	withGasPrice(m, c)
	p.err = rpcerror.PrecheckNonce

	outcome, err := d.Dispatch(context.Background(), "eth_sendRawTransaction", []any{"0xdead"}, "")
	if err != nil {
		t.Fatalf("unexpected throw: %v", err)
	}
	if outcome.Err != rpcerror.PrecheckNonce {
		t.Fatalf("got %v, want PrecheckNonce", outcome.Err)
	}
}

func TestSendRawTransactionSubmitFailure(t *testing.T) {
	d, m, c, _ := newTestDispatcher()
	withGasPrice(m, c)
	c.submitErr = context.DeadlineExceeded

	outcome, err := d.Dispatch(context.Background(), "eth_sendRawTransaction", []any{"0xdead"}, "")
	if err != nil || outcome.Err != rpcerror.InternalError {
		t.Fatalf("got err=%v outcome.Err=%v, want InternalError", err, outcome.Err)
	}
}
