package ethapi

import (
	"context"
	"math/big"
	"testing"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/cache"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

func newTestDispatcher() (*Dispatcher, *fakeMirror, *fakeConsensus, *fakePrecheck) {
	m := newFakeMirror()
	c := &fakeConsensus{}
	p := &fakePrecheck{}
	d := &Dispatcher{
		Mirror:                  m,
		Consensus:               c,
		Precheck:                p,
		Cache:                   cache.New(cache.GasPriceTTL),
		ChainID:                 big.NewInt(295),
		MaxFeeHistoryBlockCount: 1024,
	}
	return d, m, c, p
}

// S1 — chainId is fixed at construction and returned verbatim,
// independent of any backend state or call history.
func TestChainIDConstant(t *testing.T) {
	d, m, c, _ := newTestDispatcher()

	first, err := d.Dispatch(context.Background(), "eth_chainId", nil, "")
	if err != nil || first.Err != nil {
		t.Fatalf("unexpected error: %v %v", err, first.Err)
	}
	if first.Value != hexBig(big.NewInt(295)) {
		t.Fatalf("got %v, want 0x127", first.Value)
	}

	// Exercise unrelated backend state between calls; chainId must not
	// consult either port.
	m.latestBlock = &mirror.Block{Number: 1}
	c.tinybarGasFee = 5

	second, err := d.Dispatch(context.Background(), "eth_chainId", nil, "")
	if err != nil || second.Err != nil {
		t.Fatalf("unexpected error: %v %v", err, second.Err)
	}
	if first.Value != second.Value {
		t.Fatalf("chainId changed across calls: %v != %v", first.Value, second.Value)
	}
}

func TestUnsupportedMethod(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	outcome, err := d.Dispatch(context.Background(), "eth_getStorageAt", nil, "")
	if err != nil {
		t.Fatalf("unexpected throw: %v", err)
	}
	if outcome.Err != rpcerror.UnsupportedMethod {
		t.Fatalf("outcome.Err = %v, want UnsupportedMethod", outcome.Err)
	}
}

func TestUnknownMethod(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	outcome, err := d.Dispatch(context.Background(), "eth_notAMethod", nil, "")
	if err != nil {
		t.Fatalf("unexpected throw: %v", err)
	}
	if outcome.Err != rpcerror.UnsupportedMethod {
		t.Fatalf("outcome.Err = %v, want UnsupportedMethod", outcome.Err)
	}
}

func TestConstHandlers(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	methods := []string{"eth_accounts", "eth_mining", "eth_syncing"}
	for _, method := range methods {
		outcome, err := d.Dispatch(context.Background(), method, nil, "")
		if err != nil || outcome.Err != nil {
			t.Fatalf("%s: unexpected error %v %v", method, err, outcome.Err)
		}
	}
}

func TestDispatchSucceedsWithoutRequestID(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	outcome, err := d.Dispatch(context.Background(), "eth_chainId", nil, "")
	if err != nil || outcome.Err != nil {
		t.Fatalf("unexpected error: %v %v", err, outcome.Err)
	}
	if outcome.Value == nil {
		t.Fatal("expected a chainId value")
	}
}
