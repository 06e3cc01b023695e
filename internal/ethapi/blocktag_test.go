package ethapi

import (
	"context"
	"testing"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
)

func TestResolveBlockTagLatest(t *testing.T) {
	d, m, _, _ := newTestDispatcher()
	m.latestBlock = &mirror.Block{Number: 42}

	n, err := resolveBlockTag(context.Background(), d, "latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Fatalf("got %d, want 42", n)
	}
}

func TestResolveBlockTagNilDefaultsToLatest(t *testing.T) {
	d, m, _, _ := newTestDispatcher()
	m.latestBlock = &mirror.Block{Number: 9}

	n, err := resolveBlockTag(context.Background(), d, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 9 {
		t.Fatalf("got %d, want 9", n)
	}
}

func TestResolveBlockTagEarliest(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	n, err := resolveBlockTag(context.Background(), d, "earliest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d, want 0", n)
	}
}

func TestResolveBlockTagHexNumber(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	n, err := resolveBlockTag(context.Background(), d, "0x10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 16 {
		t.Fatalf("got %d, want 16", n)
	}
}

func TestResolveBlockTagHash(t *testing.T) {
	d, m, _, _ := newTestDispatcher()
	hash := "0x" + repeat("ab", 32)
	m.blocks[hash] = &mirror.Block{Number: 77}

	n, err := resolveBlockTag(context.Background(), d, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 77 {
		t.Fatalf("got %d, want 77", n)
	}
}

func TestNormalizeTagPendingMapsToLatest(t *testing.T) {
	if got := normalizeTag("pending"); got != "latest" {
		t.Fatalf("got %q, want %q", got, "latest")
	}
}

func TestNormalizeTagEmptyDefaultsToLatest(t *testing.T) {
	if got := normalizeTag(""); got != "latest" {
		t.Fatalf("got %q, want %q", got, "latest")
	}
}
