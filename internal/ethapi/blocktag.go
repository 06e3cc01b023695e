package ethapi

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/hexcodec"
)

// resolveBlockTag implements spec.md §4.2: resolve a block selector
// (null, "latest", "pending", "earliest", a decimal/hex integer
// string, or a 32-byte hash) to an integer block number.
//
// A hash selector (see isHashSelector) is resolved with a mirror
// GetBlock lookup. getBlock does not use this function: its
// resolveBlockRecord forwards the raw selector to the mirror instead.
func resolveBlockTag(ctx context.Context, d *Dispatcher, selector any) (uint64, error) {
	s, isString := selector.(string)
	if selector == nil || (isString && (s == "" || s == "latest" || s == "pending")) {
		block, err := d.Mirror.GetLatestBlock(ctx)
		if err != nil {
			return 0, fmt.Errorf("resolve latest block: %w", err)
		}
		return block.Number, nil
	}
	if !isString {
		return 0, fmt.Errorf("invalid block selector type %T", selector)
	}
	if s == "earliest" {
		return 0, nil
	}
	if isHashSelector(s) {
		block, err := d.Mirror.GetBlock(ctx, s)
		if err != nil {
			return 0, err
		}
		return block.Number, nil
	}
	n, err := hexcodec.ParseBlockSelector(s)
	if err != nil {
		return 0, fmt.Errorf("parse block selector %q: %w", s, err)
	}
	return n.Uint64(), nil
}

// isHashSelector reports whether s is shaped like a 32-byte hash
// rather than a decimal/hex block number: at least 64 characters
// after any 0x prefix is stripped.
func isHashSelector(s string) bool {
	return len(hexcodec.Prune0x(s)) >= 64
}

// blockNumberOrHexString accepts either the well-known tag strings or
// a numeric string and returns the resolved number as a *big.Int,
// matching resolveBlockTag's integer semantics for callers that need
// big.Int arithmetic (feeHistory).
func blockNumberOrHexString(ctx context.Context, d *Dispatcher, selector any) (*big.Int, error) {
	n, err := resolveBlockTag(ctx, d, selector)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(n), nil
}

func normalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "latest"
	}
	if tag == "pending" {
		return "latest"
	}
	return tag
}
