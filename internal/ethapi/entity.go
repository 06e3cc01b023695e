package ethapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/hexcodec"
)

// parseEntityID parses the ledger's "shard.realm.num" entity id format
// (e.g. created_contract_ids entries) into its three components.
func parseEntityID(s string) (shard, realm, num uint64, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("malformed entity id %q", s)
	}
	vals := make([]uint64, 3)
	for i, p := range parts {
		v, perr := strconv.ParseUint(p, 10, 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("malformed entity id %q: %w", s, perr)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

// entityIDToEVMAddress converts a "shard.realm.num" entity id into its
// canonical 20-byte EVM address (spec.md §3 Receipt.contractAddress).
func entityIDToEVMAddress(s string) (string, error) {
	shard, realm, num, err := parseEntityID(s)
	if err != nil {
		return "", err
	}
	return hexcodec.EntityIDToAddress(shard, realm, num).Hex(), nil
}

// addressOrEntityID normalizes a field that may already be a 0x... EVM
// address (mirror's "from"/"to" fields are usually already projected)
// into the canonical 42-character form.
func addressOrEntityID(s string) string {
	if s == "" {
		return hexcodec.ZeroAddress
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return hexcodec.ToAddress(s)
	}
	addr, err := entityIDToEVMAddress(s)
	if err != nil {
		return hexcodec.ZeroAddress
	}
	return addr
}
