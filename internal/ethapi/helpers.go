package ethapi

import (
	"math/big"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/hexcodec"
)

func hexBig(n *big.Int) string {
	return hexcodec.ToHex(n)
}

func hexUint64(n uint64) string {
	return hexcodec.ToHexUint64(n)
}

func hexInt64(n int64) string {
	if n < 0 {
		n = 0
	}
	return hexcodec.ToHexUint64(uint64(n))
}

func ptr[T any](v T) *T { return &v }

// paramString extracts params[i] as a string, defaulting to "" when
// absent or nil.
func paramString(params []any, i int) string {
	if i >= len(params) || params[i] == nil {
		return ""
	}
	s, _ := params[i].(string)
	return s
}

func paramBool(params []any, i int) bool {
	if i >= len(params) {
		return false
	}
	b, _ := params[i].(bool)
	return b
}

func paramAny(params []any, i int) any {
	if i >= len(params) {
		return nil
	}
	return params[i]
}
