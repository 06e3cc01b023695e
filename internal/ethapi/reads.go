package ethapi

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/go-playground/validator/v10"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/consensus"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/hexcodec"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

var validate = validator.New()

// TX_BASE_COST/TX_DEFAULT_GAS (spec.md §4.7) and call's own gas default.
// txBaseCost is the 21,000 base cost of a plain transfer; txDefaultGas
// and callDefaultGas share the same 400,000 gas value.
const (
	txBaseCost     = 21_000
	txDefaultGas   = 400_000
	callDefaultGas = 400_000
)

// handleGetBalance implements spec.md §4.7's getBalance.
func handleGetBalance(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	account := paramString(params, 0)
	tag := normalizeTag(paramString(params, 1))
	cacheKey := fmt.Sprintf("getBalance.%s.%s", account, tag)

	if cached, ok := d.Cache.Get(cacheKey); ok {
		return cached, nil, nil
	}

	resolved, err := d.Mirror.ResolveEntityType(ctx, account)
	if err == mirror.ErrNotFound {
		d.Cache.Set(cacheKey, hexcodec.ZeroHash)
		return hexcodec.ZeroHash, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var weibar *big.Int
	switch resolved.Type {
	case mirror.EntityAccount:
		shard, realm, num, perr := parseEntityID(resolved.Entity.Account)
		if perr != nil {
			return nil, rpcerror.InternalError, nil
		}
		bal, balErr := d.Consensus.GetAccountBalanceInWeiBar(ctx, consensus.AccountID{Shard: shard, Realm: realm, Num: num}, "eth_getBalance")
		if balErr == consensus.ErrInvalidAccountID {
			d.Cache.Set(cacheKey, hexcodec.ZeroHash)
			return hexcodec.ZeroHash, nil, nil
		}
		if balErr != nil {
			return nil, nil, balErr
		}
		weibar = bal
	case mirror.EntityContract:
		shard, realm, num, perr := parseEntityID(resolved.Entity.ContractID)
		if perr != nil {
			return nil, rpcerror.InternalError, nil
		}
		bal, balErr := d.Consensus.GetContractBalanceInWeiBar(ctx, consensus.ContractID{Shard: shard, Realm: realm, Num: num}, "eth_getBalance")
		if balErr == consensus.ErrInvalidAccountID {
			d.Cache.Set(cacheKey, hexcodec.ZeroHash)
			return hexcodec.ZeroHash, nil, nil
		}
		if balErr != nil {
			return nil, nil, balErr
		}
		weibar = bal
	default:
		d.Cache.Set(cacheKey, hexcodec.ZeroHash)
		return hexcodec.ZeroHash, nil, nil
	}

	balance := hexBig(weibar)
	d.Cache.Set(cacheKey, balance)
	return balance, nil, nil
}

// handleGetCode implements spec.md §4.7's getCode.
func handleGetCode(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	address := paramString(params, 0)
	tag := normalizeTag(paramString(params, 1))
	cacheKey := fmt.Sprintf("getCode.%s.%s", address, tag)

	if cached, ok := d.Cache.Get(cacheKey); ok {
		return cached, nil, nil
	}

	contract, err := d.Mirror.GetContract(ctx, address)
	if err == nil && contract.RuntimeBytecode != "" && contract.RuntimeBytecode != hexcodec.EmptyHash {
		code := hexcodec.Prepend0x(contract.RuntimeBytecode)
		d.Cache.Set(cacheKey, code)
		return code, nil, nil
	}

	resolved, resErr := d.Mirror.ResolveEntityType(ctx, address)
	if resErr != nil || resolved.Type != mirror.EntityContract {
		d.Cache.Set(cacheKey, hexcodec.EmptyHash)
		return hexcodec.EmptyHash, nil, nil
	}
	shard, realm, _, perr := parseEntityID(resolved.Entity.ContractID)
	if perr != nil {
		d.Cache.Set(cacheKey, hexcodec.EmptyHash)
		return hexcodec.EmptyHash, nil, nil
	}

	addr, decErr := hex.DecodeString(hexcodec.Prune0x(hexcodec.ToAddress(address)))
	if decErr != nil {
		addr = nil
	}
	code, bcErr := d.Consensus.GetContractByteCode(ctx, shard, realm, addr, "eth_getCode")
	if bcErr == consensus.ErrInvalidContractID {
		d.Cache.Set(cacheKey, hexcodec.EmptyHash)
		return hexcodec.EmptyHash, nil, nil
	}
	if bcErr != nil {
		return nil, nil, bcErr
	}

	result := fmt.Sprintf("0x%x", code)
	d.Cache.Set(cacheKey, result)
	return result, nil, nil
}

// handleGetTransactionCount implements spec.md §4.7's getTransactionCount.
func handleGetTransactionCount(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	address := paramString(params, 0)
	tag := paramAny(params, 1)

	blockNum, err := resolveBlockTag(ctx, d, tag)
	if err != nil {
		return nil, nil, err
	}
	if blockNum == 0 {
		return hexcodec.ZeroHash, nil, nil
	}

	resolved, err := d.Mirror.ResolveEntityType(ctx, address)
	if err == mirror.ErrNotFound {
		return hexcodec.ZeroHash, nil, nil
	}
	if err != nil {
		return nil, rpcerror.InternalError, nil
	}

	switch resolved.Type {
	case mirror.EntityAccount:
		shard, realm, num, perr := parseEntityID(resolved.Entity.Account)
		if perr != nil {
			return nil, rpcerror.InternalError, nil
		}
		info, infoErr := d.Consensus.GetAccountInfo(ctx, consensus.AccountID{Shard: shard, Realm: realm, Num: num}, "eth_getTransactionCount")
		if infoErr != nil {
			return nil, rpcerror.InternalError, nil
		}
		return hexUint64(info.EthereumNonce), nil, nil
	case mirror.EntityContract:
		// Preserved literally per spec.md §9's open question: whether
		// this means "contracts have made at least one transaction" or
		// is a placeholder is ambiguous; the spec asks to keep it as-is.
		return "0x1", nil, nil
	default:
		return hexcodec.ZeroHash, nil, nil
	}
}

// handleCall implements spec.md §4.7's call.
func handleCall(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	raw, _ := paramAny(params, 0).(map[string]any)
	call := parseCallRequest(raw)

	if err := validate.Struct(call); err != nil {
		return nil, rpcerror.InvalidParams, nil
	}

	gas := parseGas(call.Gas, callDefaultGas)
	to, err := hex.DecodeString(hexcodec.Prune0x(call.To))
	if err != nil {
		return nil, rpcerror.InvalidParams, nil
	}
	from, _ := hex.DecodeString(hexcodec.Prune0x(hexcodec.ToAddress(call.From)))
	data, _ := hex.DecodeString(hexcodec.Prune0x(call.Data))

	result, callErr := d.Consensus.SubmitContractCallQuery(ctx, to, data, gas, from, "eth_call")
	if callErr != nil {
		return nil, rpcerror.InternalError, nil
	}
	return fmt.Sprintf("0x%x", result), nil, nil
}

// handleEstimateGas implements spec.md §4.7's estimateGas.
func handleEstimateGas(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	raw, _ := paramAny(params, 0).(map[string]any)
	call := parseCallRequest(raw)

	if call.Data == "" || call.Data == hexcodec.EmptyHash {
		return hexInt64(txBaseCost), nil, nil
	}
	return hexInt64(txDefaultGas), nil, nil
}

func parseCallRequest(m map[string]any) CallRequest {
	var call CallRequest
	if m == nil {
		return call
	}
	call.From, _ = m["from"].(string)
	call.To, _ = m["to"].(string)
	call.Data, _ = m["data"].(string)
	call.Gas = m["gas"]
	call.Value = m["value"]
	return call
}

// parseGas accepts either a numeric or hex-string gas value (spec.md
// §4.7 call), defaulting when absent.
func parseGas(v any, defaultGas uint64) uint64 {
	switch t := v.(type) {
	case nil:
		return defaultGas
	case float64:
		return uint64(t)
	case string:
		n, err := hexcodec.ParseBlockSelector(t)
		if err != nil {
			return defaultGas
		}
		return n.Uint64()
	default:
		return defaultGas
	}
}
