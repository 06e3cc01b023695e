package ethapi

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/cache"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/consensus"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/logger"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/metrics"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/precheck"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

// Outcome is the dynamic result shape spec.md §9 calls for: a method
// either succeeds with a JSON value, or returns (not throws) a
// JSON-RPC error value. Throws (internal failures with no sensible
// default) are represented by the handler's ordinary Go `error` return
// and are mapped to INTERNAL_ERROR by the transport layer.
type Outcome struct {
	Value any
	Err   *rpcerror.Error
}

// Ok wraps a successful result.
func Ok(value any) Outcome { return Outcome{Value: value} }

// ErrOutcome wraps a JSON-RPC error value as a normal (non-thrown) result.
func ErrOutcome(err *rpcerror.Error) Outcome { return Outcome{Err: err} }

// Dispatcher routes eth_* method calls to handlers, consulting the
// cache first and falling back through MirrorPort then ConsensusPort
// (spec.md §2 control flow).
type Dispatcher struct {
	Mirror    mirror.Port
	Consensus consensus.Port
	Precheck  precheck.Port
	Cache     *cache.Cache
	ChainID   *big.Int

	// MaxFeeHistoryBlockCount clamps feeHistory's blockCount parameter
	// (spec.md §4.5 step 2).
	MaxFeeHistoryBlockCount int64
}

// handlerFunc is the uniform shape every eth_* handler conforms to:
// raw JSON-decoded params plus a correlation id, in, out.
type handlerFunc func(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error)

// registry maps method name to handler. Built once; read-only after
// init, so concurrent Dispatch calls need no lock around the lookup.
var registry = map[string]handlerFunc{
	"eth_chainId":          handleChainID,
	"eth_accounts":         constHandler([]any{}),
	"eth_mining":           constHandler(false),
	"eth_syncing":          constHandler(false),
	"eth_submitWork":       constHandler(false),
	"eth_hashrate":         constHandler("0x0"),
	"eth_getUncleByBlockHashAndIndex":   constHandler(nil),
	"eth_getUncleByBlockNumberAndIndex": constHandler(nil),
	"eth_getUncleCountByBlockHash":      constHandler("0x0"),
	"eth_getUncleCountByBlockNumber":    constHandler("0x0"),

	"eth_getStorageAt":       unsupportedHandler,
	"eth_sign":               unsupportedHandler,
	"eth_signTransaction":    unsupportedHandler,
	"eth_sendTransaction":    unsupportedHandler,
	"eth_submitHashrate":     unsupportedHandler,
	"eth_getWork":            unsupportedHandler,
	"eth_protocolVersion":    unsupportedHandler,
	"eth_coinbase":           unsupportedHandler,

	"eth_blockNumber":                              handleBlockNumber,
	"eth_getBlockByHash":                            handleGetBlockByHash,
	"eth_getBlockByNumber":                          handleGetBlockByNumber,
	"eth_getTransactionByHash":                      handleGetTransactionByHash,
	"eth_getTransactionByBlockHashAndIndex":         handleGetTransactionByBlockHashAndIndex,
	"eth_getTransactionByBlockNumberAndIndex":       handleGetTransactionByBlockNumberAndIndex,
	"eth_getTransactionReceipt":                     handleGetTransactionReceipt,
	"eth_getLogs":                                   handleGetLogs,
	"eth_gasPrice":                                  handleGasPrice,
	"eth_feeHistory":                                handleFeeHistory,
	"eth_sendRawTransaction":                        handleSendRawTransaction,
	"eth_getBalance":                                handleGetBalance,
	"eth_getCode":                                   handleGetCode,
	"eth_getTransactionCount":                       handleGetTransactionCount,
	"eth_call":                                      handleCall,
	"eth_estimateGas":                               handleEstimateGas,
}

// Dispatch resolves method and runs its handler with a request-scoped
// logger derived from requestID, propagating it into every downstream
// MirrorPort/ConsensusPort call (spec.md §2 "correlation id").
func (d *Dispatcher) Dispatch(ctx context.Context, method string, params []any, requestID string) (Outcome, error) {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	reqLogger := logger.WithRequestID(requestID)
	ctx = withLogger(ctx, reqLogger)

	handler, ok := registry[method]
	if !ok {
		metrics.RequestsTotal.WithLabelValues(method, "unsupported").Inc()
		return ErrOutcome(rpcerror.UnsupportedMethod), nil
	}

	start := time.Now()
	value, rpcErr, err := handler(ctx, d, params, requestID)
	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "throw").Inc()
		return Outcome{}, err
	}
	if rpcErr != nil {
		metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
		return ErrOutcome(rpcErr), nil
	}
	metrics.RequestsTotal.WithLabelValues(method, "ok").Inc()
	return Ok(value), nil
}

func unsupportedHandler(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	return nil, rpcerror.UnsupportedMethod, nil
}

func constHandler(value any) handlerFunc {
	return func(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
		return value, nil, nil
	}
}

func handleChainID(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	return hexBig(d.ChainID), nil, nil
}

type loggerKey struct{}

func withLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return l
	}
	return logger.Base()
}
