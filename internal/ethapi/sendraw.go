package ethapi

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/hexcodec"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/metrics"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

func handleSendRawTransaction(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	rawTxHex := paramString(params, 0)

	gasPrice, err := d.gasPrice(ctx)
	if err != nil {
		metrics.SendRawTransactionTotal.WithLabelValues("internal_error").Inc()
		return nil, rpcerror.InternalError, nil
	}

	if d.Precheck != nil {
		if rpcErr := d.Precheck.Check(ctx, rawTxHex, hexBig(gasPrice), requestID); rpcErr != nil {
			metrics.SendRawTransactionTotal.WithLabelValues("precheck_reject").Inc()
			return nil, rpcErr, nil
		}
	}

	raw, decErr := hex.DecodeString(hexcodec.Prune0x(rawTxHex))
	if decErr != nil {
		metrics.SendRawTransactionTotal.WithLabelValues("internal_error").Inc()
		return nil, rpcerror.InvalidParams, nil
	}

	handle, submitErr := d.Consensus.SubmitEthereumTransaction(ctx, raw, "eth_sendRawTransaction")
	if submitErr != nil {
		metrics.SendRawTransactionTotal.WithLabelValues("internal_error").Inc()
		return nil, rpcerror.InternalError, nil
	}

	record, recordErr := d.Consensus.ExecuteGetTransactionRecord(ctx, handle, "eth_sendRawTransaction", "eth_sendRawTransaction")
	if recordErr != nil {
		// Submission succeeded but record retrieval failed: best-effort
		// fall back to the locally computed keccak256 of the raw bytes
		// (spec.md §4.6 step 5).
		metrics.SendRawTransactionTotal.WithLabelValues("fallback_hash").Inc()
		return fmt.Sprintf("0x%x", crypto.Keccak256(raw)), nil, nil
	}

	if len(record.EthereumHash) > 0 {
		metrics.SendRawTransactionTotal.WithLabelValues("hash").Inc()
		return fmt.Sprintf("0x%x", record.EthereumHash), nil, nil
	}
	metrics.SendRawTransactionTotal.WithLabelValues("fallback_hash").Inc()
	return fmt.Sprintf("0x%x", crypto.Keccak256(raw)), nil, nil
}
