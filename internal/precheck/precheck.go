// Package precheck declares the Precheck collaborator of spec.md §6:
// validation of a raw transaction (nonce, chain id, gas price,
// intrinsic gas, value) performed before submission. Its
// implementation is an external collaborator; this package only
// declares the contract sendRawTransaction (internal/ethapi) depends
// on, plus the rich rejection error values it can return.
package precheck

import (
	"context"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

// Port is the Precheck collaborator: sendRawTransactionCheck.
type Port interface {
	// Check validates rawTxHex (0x-prefixed hex of the raw transaction
	// bytes) against the current gasPrice. A non-nil *rpcerror.Error of
	// known kind is returned directly to the caller by sendRawTransaction
	// (spec.md §4.6 step 2); any other error is internal.
	Check(ctx context.Context, rawTxHex string, gasPrice string, requestID string) *rpcerror.Error
}
