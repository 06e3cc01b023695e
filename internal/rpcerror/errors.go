// Package rpcerror is the error taxonomy of the relay core: a table of
// named sentinel values plus a Wrap helper, mirroring the
// table-of-sentinels pattern used for this kind of project-specific
// error code elsewhere in the reference pack.
package rpcerror

// Error is a tagged JSON-RPC-shaped error value. It is returned as a
// normal result by several methods (so the transport serializes it as
// result.error) and used as the payload of a thrown failure by others;
// see the propagation policy in spec.md §7.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Table lists every sentinel this package declares, for surfaces that
// need to enumerate known errors (documentation, conformance tests).
var Table = []*Error{
	UnsupportedMethod,
	InvalidParams,
	RequestBeyondHeadBlock,
	InvalidAccountID,
	InvalidContractID,
	InternalError,
	PrecheckNonce,
	PrecheckChainID,
	PrecheckGasPrice,
	PrecheckIntrinsicGas,
	PrecheckInsufficientValue,
}

var (
	// UnsupportedMethod is returned synchronously by methods spec.md §4.1
	// deliberately does not implement (eth_getStorageAt, eth_sign, ...).
	UnsupportedMethod = &Error{
		Code:    -32601,
		Message: "Unsupported JSON-RPC method",
	}

	// InvalidParams is returned when a method's parameters fail validation,
	// e.g. call.to not being a 42-character address (spec.md S5).
	InvalidParams = &Error{
		Code:    -32602,
		Message: "Invalid parameters",
	}

	// RequestBeyondHeadBlock is returned by feeHistory when the
	// requested newest block is beyond the chain head (spec.md §4.5, S3).
	RequestBeyondHeadBlock = &Error{
		Code:    -32001,
		Message: "Requested block is beyond head block",
	}

	// InvalidAccountID mirrors ConsensusPort's rejection of an
	// account id that does not resolve to any account (spec.md §4.7, S4).
	InvalidAccountID = &Error{
		Code:    -32007,
		Message: "Invalid account ID",
	}

	// InvalidContractID mirrors ConsensusPort's rejection of a
	// contract id that does not resolve to any contract (spec.md §4.7).
	InvalidContractID = &Error{
		Code:    -32008,
		Message: "Invalid contract ID",
	}

	// InternalError is the catch-all for unexpected internal failures
	// (spec.md §7).
	InternalError = &Error{
		Code:    -32603,
		Message: "Internal error",
	}

	// Pre-check rejection codes (spec.md §4.6, §6 Precheck collaborator).
	// These pass through to the caller unchanged.
	PrecheckNonce = &Error{
		Code:    -32009,
		Message: "Nonce too low",
	}
	PrecheckChainID = &Error{
		Code:    -32000,
		Message: "Unsupported chain ID",
	}
	PrecheckGasPrice = &Error{
		Code:    -32010,
		Message: "Gas price below minimum",
	}
	PrecheckIntrinsicGas = &Error{
		Code:    -32003,
		Message: "Intrinsic gas exceeds gas limit",
	}
	PrecheckInsufficientValue = &Error{
		Code:    -32005,
		Message: "Insufficient account balance",
	}
)

// Wrap attaches cause's message to base.Data without mutating the
// shared sentinel value, so the package-level *Error vars can be
// compared by identity anywhere in the codebase.
func Wrap(base *Error, cause error) *Error {
	wrapped := &Error{
		Code:    base.Code,
		Message: base.Message,
	}
	if cause != nil {
		wrapped.Data = map[string]any{"cause": cause.Error()}
	}
	return wrapped
}

// WrapData is Wrap with a caller-supplied structured payload instead of
// an error's message, used by e.g. RequestBeyondHeadBlock(requested, head).
func WrapData(base *Error, data any) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Data:    data,
	}
}
