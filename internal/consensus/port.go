// Package consensus declares the ConsensusPort collaborator of
// spec.md §6: the write-capable native-protocol client used for
// transaction submission, view calls, and point-in-time reads that the
// mirror cannot (yet) serve. Its implementation — authentication,
// signing, receipt polling against the real consensus nodes — is
// explicitly out of scope (spec.md §1); only the Go-level contract
// lives here.
package consensus

import (
	"context"
	"math/big"
)

// AccountID and ContractID are the ledger's native entity identifiers,
// distinct from the EVM address spaces ethapi projects them into.
type AccountID struct {
	Shard, Realm, Num uint64
}

type ContractID struct {
	Shard, Realm, Num uint64
}

// ErrInvalidAccountID and ErrInvalidContractID signal that the id does
// not resolve to any live entity (spec.md §4.7, §7).
var (
	ErrInvalidAccountID  = invalidIDError{kind: "account"}
	ErrInvalidContractID = invalidIDError{kind: "contract"}
)

type invalidIDError struct{ kind string }

func (e invalidIDError) Error() string { return "consensus: invalid " + e.kind + " id" }

// ExecutionRecord is the outcome of a submitted transaction, as
// returned by ExecuteGetTransactionRecord (spec.md §4.6 step 5).
type ExecutionRecord struct {
	EthereumHash []byte // nil if the ledger did not assign one
	Status       string
}

// SubmissionHandle identifies a submitted transaction for later record
// retrieval.
type SubmissionHandle struct {
	TransactionID string
}

// Port is the ConsensusPort collaborator.
type Port interface {
	GetTinyBarGasFee(ctx context.Context, callerName string) (int64, error)
	GetAccountBalanceInWeiBar(ctx context.Context, account AccountID, callerName string) (*big.Int, error)
	GetContractBalanceInWeiBar(ctx context.Context, contract ContractID, callerName string) (*big.Int, error)
	GetContractByteCode(ctx context.Context, shard, realm uint64, address []byte, callerName string) ([]byte, error)
	GetAccountInfo(ctx context.Context, account AccountID, callerName string) (*AccountInfo, error)
	SubmitEthereumTransaction(ctx context.Context, rawTx []byte, callerName string) (*SubmissionHandle, error)
	ExecuteGetTransactionRecord(ctx context.Context, handle *SubmissionHandle, txName, callerName string) (*ExecutionRecord, error)
	SubmitContractCallQuery(ctx context.Context, to []byte, data []byte, gas uint64, from []byte, callerName string) ([]byte, error)
}

// AccountInfo is the subset of getAccountInfo the relay needs.
type AccountInfo struct {
	EthereumNonce uint64
}
