package mirror

import "context"

// Port is the MirrorPort collaborator of spec.md §6: a read-optimized,
// idempotent HTTP/REST indexer over the ledger. Its implementation
// (request construction, pagination, retry) is explicitly out of scope
// for this module (spec.md §1); only the contract the core depends on
// is declared here.
type Port interface {
	GetLatestBlock(ctx context.Context) (*Block, error)
	GetBlock(ctx context.Context, hashOrNumber string) (*Block, error)
	GetBlocks(ctx context.Context, lte, gte string, order string) (*BlocksResponse, error)
	GetContractResults(ctx context.Context, filter ContractResultsFilter, cursor string) (*ContractResultsResponse, error)
	GetContractResult(ctx context.Context, hash string) (*ContractResult, error)
	GetContractResultsByAddressAndTimestamp(ctx context.Context, to, timestamp string) (*ContractResult, error)
	GetContractResultsLogs(ctx context.Context, filter ContractResultsFilter) (*LogsResponse, error)
	GetContractResultsLogsByAddress(ctx context.Context, address string, filter ContractResultsFilter) (*LogsResponse, error)
	GetContractResultsDetails(ctx context.Context, contractID, timestamp string) (*ContractResult, error)
	GetNetworkFees(ctx context.Context, timestamp string) (*NetworkFeesResponse, error)
	GetContract(ctx context.Context, address string) (*Contract, error)
	ResolveEntityType(ctx context.Context, idOrAddress string) (*ResolvedEntity, error)
}
