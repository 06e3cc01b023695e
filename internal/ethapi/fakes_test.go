package ethapi

import (
	"context"
	"math/big"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/consensus"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/precheck"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

// fakeMirror is an in-memory mirror.Port for tests: every method
// delegates to an overridable function field, defaulting to
// mirror.ErrNotFound so an un-configured test fails loudly rather than
// silently returning a zero value.
type fakeMirror struct {
	latestBlock *mirror.Block
	blocks      map[string]*mirror.Block
	blocksList  *mirror.BlocksResponse
	results     *mirror.ContractResultsResponse
	resultByHash map[string]*mirror.ContractResult
	resultsByAddrTS map[string]*mirror.ContractResult
	logs        *mirror.LogsResponse
	logsByAddr  *mirror.LogsResponse
	detailByKey map[string]*mirror.ContractResult
	fees        *mirror.NetworkFeesResponse
	contracts   map[string]*mirror.Contract
	entities    map[string]*mirror.ResolvedEntity

	err error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		blocks:          map[string]*mirror.Block{},
		resultByHash:    map[string]*mirror.ContractResult{},
		resultsByAddrTS: map[string]*mirror.ContractResult{},
		detailByKey:     map[string]*mirror.ContractResult{},
		contracts:       map[string]*mirror.Contract{},
		entities:        map[string]*mirror.ResolvedEntity{},
	}
}

func (f *fakeMirror) GetLatestBlock(ctx context.Context) (*mirror.Block, error) {
	if f.latestBlock == nil {
		return nil, mirror.ErrNotFound
	}
	return f.latestBlock, nil
}

func (f *fakeMirror) GetBlock(ctx context.Context, hashOrNumber string) (*mirror.Block, error) {
	if b, ok := f.blocks[hashOrNumber]; ok {
		return b, nil
	}
	return nil, mirror.ErrNotFound
}

func (f *fakeMirror) GetBlocks(ctx context.Context, lte, gte string, order string) (*mirror.BlocksResponse, error) {
	if f.blocksList == nil {
		return &mirror.BlocksResponse{}, nil
	}
	return f.blocksList, nil
}

func (f *fakeMirror) GetContractResults(ctx context.Context, filter mirror.ContractResultsFilter, cursor string) (*mirror.ContractResultsResponse, error) {
	if f.results == nil {
		return &mirror.ContractResultsResponse{}, nil
	}
	return f.results, nil
}

func (f *fakeMirror) GetContractResult(ctx context.Context, hash string) (*mirror.ContractResult, error) {
	if r, ok := f.resultByHash[hash]; ok {
		return r, nil
	}
	return nil, mirror.ErrNotFound
}

func (f *fakeMirror) GetContractResultsByAddressAndTimestamp(ctx context.Context, to, timestamp string) (*mirror.ContractResult, error) {
	if r, ok := f.resultsByAddrTS[to+"|"+timestamp]; ok {
		return r, nil
	}
	return nil, mirror.ErrNotFound
}

func (f *fakeMirror) GetContractResultsLogs(ctx context.Context, filter mirror.ContractResultsFilter) (*mirror.LogsResponse, error) {
	if f.logs == nil {
		return &mirror.LogsResponse{}, nil
	}
	return f.logs, nil
}

func (f *fakeMirror) GetContractResultsLogsByAddress(ctx context.Context, address string, filter mirror.ContractResultsFilter) (*mirror.LogsResponse, error) {
	if f.logsByAddr == nil {
		return &mirror.LogsResponse{}, nil
	}
	return f.logsByAddr, nil
}

func (f *fakeMirror) GetContractResultsDetails(ctx context.Context, contractID, timestamp string) (*mirror.ContractResult, error) {
	if r, ok := f.detailByKey[contractID+"|"+timestamp]; ok {
		return r, nil
	}
	return nil, mirror.ErrNotFound
}

func (f *fakeMirror) GetNetworkFees(ctx context.Context, timestamp string) (*mirror.NetworkFeesResponse, error) {
	if f.fees == nil {
		return nil, mirror.ErrNotFound
	}
	return f.fees, nil
}

func (f *fakeMirror) GetContract(ctx context.Context, address string) (*mirror.Contract, error) {
	if c, ok := f.contracts[address]; ok {
		return c, nil
	}
	return nil, mirror.ErrNotFound
}

func (f *fakeMirror) ResolveEntityType(ctx context.Context, idOrAddress string) (*mirror.ResolvedEntity, error) {
	if e, ok := f.entities[idOrAddress]; ok {
		return e, nil
	}
	return nil, mirror.ErrNotFound
}

var _ mirror.Port = (*fakeMirror)(nil)

// fakeConsensus is an in-memory consensus.Port for tests.
type fakeConsensus struct {
	tinybarGasFee   int64
	tinybarGasErr   error
	accountBalance  *big.Int
	accountBalErr   error
	contractBalance *big.Int
	contractBalErr  error
	byteCode        []byte
	byteCodeErr     error
	accountInfo     *consensus.AccountInfo
	accountInfoErr  error
	submissionHandle *consensus.SubmissionHandle
	submitErr       error
	record          *consensus.ExecutionRecord
	recordErr       error
	callResult      []byte
	callErr         error
}

func (f *fakeConsensus) GetTinyBarGasFee(ctx context.Context, callerName string) (int64, error) {
	return f.tinybarGasFee, f.tinybarGasErr
}

func (f *fakeConsensus) GetAccountBalanceInWeiBar(ctx context.Context, account consensus.AccountID, callerName string) (*big.Int, error) {
	return f.accountBalance, f.accountBalErr
}

func (f *fakeConsensus) GetContractBalanceInWeiBar(ctx context.Context, contract consensus.ContractID, callerName string) (*big.Int, error) {
	return f.contractBalance, f.contractBalErr
}

func (f *fakeConsensus) GetContractByteCode(ctx context.Context, shard, realm uint64, address []byte, callerName string) ([]byte, error) {
	return f.byteCode, f.byteCodeErr
}

func (f *fakeConsensus) GetAccountInfo(ctx context.Context, account consensus.AccountID, callerName string) (*consensus.AccountInfo, error) {
	return f.accountInfo, f.accountInfoErr
}

func (f *fakeConsensus) SubmitEthereumTransaction(ctx context.Context, rawTx []byte, callerName string) (*consensus.SubmissionHandle, error) {
	return f.submissionHandle, f.submitErr
}

func (f *fakeConsensus) ExecuteGetTransactionRecord(ctx context.Context, handle *consensus.SubmissionHandle, txName, callerName string) (*consensus.ExecutionRecord, error) {
	return f.record, f.recordErr
}

func (f *fakeConsensus) SubmitContractCallQuery(ctx context.Context, to []byte, data []byte, gas uint64, from []byte, callerName string) ([]byte, error) {
	return f.callResult, f.callErr
}

var _ consensus.Port = (*fakeConsensus)(nil)

// fakePrecheck is an in-memory precheck.Port for tests.
type fakePrecheck struct {
	err *rpcerror.Error
}

func (f *fakePrecheck) Check(ctx context.Context, rawTxHex string, gasPrice string, requestID string) *rpcerror.Error {
	return f.err
}

var _ precheck.Port = (*fakePrecheck)(nil)
