package ethapi

import (
	"context"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/hexcodec"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

func handleBlockNumber(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	block, err := d.Mirror.GetLatestBlock(ctx)
	if err != nil {
		// blockNumber has no sensible "absent" value to return, so an
		// internal failure here throws rather than returning a default
		// (spec.md §7 propagation policy).
		return nil, nil, err
	}
	return hexUint64(block.Number), nil, nil
}

func handleGetTransactionByHash(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	hash := paramString(params, 0)
	cr, err := d.Mirror.GetContractResult(ctx, hash)
	if err == mirror.ErrNotFound {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if cr.Hash == "" {
		return nil, nil, nil
	}
	return projectTransaction(cr), nil, nil
}

func handleGetTransactionByBlockHashAndIndex(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	blockHash := paramString(params, 0)
	index := paramIndex(params, 1)
	return getTransactionByBlockAndIndex(ctx, d, mirror.ContractResultsFilter{BlockHash: blockHash, TransactionIndex: &index})
}

func handleGetTransactionByBlockNumberAndIndex(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	selector := paramAny(params, 0)
	index := paramIndex(params, 1)
	num, err := resolveBlockTag(ctx, d, selector)
	if err != nil {
		return nil, nil, err
	}
	return getTransactionByBlockAndIndex(ctx, d, mirror.ContractResultsFilter{BlockNumber: &num, TransactionIndex: &index})
}

func paramIndex(params []any, i int) int {
	s := paramString(params, i)
	n, err := hexcodec.ParseBlockSelector(s)
	if err != nil {
		return 0
	}
	return int(n.Int64())
}

// getTransactionByBlockAndIndex implements spec.md §4.3's
// getTransactionByBlockHashAndIndex/ByBlockNumberAndIndex: query the
// contract-results endpoint filtered by block identifier and
// transaction index, then enrich the first hit via
// getContractResultsByAddressAndTimestamp for the fee/nonce/signature
// fields the index alone does not carry.
func getTransactionByBlockAndIndex(ctx context.Context, d *Dispatcher, filter mirror.ContractResultsFilter) (any, *rpcerror.Error, error) {
	resp, err := d.Mirror.GetContractResults(ctx, filter, "")
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil, nil
	}
	first := resp.Results[0]
	if first.To == nil {
		return nil, nil, nil
	}
	detail, err := d.Mirror.GetContractResultsByAddressAndTimestamp(ctx, *first.To, first.Timestamp)
	if err == mirror.ErrNotFound {
		return projectTransaction(&first), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return projectTransaction(detail), nil, nil
}

func handleGetTransactionReceipt(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	hash := paramString(params, 0)
	cr, err := d.Mirror.GetContractResult(ctx, hash)
	if err == mirror.ErrNotFound {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return projectReceipt(cr), nil, nil
}

func handleGetBlockByHash(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	selector := paramString(params, 0)
	showDetails := paramBool(params, 1)
	block, err := getBlock(ctx, d, selector, showDetails)
	if err != nil {
		return nil, nil, err
	}
	if block == nil {
		return nil, nil, nil
	}
	return block, nil, nil
}

func handleGetBlockByNumber(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	selector := paramAny(params, 0)
	showDetails := paramBool(params, 1)
	block, err := getBlock(ctx, d, selector, showDetails)
	if err != nil {
		return nil, nil, err
	}
	if block == nil {
		return nil, nil, nil
	}
	return block, nil, nil
}

// getBlock implements spec.md §4.3's shared getBlock algorithm.
func getBlock(ctx context.Context, d *Dispatcher, selector any, showDetails bool) (*Block, error) {
	mirrorBlock, err := resolveBlockRecord(ctx, d, selector)
	if err != nil {
		return nil, err
	}
	if mirrorBlock == nil {
		return nil, nil
	}

	results, err := d.Mirror.GetContractResults(ctx, mirror.ContractResultsFilter{
		TimestampGTE: mirrorBlock.Timestamp.From,
		TimestampLTE: mirrorBlock.Timestamp.To,
	}, "")
	if err != nil {
		return nil, err
	}

	var gasUsed int64
	var gasLimit int64
	var firstTimestamp string
	for _, r := range results.Results {
		gasUsed += r.GasUsed
		if r.GasLimit > gasLimit {
			gasLimit = r.GasLimit
		}
		if firstTimestamp == "" {
			firstTimestamp = r.Timestamp
		}
	}

	baseFee, err := d.gasPrice(ctx)
	if err != nil {
		return nil, err
	}

	txItems, err := materializeTransactions(ctx, d, results.Results, showDetails)
	if err != nil {
		return nil, err
	}

	transactionsRoot := hexcodec.EmptyTrieRoot
	if len(txItems) > 0 {
		transactionsRoot = mirrorBlock.Hash
	}

	return &Block{
		Hash:             hexcodec.ToHash32(mirrorBlock.Hash),
		ParentHash:       hexcodec.ToHash32(mirrorBlock.PreviousHash),
		Number:           hexUint64(mirrorBlock.Number),
		Timestamp:        hexBig(truncateTimestampSeconds(firstTimestamp)),
		GasLimit:         hexInt64(gasLimit),
		GasUsed:          hexInt64(gasUsed),
		BaseFeePerGas:    hexBig(baseFee),
		Transactions:     txItems,
		TransactionsRoot: transactionsRoot,

		Difficulty:   hexcodec.ZeroHash,
		MixHash:      hexcodec.ZeroHash32Byte,
		Nonce:        hexcodec.ZeroHash8Byte,
		Sha3Uncles:   hexcodec.EmptyArrayKeccak,
		ReceiptsRoot: hexcodec.ZeroHash32Byte,
		StateRoot:    hexcodec.ZeroHash32Byte,
		Uncles:       []string{},
		LogsBloom:    hexcodec.EmptyBloom,
		Miner:        hexcodec.ZeroAddress,
	}, nil
}

// resolveBlockRecord implements spec.md §4.3 step 1: nil, "",
// "latest" and "pending" fetch the latest block, "earliest" fetches
// block 0, and any other string is forwarded unchanged to GetBlock,
// leaving the mirror to tell a hash from a number. A numeric
// (non-string) selector is forwarded in decimal form.
func resolveBlockRecord(ctx context.Context, d *Dispatcher, selector any) (*mirror.Block, error) {
	s, isString := selector.(string)
	if selector == nil || (isString && (s == "" || s == "latest" || s == "pending")) {
		return d.Mirror.GetLatestBlock(ctx)
	}
	if isString && s == "earliest" {
		block, err := d.Mirror.GetBlock(ctx, "0")
		if err == mirror.ErrNotFound {
			return nil, nil
		}
		return block, err
	}
	var key string
	if isString {
		key = s
	} else if n, ok := toUint64(selector); ok {
		key = strconv.FormatUint(n, 10)
	}
	block, err := d.Mirror.GetBlock(ctx, key)
	if err == mirror.ErrNotFound {
		return nil, nil
	}
	return block, err
}

func toUint64(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint64:
		return t, true
	case int64:
		return uint64(t), true
	case float64:
		return uint64(t), true
	}
	return 0, false
}

// materializeTransactions collects one entry per contract-result with a
// non-null "to" (spec.md §4.3 step 4). With showDetails it fetches each
// result's full detail concurrently and returns Transactions; without
// it, it returns the results' own hashes and makes no detail fetch.
// Missing transactions (null "to") are silently skipped; order follows
// the contract-results query with no re-sort.
func materializeTransactions(ctx context.Context, d *Dispatcher, results []mirror.ContractResult, showDetails bool) ([]any, error) {
	type indexed struct {
		idx   int
		value any
		err   error
	}

	var wg sync.WaitGroup
	out := make(chan indexed, len(results))

	kept := 0
	for i, r := range results {
		if r.To == nil {
			continue
		}
		wg.Add(1)
		i, r := i, r
		go func() {
			defer wg.Done()
			if showDetails {
				detail, err := d.Mirror.GetContractResultsByAddressAndTimestamp(ctx, *r.To, r.Timestamp)
				if err != nil {
					out <- indexed{idx: i, err: err}
					return
				}
				out <- indexed{idx: i, value: projectTransaction(detail)}
				return
			}
			out <- indexed{idx: i, value: hexcodec.ToHash32(r.Hash)}
		}()
		kept++
	}

	wg.Wait()
	close(out)

	byIndex := make(map[int]any, kept)
	for item := range out {
		if item.err != nil {
			return nil, item.err
		}
		byIndex[item.idx] = item.value
	}

	ordered := make([]any, 0, kept)
	for i := range results {
		if v, ok := byIndex[i]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// truncateTimestampSeconds splits a "seconds.nanoseconds" consensus
// timestamp at the decimal point and returns the whole-seconds portion
// (spec.md §4.3 step 3, §9 design note: this is the first
// transaction's timestamp, not the block's own).
func truncateTimestampSeconds(ts string) *big.Int {
	if ts == "" {
		return big.NewInt(0)
	}
	secondsPart := ts
	if idx := strings.IndexByte(ts, '.'); idx >= 0 {
		secondsPart = ts[:idx]
	}
	n, ok := new(big.Int).SetString(secondsPart, 10)
	if !ok {
		return big.NewInt(0)
	}
	return n
}

// projectTransaction implements spec.md §4.3's Transaction projection.
func projectTransaction(cr *mirror.ContractResult) *Transaction {
	tx := &Transaction{
		Hash:             hexcodec.ToHash32(cr.Hash),
		From:             addressOrEntityID(cr.From),
		Nonce:            hexUint64(cr.Nonce),
		Value:            hexInt64(cr.Amount),
		Gas:              hexInt64(cr.GasLimit),
		GasPrice:         hexString(cr.GasPrice),
		Input:            hexcodec.Prepend0x(cr.FunctionParameters),
		Type:             hexInt64(int64(cr.Type)),
		V:                hexInt64(int64(cr.V)),
		R:                truncate66(cr.R),
		S:                truncate66(cr.S),
	}

	if cr.To != nil {
		addr := hexcodec.ToAddress(*cr.To)
		tx.To = &addr
	}
	if cr.BlockHash != "" {
		blockHash := hexcodec.ToHash32(cr.BlockHash)
		tx.BlockHash = &blockHash
	}
	if cr.BlockNumber != 0 {
		blockNum := hexUint64(cr.BlockNumber)
		tx.BlockNumber = &blockNum
	}
	idx := hexInt64(int64(cr.TransactionIndex))
	tx.TransactionIndex = &idx
	if cr.ChainID != "" && cr.ChainID != hexcodec.EmptyHash {
		tx.ChainID = hexString(cr.ChainID)
	}

	// mirror's "0x" sentinel means absent (spec.md §4.3, §9 "Ambient
	// null-vs-absent"); choke point is hexcodec.ToNullIfEmpty.
	if v := hexcodec.ToNullIfEmpty(cr.MaxFeePerGas); v != nil {
		s := v.(string)
		tx.MaxFeePerGas = &s
	}
	if v := hexcodec.ToNullIfEmpty(cr.MaxPriorityFeePerGas); v != nil {
		s := v.(string)
		tx.MaxPriorityFeePerGas = &s
	}

	return tx
}

// projectReceipt implements spec.md §4.3's Receipt projection.
func projectReceipt(cr *mirror.ContractResult) *Receipt {
	effectiveGasPriceTinybar := cr.MaxFeePerGas
	if effectiveGasPriceTinybar == "" || effectiveGasPriceTinybar == hexcodec.EmptyHash {
		effectiveGasPriceTinybar = cr.GasPrice
	}

	receipt := &Receipt{
		BlockHash:         hexcodec.ToHash32(cr.BlockHash),
		BlockNumber:       hexUint64(cr.BlockNumber),
		From:              addressOrEntityID(cr.From),
		CumulativeGasUsed: hexInt64(cr.BlockGasUsed),
		GasUsed:           hexInt64(cr.GasUsed),
		LogsBloom:         hexcodec.Prepend0x(cr.Bloom),
		TransactionHash:   hexcodec.ToHash32(cr.Hash),
		TransactionIndex:  hexInt64(int64(cr.TransactionIndex)),
		EffectiveGasPrice: hexEffectiveGasPrice(effectiveGasPriceTinybar),
		Root:              hexcodec.Prepend0x(cr.Root),
		Status:            hexInt64(statusToInt(cr.Status)),
	}

	if cr.To != nil {
		addr := hexcodec.ToAddress(*cr.To)
		receipt.To = &addr
	}

	if len(cr.CreatedContractIDs) > 0 {
		addr, err := entityIDToEVMAddress(cr.CreatedContractIDs[0])
		if err == nil {
			receipt.ContractAddress = &addr
		}
	}

	receipt.Logs = make([]Log, 0, len(cr.Logs))
	for i, l := range cr.Logs {
		receipt.Logs = append(receipt.Logs, Log{
			Address:          hexcodec.ToAddress(l.Address),
			BlockHash:        receipt.BlockHash,
			BlockNumber:      receipt.BlockNumber,
			Data:             hexcodec.Prepend0x(l.Data),
			LogIndex:         hexInt64(int64(i)),
			Removed:          false,
			Topics:           l.Topics,
			TransactionHash:  receipt.TransactionHash,
			TransactionIndex: receipt.TransactionIndex,
		})
	}

	return receipt
}

func hexString(s string) string {
	if s == "" {
		return hexcodec.ZeroHash
	}
	return hexcodec.Prepend0x(s)
}

func hexEffectiveGasPrice(tinybarHex string) string {
	if tinybarHex == "" || tinybarHex == hexcodec.EmptyHash {
		return hexcodec.ZeroHash
	}
	n, ok := new(big.Int).SetString(hexcodec.Prune0x(tinybarHex), 16)
	if !ok {
		return hexcodec.ZeroHash
	}
	scaled := new(big.Int).Mul(n, big.NewInt(10_000_000_000))
	return hexBig(scaled)
}

func truncate66(s string) string {
	s = hexcodec.Prepend0x(s)
	return hexcodec.ToHash32(s)
}

func statusToInt(status string) int64 {
	if status == "0x1" || status == "1" {
		return 1
	}
	return 0
}
