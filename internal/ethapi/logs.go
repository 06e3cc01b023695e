package ethapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/hexcodec"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/rpcerror"
)

// logFilterParams mirrors eth_getLogs' single filter-object parameter.
type logFilterParams struct {
	BlockHash string
	FromBlock any
	ToBlock   any
	Address   string
	Topics    []any
}

func handleGetLogs(ctx context.Context, d *Dispatcher, params []any, requestID string) (any, *rpcerror.Error, error) {
	filter, ok := paramAny(params, 0).(map[string]any)
	if !ok {
		filter = map[string]any{}
	}
	parsed := logFilterParams{
		BlockHash: stringField(filter, "blockHash"),
		FromBlock: filter["fromBlock"],
		ToBlock:   filter["toBlock"],
		Address:   stringField(filter, "address"),
	}
	if topics, ok := filter["topics"].([]any); ok {
		parsed.Topics = topics
	}

	logs, err := getLogs(ctx, d, parsed)
	if err != nil {
		return nil, nil, err
	}
	return logs, nil, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// getLogs implements spec.md §4.4's log query planner.
func getLogs(ctx context.Context, d *Dispatcher, filter logFilterParams) ([]Log, error) {
	tsFrom, tsTo, ok, err := resolveLogTimestampWindow(ctx, d, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Log{}, nil
	}

	resultFilter := mirror.ContractResultsFilter{
		TimestampGTE: tsFrom,
		TimestampLTE: tsTo,
	}
	applyTopics(&resultFilter, filter.Topics)

	var logsResp *mirror.LogsResponse
	if filter.Address != "" {
		logsResp, err = d.Mirror.GetContractResultsLogsByAddress(ctx, filter.Address, resultFilter)
	} else {
		logsResp, err = d.Mirror.GetContractResultsLogs(ctx, resultFilter)
	}
	if err == mirror.ErrNotFound {
		return []Log{}, nil
	}
	if err != nil {
		return nil, err
	}

	return joinLogDetails(ctx, d, logsResp.Logs)
}

// resolveLogTimestampWindow implements spec.md §4.4 step 1.
func resolveLogTimestampWindow(ctx context.Context, d *Dispatcher, filter logFilterParams) (from, to string, ok bool, err error) {
	if filter.BlockHash != "" {
		block, err := d.Mirror.GetBlock(ctx, filter.BlockHash)
		if err == mirror.ErrNotFound {
			return "", "", false, nil
		}
		if err != nil {
			return "", "", false, err
		}
		return block.Timestamp.From, block.Timestamp.To, true, nil
	}

	if filter.FromBlock == nil && filter.ToBlock == nil {
		return "", "", true, nil
	}

	order := "asc"
	var lte, gte string
	if filter.ToBlock != nil {
		order = "desc"
		if n, err := blockSelectorToHex(ctx, d, filter.ToBlock); err == nil {
			lte = n
		}
	}
	if filter.FromBlock != nil {
		if n, err := blockSelectorToHex(ctx, d, filter.FromBlock); err == nil {
			gte = n
		}
	}

	resp, err := d.Mirror.GetBlocks(ctx, lte, gte, order)
	if err != nil {
		return "", "", false, err
	}
	if len(resp.Blocks) == 0 {
		return "", "", false, nil
	}

	// "From the response pick the earliest block's timestamp.from and
	// the latest block's timestamp.to, respecting the chosen order."
	first, last := resp.Blocks[0], resp.Blocks[len(resp.Blocks)-1]
	if order == "desc" {
		first, last = last, first
	}
	return first.Timestamp.From, last.Timestamp.To, true, nil
}

func blockSelectorToHex(ctx context.Context, d *Dispatcher, selector any) (string, error) {
	n, err := resolveBlockTag(ctx, d, selector)
	if err != nil {
		return "", err
	}
	return hexcodec.ToHexUint64(n), nil
}

// applyTopics maps positional topics (max four slots) to topic0..topic3
// query parameters (spec.md §4.4 step 2).
func applyTopics(filter *mirror.ContractResultsFilter, topics []any) {
	slots := []*string{&filter.Topic0, &filter.Topic1, &filter.Topic2, &filter.Topic3}
	for i := 0; i < len(topics) && i < len(slots); i++ {
		if s, ok := topics[i].(string); ok {
			*slots[i] = s
		}
	}
}

// joinLogDetails implements spec.md §4.4 steps 4-6: dedupe detail
// fetches by (contract_id, timestamp), fan them out in parallel, then
// join canonical block/transaction fields back onto each log with a
// sequential logIndex.
func joinLogDetails(ctx context.Context, d *Dispatcher, logs []mirror.Log) ([]Log, error) {
	type detailKey struct{ contractID, timestamp string }
	type detailResult struct {
		detail *mirror.ContractResult
		err    error
	}

	unique := map[detailKey]struct{}{}
	for _, l := range logs {
		unique[detailKey{l.ContractID, l.Timestamp}] = struct{}{}
	}

	results := make(map[detailKey]detailResult, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for key := range unique {
		wg.Add(1)
		key := key
		go func() {
			defer wg.Done()
			detail, err := d.Mirror.GetContractResultsDetails(ctx, key.contractID, key.timestamp)
			mu.Lock()
			results[key] = detailResult{detail: detail, err: err}
			mu.Unlock()
		}()
	}
	wg.Wait()

	out := make([]Log, 0, len(logs))
	for i, l := range logs {
		key := detailKey{l.ContractID, l.Timestamp}
		res := results[key]
		if res.err == mirror.ErrNotFound {
			// "If any detail fetch returns not found, return []."
			return []Log{}, nil
		}
		if res.err != nil {
			return nil, fmt.Errorf("join log details: %w", res.err)
		}

		out = append(out, Log{
			Address:          hexcodec.ToAddress(l.Address),
			BlockHash:        hexcodec.ToHash32(res.detail.BlockHash),
			BlockNumber:      hexUint64(res.detail.BlockNumber),
			Data:             hexcodec.Prepend0x(l.Data),
			LogIndex:         hexInt64(int64(i)),
			Removed:          false,
			Topics:           l.Topics,
			TransactionHash:  hexcodec.ToHash32(res.detail.Hash),
			TransactionIndex: hexInt64(int64(res.detail.TransactionIndex)),
		})
	}
	return out, nil
}
