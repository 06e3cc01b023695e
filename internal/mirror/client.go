package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/metrics"
)

// HTTPClient is a thin REST client over a mirror node base URL. It goes
// no further than spec.md §6's operation list: no pagination following,
// no retry — those are explicitly out of scope (spec.md §1). It exists
// because the core needs something concrete to run against, in the
// same spirit as the teacher's internal/rpc/client.go wrapping
// context-aware http.Client calls.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPClient creates a mirror node REST client rooted at baseURL
// (e.g. "https://mainnet-public.mirrornode.hedera.com/api/v1").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

func (c *HTTPClient) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	err := c.doGet(ctx, path, query, out)
	switch err {
	case nil:
		metrics.MirrorRequestsTotal.WithLabelValues(operation, "ok").Inc()
	case ErrNotFound:
		metrics.MirrorRequestsTotal.WithLabelValues(operation, "not_found").Inc()
	default:
		metrics.MirrorRequestsTotal.WithLabelValues(operation, "error").Inc()
	}
	return err
}

func (c *HTTPClient) doGet(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("mirror: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mirror: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mirror: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mirror: %s returned status %d: %s", path, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("mirror: decode response from %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) GetLatestBlock(ctx context.Context) (*Block, error) {
	var resp BlocksResponse
	q := url.Values{"limit": {"1"}, "order": {"desc"}}
	if err := c.get(ctx, "getLatestBlock", "/blocks", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Blocks) == 0 {
		return nil, ErrNotFound
	}
	return &resp.Blocks[0], nil
}

func (c *HTTPClient) GetBlock(ctx context.Context, hashOrNumber string) (*Block, error) {
	var block Block
	if err := c.get(ctx, "getBlock", "/blocks/"+hashOrNumber, nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (c *HTTPClient) GetBlocks(ctx context.Context, lte, gte string, order string) (*BlocksResponse, error) {
	q := url.Values{}
	if lte != "" {
		q.Set("block.number", "lte:"+lte)
	}
	if gte != "" {
		q.Add("block.number", "gte:"+gte)
	}
	if order != "" {
		q.Set("order", order)
	}
	var resp BlocksResponse
	if err := c.get(ctx, "getBlocks", "/blocks", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func applyFilter(q url.Values, filter ContractResultsFilter) {
	if filter.BlockHash != "" {
		q.Set("block.hash", filter.BlockHash)
	}
	if filter.BlockNumber != nil {
		q.Set("block.number", strconv.FormatUint(*filter.BlockNumber, 10))
	}
	if filter.TimestampGTE != "" {
		q.Add("timestamp", "gte:"+filter.TimestampGTE)
	}
	if filter.TimestampLTE != "" {
		q.Add("timestamp", "lte:"+filter.TimestampLTE)
	}
	if filter.TransactionIndex != nil {
		q.Set("transaction.index", strconv.Itoa(*filter.TransactionIndex))
	}
	for i, topic := range []string{filter.Topic0, filter.Topic1, filter.Topic2, filter.Topic3} {
		if topic != "" {
			q.Set(fmt.Sprintf("topic%d", i), topic)
		}
	}
	if filter.Order != "" {
		q.Set("order", filter.Order)
	}
}

func (c *HTTPClient) GetContractResults(ctx context.Context, filter ContractResultsFilter, cursor string) (*ContractResultsResponse, error) {
	q := url.Values{}
	applyFilter(q, filter)
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	var resp ContractResultsResponse
	if err := c.get(ctx, "getContractResults", "/contracts/results", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetContractResult(ctx context.Context, hash string) (*ContractResult, error) {
	var result ContractResult
	if err := c.get(ctx, "getContractResult", "/contracts/results/"+hash, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetContractResultsByAddressAndTimestamp(ctx context.Context, to, timestamp string) (*ContractResult, error) {
	q := url.Values{"timestamp": {timestamp}}
	var resp ContractResultsResponse
	if err := c.get(ctx, "getContractResultsByAddressAndTimestamp", "/contracts/"+to+"/results", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNotFound
	}
	return &resp.Results[0], nil
}

func (c *HTTPClient) GetContractResultsLogs(ctx context.Context, filter ContractResultsFilter) (*LogsResponse, error) {
	q := url.Values{}
	applyFilter(q, filter)
	var resp LogsResponse
	if err := c.get(ctx, "getContractResultsLogs", "/contracts/results/logs", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetContractResultsLogsByAddress(ctx context.Context, address string, filter ContractResultsFilter) (*LogsResponse, error) {
	q := url.Values{}
	applyFilter(q, filter)
	var resp LogsResponse
	if err := c.get(ctx, "getContractResultsLogsByAddress", "/contracts/"+address+"/results/logs", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetContractResultsDetails(ctx context.Context, contractID, timestamp string) (*ContractResult, error) {
	q := url.Values{"timestamp": {timestamp}}
	var result ContractResult
	if err := c.get(ctx, "getContractResultsDetails", "/contracts/"+contractID+"/results/"+timestamp, q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetNetworkFees(ctx context.Context, timestamp string) (*NetworkFeesResponse, error) {
	q := url.Values{}
	if timestamp != "" {
		q.Set("timestamp", "lte:"+timestamp)
	}
	var resp NetworkFeesResponse
	if err := c.get(ctx, "getNetworkFees", "/network/fees", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetContract(ctx context.Context, address string) (*Contract, error) {
	var contract Contract
	if err := c.get(ctx, "getContract", "/contracts/"+address, nil, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (c *HTTPClient) ResolveEntityType(ctx context.Context, idOrAddress string) (*ResolvedEntity, error) {
	var entity ResolvedEntity
	if err := c.get(ctx, "resolveEntityType", "/accounts/"+idOrAddress, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

var _ Port = (*HTTPClient)(nil)
