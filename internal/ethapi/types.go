// Package ethapi is the core of the relay: the eth_* method dispatcher
// and its read/write translation engine (spec.md §4). It consumes a
// mirror.Port and a consensus.Port and produces Ethereum-shaped values.
package ethapi

// Block is the Ethereum-shaped block of spec.md §3.
type Block struct {
	Hash             string `json:"hash"`
	ParentHash       string `json:"parentHash"`
	Number           string `json:"number"`
	Timestamp        string `json:"timestamp"`
	GasLimit         string `json:"gasLimit"`
	GasUsed          string `json:"gasUsed"`
	BaseFeePerGas    string `json:"baseFeePerGas"`
	Transactions     []any  `json:"transactions"`
	TransactionsRoot string `json:"transactionsRoot"`

	Difficulty    string   `json:"difficulty"`
	MixHash       string   `json:"mixHash"`
	Nonce         string   `json:"nonce"`
	Sha3Uncles    string   `json:"sha3Uncles"`
	ReceiptsRoot  string   `json:"receiptsRoot"`
	StateRoot     string   `json:"stateRoot"`
	Uncles        []string `json:"uncles"`
	LogsBloom     string   `json:"logsBloom"`
	ExtraData     string   `json:"extraData"`
	Size          string   `json:"size"`
	Miner         string   `json:"miner"`
	TotalDifficulty string `json:"totalDifficulty"`
}

// Transaction is the Ethereum transaction shape of spec.md §3.
type Transaction struct {
	Hash                 string  `json:"hash"`
	BlockHash            *string `json:"blockHash"`
	BlockNumber          *string `json:"blockNumber"`
	From                 string  `json:"from"`
	To                   *string `json:"to"`
	Nonce                string  `json:"nonce"`
	Value                string  `json:"value"`
	Gas                  string  `json:"gas"`
	GasPrice             string  `json:"gasPrice"`
	Input                string  `json:"input"`
	TransactionIndex     *string `json:"transactionIndex"`
	Type                 string  `json:"type"`
	ChainID              string  `json:"chainId"`
	V                    string  `json:"v"`
	R                    string  `json:"r"`
	S                    string  `json:"s"`
	MaxFeePerGas         *string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *string `json:"maxPriorityFeePerGas,omitempty"`
}

// Log is the Ethereum log shape of spec.md §3.
type Log struct {
	Address          string   `json:"address"`
	BlockHash        string   `json:"blockHash"`
	BlockNumber      string   `json:"blockNumber"`
	Data             string   `json:"data"`
	LogIndex         string   `json:"logIndex"`
	Removed          bool     `json:"removed"`
	Topics           []string `json:"topics"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex string   `json:"transactionIndex"`
}

// Receipt is the Ethereum receipt shape of spec.md §3.
type Receipt struct {
	BlockHash         string  `json:"blockHash"`
	BlockNumber       string  `json:"blockNumber"`
	From              string  `json:"from"`
	To                *string `json:"to"`
	CumulativeGasUsed string  `json:"cumulativeGasUsed"`
	GasUsed           string  `json:"gasUsed"`
	ContractAddress   *string `json:"contractAddress,omitempty"`
	Logs              []Log   `json:"logs"`
	LogsBloom         string  `json:"logsBloom"`
	TransactionHash   string  `json:"transactionHash"`
	TransactionIndex  string  `json:"transactionIndex"`
	EffectiveGasPrice string  `json:"effectiveGasPrice"`
	Root              string  `json:"root"`
	Status            string  `json:"status"`
}

// FeeHistoryResult is the feeHistory response shape of spec.md §3.
type FeeHistoryResult struct {
	OldestBlock   string     `json:"oldestBlock"`
	BaseFeePerGas []string   `json:"baseFeePerGas"`
	GasUsedRatio  []*float64 `json:"gasUsedRatio"`
	Reward        [][]string `json:"reward,omitempty"`
}

// CallRequest is the parameter shape of eth_call/eth_estimateGas.
type CallRequest struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to" validate:"required,len=42"`
	Gas   any    `json:"gas,omitempty"`
	Value any    `json:"value,omitempty"`
	Data  string `json:"data,omitempty"`
}
