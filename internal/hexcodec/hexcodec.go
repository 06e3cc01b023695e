// Package hexcodec implements the hex/number encoding contract of the
// Ethereum-shaped wire format: minimal-length, lower-case, 0x-prefixed
// hex for numbers, and fixed-width 0x-prefixed hex for hashes and
// addresses.
package hexcodec

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Bit-exact constants from spec.md §6.
var (
	// EmptyHash is the canonical "no bytes" hex value.
	EmptyHash = "0x"

	// ZeroHash is the canonical zero-valued hex number.
	ZeroHash = "0x0"

	// ZeroHash8Byte is an 8-byte (16 hex digit) zero value.
	ZeroHash8Byte = "0x" + strings.Repeat("0", 16)

	// ZeroHash32Byte is a 32-byte (64 hex digit) zero value.
	ZeroHash32Byte = "0x" + strings.Repeat("0", 64)

	// ZeroAddress is the 20-byte zero address.
	ZeroAddress = "0x" + strings.Repeat("0", 40)

	// EmptyBloom is the 256-byte zero logsBloom.
	EmptyBloom = "0x" + strings.Repeat("0", 512)

	// EmptyArrayKeccak is keccak256(rlp([])), the value go-ethereum uses
	// for sha3Uncles on blocks with no uncles.
	EmptyArrayKeccak = crypto.Keccak256Hash([]byte{0xc0}).Hex()

	// EmptyTrieRoot is keccak256(rlp("")), the value go-ethereum uses for
	// an empty Merkle-Patricia trie (transactionsRoot of a block with no
	// transactions).
	EmptyTrieRoot = crypto.Keccak256Hash([]byte{0x80}).Hex()
)

// ToHex renders an unsigned integer or big.Int as minimal-length,
// lower-case 0x-prefixed hex. Zero renders as "0x0", never "0x" or
// "0x00".
func ToHex(n *big.Int) string {
	if n == nil || n.Sign() == 0 {
		return ZeroHash
	}
	return hexutil.EncodeBig(n)
}

// ToHexUint64 is ToHex for a uint64 operand.
func ToHexUint64(n uint64) string {
	if n == 0 {
		return ZeroHash
	}
	return hexutil.EncodeUint64(n)
}

// ToHexOrNull is ToHex with null passthrough for an absent value.
func ToHexOrNull(n *big.Int) any {
	if n == nil {
		return nil
	}
	return ToHex(n)
}

// Prepend0x idempotently ensures s carries a "0x" prefix.
func Prepend0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}

// Prune0x idempotently strips a leading "0x" prefix, if present.
func Prune0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

// ToHash32 truncates s to the canonical 66-character (0x + 64 nibble)
// hash width. s is assumed already 0x-prefixed hex of at least 64
// nibbles; this is a truncation, not a validating parse.
func ToHash32(s string) string {
	if len(s) <= 66 {
		return s
	}
	return s[:66]
}

// ToAddress truncates/pads s to the canonical 42-character (0x + 40
// nibble) address width.
func ToAddress(s string) string {
	s = Prepend0x(s)
	if len(s) >= 42 {
		return s[:42]
	}
	return "0x" + strings.Repeat("0", 40-len(Prune0x(s))) + Prune0x(s)
}

// ToNullIfEmpty maps the literal "0x" to nil (absent); everything else
// passes through unchanged. This is the single choke point the design
// notes call for collapsing the source's undefined/null/"0x" tri-state
// into one Option-like representation.
func ToNullIfEmpty(s string) any {
	if s == EmptyHash {
		return nil
	}
	return s
}

// ParseBlockSelector parses a decimal or hex integer string into a
// big.Int, stripping any 0x prefix first. It does not interpret the
// well-known tag strings ("latest", "pending", "earliest") — that is
// the block-tag resolver's job.
func ParseBlockSelector(s string) (*big.Int, error) {
	trimmed := Prune0x(s)
	if trimmed == "" {
		return nil, strconv.ErrSyntax
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, ok := new(big.Int).SetString(trimmed, 16)
		if !ok {
			return nil, strconv.ErrSyntax
		}
		return n, nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, strconv.ErrSyntax
	}
	return n, nil
}

// EntityIDToAddress converts a ledger entity id's 20-byte-representable
// numeric form into a canonical EVM address. realmNum and entityNum are
// packed into the low-order bytes the way the ledger does it, with
// shard in the high-order byte range, matching how created-contract ids
// and account ids are projected into EVM addresses throughout the
// transaction and receipt assembler.
func EntityIDToAddress(shard, realm, entity uint64) common.Address {
	var addr common.Address
	b := addr[:]
	b[0] = byte(shard)
	putUint64BE(b[4:12], realm)
	putUint64BE(b[12:20], entity)
	return addr
}

func putUint64BE(b []byte, v uint64) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
