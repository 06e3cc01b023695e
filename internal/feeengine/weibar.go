// Package feeengine holds the tinybar/weibar scaling primitive shared
// by the fee and gas-price engine (spec.md §4.5, §6: "Tinybar→weibar:
// x10^10"). It uses go-ethereum's 256-bit integer type so the scaling
// step stays in fixed-width arithmetic all the way to the hex encoder,
// the same way the pack's go-ethereum-based client code favors
// uint256/big.Int over naive int64 multiplication for anything fee or
// balance related.
package feeengine

import (
	"math/big"

	"github.com/holiman/uint256"
)

// TinybarToWeibarFactor is the constant scale factor between the
// ledger's native unit and its EVM-scaled equivalent.
var TinybarToWeibarFactor = uint256.NewInt(10_000_000_000)

// TinybarToWeibar converts a non-negative tinybar amount to its weibar
// equivalent, returning the result as a big.Int for hand-off to the hex
// codec.
func TinybarToWeibar(tinybars uint64) *big.Int {
	scaled := new(uint256.Int).Mul(uint256.NewInt(tinybars), TinybarToWeibarFactor)
	return scaled.ToBig()
}
