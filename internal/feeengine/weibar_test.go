package feeengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTinybarToWeibar(t *testing.T) {
	assert.Equal(t, "10000000000", TinybarToWeibar(1).String())
}

func TestTinybarToWeibarZero(t *testing.T) {
	assert.Zero(t, TinybarToWeibar(0).Sign())
}

func TestTinybarToWeibarLarge(t *testing.T) {
	assert.Equal(t, "8520000000000000000", TinybarToWeibar(852_000_000).String())
}
