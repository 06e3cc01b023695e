package hexcodec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHexZero(t *testing.T) {
	assert.Equal(t, "0x0", ToHex(big.NewInt(0)))
	assert.Equal(t, "0x0", ToHex(nil))
}

func TestToHexMinimalLength(t *testing.T) {
	cases := map[int64]string{
		1:    "0x1",
		255:  "0xff",
		256:  "0x100",
		4096: "0x1000",
	}
	for n, want := range cases {
		assert.Equal(t, want, ToHex(big.NewInt(n)), "ToHex(%d)", n)
	}
}

func TestToHexOrNull(t *testing.T) {
	assert.Nil(t, ToHexOrNull(nil))
	assert.Equal(t, "0x5", ToHexOrNull(big.NewInt(5)))
}

func TestPrepend0xIdempotent(t *testing.T) {
	once := Prepend0x("abc")
	twice := Prepend0x(once)
	assert.Equal(t, once, twice, "Prepend0x should be idempotent")
	assert.Equal(t, "0xabc", once)
}

func TestPrune0xIdempotent(t *testing.T) {
	once := Prune0x("0xabc")
	twice := Prune0x(once)
	assert.Equal(t, once, twice, "Prune0x should be idempotent")
	assert.Equal(t, "abc", once)
}

func TestToHash32Truncates(t *testing.T) {
	long := "0x" + repeat("ab", 40)
	require.Len(t, ToHash32(long), 66)
}

func TestToNullIfEmpty(t *testing.T) {
	assert.Nil(t, ToNullIfEmpty(EmptyHash))
	assert.Equal(t, "0x1234", ToNullIfEmpty("0x1234"))
}

func TestParseBlockSelectorHexAndDecimal(t *testing.T) {
	n, err := ParseBlockSelector("0xff")
	require.NoError(t, err)
	assert.EqualValues(t, 255, n.Int64())

	n, err = ParseBlockSelector("255")
	require.NoError(t, err)
	assert.EqualValues(t, 255, n.Int64())
}

func TestEntityIDToAddress(t *testing.T) {
	addr := EntityIDToAddress(0, 0, 1001)
	require.Len(t, addr, 20)
	assert.Equal(t, byte(0xe9), addr[19]) // 1001 = 0x3e9
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
