package exact

import (
	"math/big"
	"testing"

	num "github.com/shabbyrobe/go-num"
	"github.com/stretchr/testify/require"
)

func TestMulWideMatchesBigInt(t *testing.T) {
	scratch := make([]byte, 16)
	for _, tc := range [][2]num.U128{
		{maxU128, maxU128},
		{maxU128, u64(1)},
		{u64(0), maxU128},
		{u128s("0x1 0000000000000000"), u128s("0x1 0000000000000000")},
	} {
		hi, lo := mulWide(tc[0], tc[1])
		require.Equal(t, new(big.Int).Mul(tc[0].AsBigInt(), tc[1].AsBigInt()).String(), join256(hi, lo).String())
	}

	for i := 0; i < 5000; i++ {
		a, b := randU128(scratch), randU128(scratch)
		hi, lo := mulWide(a, b)
		require.Equal(t, new(big.Int).Mul(a.AsBigInt(), b.AsBigInt()).String(), join256(hi, lo).String())

		// the low half is always the wrapped product
		require.Equal(t, a.Mul(b), lo)
	}
}

func TestCmpWide(t *testing.T) {
	require.Equal(t, 0, cmpWide(u64(1), u64(2), u64(1), u64(2)))
	require.Equal(t, -1, cmpWide(u64(0), maxU128, u64(1), u64(0)))
	require.Equal(t, 1, cmpWide(u64(1), u64(0), u64(0), maxU128))
	require.Equal(t, 1, cmpWide(u64(1), u64(3), u64(1), u64(2)))
}

func join256(hi, lo num.U128) *big.Int {
	v := hi.AsBigInt()
	v.Lsh(v, 128)
	return v.Or(v, lo.AsBigInt())
}
