package exact

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strings"

	num "github.com/shabbyrobe/go-num"
)

var (
	u64 = num.U128From64
	i64 = num.I128From64

	maxU128 = num.U128FromRaw(math.MaxUint64, math.MaxUint64)
	maxI128 = num.U128FromRaw(math.MaxInt64, math.MaxUint64).AsI128()
	minI128 = num.U128FromRaw(1<<63, 0).AsI128()
)

func u128s(s string) num.U128 {
	s = strings.Replace(s, " ", "", -1)
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic(fmt.Errorf("exact: u128 string %q invalid", s))
	}
	out, acc := num.U128FromBigInt(b)
	if !acc {
		panic(fmt.Errorf("exact: inaccurate u128 %s", s))
	}
	return out
}

// randU128 fills a value from scratch. Half of the values stay below 1<<64
// so the small gcd path gets exercised.
func randU128(scratch []byte) num.U128 {
	rand.Read(scratch)
	lo := binary.LittleEndian.Uint64(scratch)
	var hi uint64
	if scratch[0]%2 == 1 {
		hi = binary.LittleEndian.Uint64(scratch[8:])
	}
	return num.U128FromRaw(hi, lo)
}

// randI128 is randU128 reinterpreted as two's complement, so the sign is
// random as well.
func randI128(scratch []byte) num.I128 {
	u := randU128(scratch)
	if scratch[1]%2 == 1 {
		return u.AsI128().Neg()
	}
	return u.AsI128()
}
