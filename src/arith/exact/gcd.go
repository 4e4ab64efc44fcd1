package exact

import num "github.com/shabbyrobe/go-num"

// GCD returns the greatest common divisor of a and b using Euclid's
// remainder algorithm. GCD(0, 0) is 0 and GCD(a, 0) is a.
func GCD(a, b num.U128) num.U128 {
	for !b.IsZero() {
		ahi, alo := a.Raw()
		bhi, blo := b.Raw()
		if ahi == 0 && bhi == 0 {
			return num.U128From64(gcd64(alo, blo))
		}
		_, r := a.QuoRem(b)
		a, b = b, r
	}
	return a
}

func gcd64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// GCDI128 returns the GCD of |a| and b. The magnitude of a is taken as
// unsigned so the most negative I128 is handled without overflow.
func GCDI128(a num.I128, b num.U128) num.U128 {
	return GCD(a.AbsU128(), b)
}

// LCM returns the least common multiple of a and b, or 0 if either is 0.
// The result wraps if it does not fit in 128 bits.
func LCM(a, b num.U128) num.U128 {
	if a.IsZero() || b.IsZero() {
		return num.U128{}
	}
	return quo(a, GCD(a, b)).Mul(b)
}

// quo returns a/b for b != 0.
func quo(a, b num.U128) num.U128 {
	q, _ := a.QuoRem(b)
	return q
}

// quoSigned returns n/d truncated toward zero, for d != 0.
func quoSigned(n num.I128, d num.U128) num.I128 {
	q := quo(n.AbsU128(), d).AsI128()
	if n.Sign() < 0 {
		q = q.Neg()
	}
	return q
}
