// Package exact implements exact rational arithmetic over 128-bit integers.
package exact

import (
	"fmt"
	"strings"

	num "github.com/shabbyrobe/go-num"
)

// Rational is an exact fraction with a signed 128-bit numerator and an
// unsigned 128-bit denominator.
//
// Values returned by this package are always in lowest terms, with the sign
// carried by the numerator and zero represented as 0/1. The zero value
// Rational{} is valid and equal to 0.
//
// Rational has value semantics: no method modifies its receiver except the
// explicit *InPlace accumulators, and values can be shared between
// goroutines freely. Compare values with Equal rather than == so that the
// zero value and 0/1 match.
//
// Arithmetic wraps silently if a reduced numerator or denominator needs
// more than 128 bits. Cmp never wraps.
type Rational struct {
	n num.I128
	d num.U128
}

// New returns n/d in lowest terms. It panics with a *DivisionByZeroError if
// d is zero.
func New(n num.I128, d num.U128) Rational {
	return newRaw(n, d).Simplify()
}

// TryNew is like New but returns an error matching ErrDivisionByZero
// instead of panicking.
func TryNew(n num.I128, d num.U128) (Rational, error) {
	if d.IsZero() {
		return Rational{}, divisionByZero("New")
	}
	return Rational{n: n, d: d}.Simplify(), nil
}

// NewInt64 returns n/d in lowest terms, moving the sign of d onto the
// numerator.
func NewInt64(n, d int64) Rational {
	sn := num.I128From64(n)
	if d < 0 {
		sn = sn.Neg()
	}
	return New(sn, num.I128From64(d).AbsU128())
}

// NewUint64 returns n/d in lowest terms.
func NewUint64(n, d uint64) Rational {
	return New(num.U128From64(n).AsI128(), num.U128From64(d))
}

func FromInt64(n int64) Rational {
	return Rational{n: num.I128From64(n), d: oneU128}
}

func FromUint64(n uint64) Rational {
	return Rational{n: num.U128From64(n).AsI128(), d: oneU128}
}

func FromI128(n num.I128) Rational {
	return Rational{n: n, d: oneU128}
}

// newRaw builds n/d without reducing it. Only operator implementations that
// reduce before returning may use it.
func newRaw(n num.I128, d num.U128) Rational {
	if d.IsZero() {
		panic(divisionByZero("New"))
	}
	return Rational{n: n, d: d}
}

// Num returns the numerator of x. Its sign is the sign of x.
func (x Rational) Num() num.I128 { return x.n }

// Den returns the denominator of x, which is always positive.
func (x Rational) Den() num.U128 {
	if x.d.IsZero() {
		return oneU128
	}
	return x.d
}

// Simplify returns x in lowest terms.
func (x Rational) Simplify() Rational {
	d := x.Den()
	mag := x.n.AbsU128()
	if mag.IsZero() {
		return Rational{n: zeroI128, d: oneU128}
	}
	g := GCD(mag, d)
	if g.Equal(oneU128) {
		return Rational{n: x.n, d: d}
	}
	return Rational{n: quoSigned(x.n, g), d: quo(d, g)}
}

func (x Rational) Sign() int { return x.n.Sign() }

func (x Rational) IsZero() bool { return x.n.IsZero() }

// IsInt reports whether the denominator of x is 1.
func (x Rational) IsInt() bool { return x.Den().Equal(oneU128) }

func (x Rational) Neg() Rational {
	return Rational{n: x.n.Neg(), d: x.Den()}
}

func (x Rational) Abs() Rational {
	return Rational{n: x.n.Abs(), d: x.Den()}
}

// Add returns x + y.
func (x Rational) Add(y Rational) Rational {
	return x.combine(y, num.I128.Add)
}

// AddInt returns x + n.
func (x Rational) AddInt(n int64) Rational {
	return x.Add(FromInt64(n))
}

// Sub returns x - y.
func (x Rational) Sub(y Rational) Rational {
	return x.combine(y, num.I128.Sub)
}

// SubInt returns x - n.
func (x Rational) SubInt(n int64) Rational {
	return x.Sub(FromInt64(n))
}

// combine applies op to the numerators of x and y lifted onto the least
// common denominator. With g = gcd(xd, yd) the lifted numerator is
// t = op(xn*(yd/g), yn*(xd/g)); only gcd(t, g) can still divide the sum, so
// the result is t/g2 over (xd/g)*(yd/g2) with g2 = gcd(t, g). The product of
// the denominators is never formed.
func (x Rational) combine(y Rational, op func(a, b num.I128) num.I128) Rational {
	xd, yd := x.Den(), y.Den()
	if xd.Equal(yd) {
		return New(op(x.n, y.n), xd)
	}

	g := GCD(xd, yd)
	xs, ys := quo(xd, g), quo(yd, g)
	t := op(x.n.Mul(ys.AsI128()), y.n.Mul(xs.AsI128()))
	if t.IsZero() {
		return Rational{n: zeroI128, d: oneU128}
	}

	g2 := GCD(t.AbsU128(), g)
	return New(quoSigned(t, g2), xs.Mul(quo(yd, g2)))
}

// Mul returns x * y.
//
// The cross GCDs gcd(|x.num|, y.den) and gcd(|y.num|, x.den) are divided out
// before multiplying. Both operands are already in lowest terms, so this
// yields the same result as multiplying first and reducing afterwards, with
// smaller intermediates.
func (x Rational) Mul(y Rational) Rational {
	sign := x.Sign() * y.Sign()
	if sign == 0 {
		return Rational{n: zeroI128, d: oneU128}
	}

	xn, xd := x.n.AbsU128(), x.Den()
	yn, yd := y.n.AbsU128(), y.Den()
	if g := GCD(xn, yd); !g.Equal(oneU128) {
		xn, yd = quo(xn, g), quo(yd, g)
	}
	if g := GCD(yn, xd); !g.Equal(oneU128) {
		yn, xd = quo(yn, g), quo(xd, g)
	}

	n := xn.Mul(yn).AsI128()
	if sign < 0 {
		n = n.Neg()
	}
	return New(n, xd.Mul(yd))
}

// MulInt returns x * n.
func (x Rational) MulInt(n int64) Rational {
	return x.Mul(FromInt64(n))
}

// MulUint returns x * n.
func (x Rational) MulUint(n uint64) Rational {
	return x.Mul(FromUint64(n))
}

// Inv returns 1/x. It panics with a *DivisionByZeroError if x is zero.
func (x Rational) Inv() Rational {
	if x.n.IsZero() {
		panic(divisionByZero("Inv"))
	}
	n := x.Den().AsI128()
	if x.n.Sign() < 0 {
		n = n.Neg()
	}
	return New(n, x.n.AbsU128())
}

// Div returns x / y, which is x.Mul(y.Inv()). It panics with a
// *DivisionByZeroError if y is zero.
func (x Rational) Div(y Rational) Rational {
	return x.Mul(y.Inv())
}

// AddInPlace sets x to x + y and returns the new value.
func (x *Rational) AddInPlace(y Rational) Rational {
	*x = x.Add(y)
	return *x
}

// SubInPlace sets x to x - y and returns the new value.
func (x *Rational) SubInPlace(y Rational) Rational {
	*x = x.Sub(y)
	return *x
}

// Equal reports whether x and y have the same canonical numerator and
// denominator.
func (x Rational) Equal(y Rational) bool {
	return x.n.Equal(y.n) && x.Den().Equal(y.Den())
}

// Cmp returns -1 if x < y, 0 if x == y and 1 if x > y.
//
// Both numerators are lifted onto L = lcm(x.den, y.den) and compared as
// integers. The factors L/x.den and L/y.den are computed as y.den/g and
// x.den/g so L itself is never formed, and the lifted numerators are held at
// 256 bits, so the result is exact for every pair of values.
func (x Rational) Cmp(y Rational) int {
	xs, ys := x.Sign(), y.Sign()
	switch {
	case xs < ys:
		return -1
	case xs > ys:
		return 1
	case xs == 0:
		return 0
	}

	xd, yd := x.Den(), y.Den()
	if xd.Equal(yd) {
		return x.n.Cmp(y.n)
	}
	g := GCD(xd, yd)
	ahi, alo := mulWide(x.n.AbsU128(), quo(yd, g))
	bhi, blo := mulWide(y.n.AbsU128(), quo(xd, g))
	c := cmpWide(ahi, alo, bhi, blo)
	if xs < 0 {
		return -c
	}
	return c
}

func (x Rational) Less(y Rational) bool { return x.Cmp(y) < 0 }

// Float64 returns the nearest float64 to num/den as computed in floating
// point. It is for display only and is never used for comparisons.
func (x Rational) Float64() float64 {
	return x.n.AsFloat64() / x.Den().AsFloat64()
}

// Floor returns the greatest integer not greater than x.
func (x Rational) Floor() num.I128 {
	q, r := x.n.AbsU128().QuoRem(x.Den())
	floor := q.AsI128()
	if x.n.Sign() < 0 {
		floor = floor.Neg()
		if !r.IsZero() {
			floor = floor.Sub(oneI128)
		}
	}
	return floor
}

// String returns x as "num/den", or as "num" when x is an integer.
func (x Rational) String() string {
	if x.IsInt() {
		return x.n.String()
	}
	return x.n.String() + "/" + x.Den().String()
}

// MixedString renders x as a mixed number: a whole part followed by the
// proper fraction that remains, such as "3 1/2" or "-3 1/2". Integers render
// as their whole part alone and proper fractions as "num/den".
func (x Rational) MixedString() string {
	mag, d := x.n.AbsU128(), x.Den()
	if mag.LessThan(d) {
		return x.String()
	}

	var sb strings.Builder
	if x.n.Sign() < 0 {
		sb.WriteByte('-')
	}
	whole, rem := mag.QuoRem(d)
	sb.WriteString(whole.String())
	if !rem.IsZero() {
		fmt.Fprintf(&sb, " %s/%s", rem.String(), d.String())
	}
	return sb.String()
}
