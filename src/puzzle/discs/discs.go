// Package discs evaluates the blue-disc arrangement puzzle with exact
// rational arithmetic: a box holds total discs, blue of which are blue, and
// two discs are drawn without replacement. The puzzle asks for the smallest
// arrangement above 10^12 discs where both draws are blue with probability
// exactly 1/2.
package discs

import (
	"context"
	"errors"
	"fmt"

	"bluediscs/src/arith/exact"
)

// MaxTotal is the largest total whose probability numerator and
// denominator, blue*(blue-1) and total*(total-1), fit in 127 bits.
const MaxTotal uint64 = 1 << 63

var (
	ErrInvalidCounts = errors.New("discs: invalid disc counts")
	ErrNotFound      = errors.New("discs: no arrangement in range")
	ErrInvalidRatio  = errors.New("discs: ratio must lie in [0, 1]")
)

// Half is the target probability of the puzzle.
var Half = exact.NewInt64(1, 2)

var one = exact.FromInt64(1)

func validCounts(blue, total uint64) error {
	switch {
	case total < 2:
		return fmt.Errorf("%w: need at least 2 discs, have %d", ErrInvalidCounts, total)
	case total > MaxTotal:
		return fmt.Errorf("%w: total %d exceeds %d", ErrInvalidCounts, total, MaxTotal)
	case blue > total:
		return fmt.Errorf("%w: %d blue of %d", ErrInvalidCounts, blue, total)
	}
	return nil
}

// Probability returns the exact probability (B/T) * ((B-1)/(T-1)) that two
// discs drawn without replacement are both blue.
func Probability(blue, total uint64) (exact.Rational, error) {
	if err := validCounts(blue, total); err != nil {
		return exact.Rational{}, err
	}
	b, t := exact.FromUint64(blue), exact.FromUint64(total)
	first := b.Div(t)
	second := b.SubInt(1).Div(t.SubInt(1))
	return first.Mul(second), nil
}

// Estimate returns floor(ratio * total), the starting blue count for a
// search over total discs. The ratio must lie in [0, 1] so the estimate
// never exceeds total.
func Estimate(ratio exact.Rational, total uint64) (uint64, error) {
	if ratio.Sign() < 0 || ratio.Cmp(one) > 0 {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidRatio, ratio)
	}
	hi, lo := ratio.MulUint(total).Floor().AsU128().Raw()
	if hi != 0 || lo > total {
		return 0, fmt.Errorf("%w: %s * %d exceeds the total", ErrInvalidRatio, ratio, total)
	}
	return lo, nil
}

// Evaluation is the outcome of checking one arrangement against a target.
type Evaluation struct {
	Blue, Total uint64
	Probability exact.Rational
	// Cmp is -1, 0 or 1 as Probability is below, at or above the target.
	Cmp int
}

func (e Evaluation) Matches() bool { return e.Cmp == 0 }

// Evaluate computes the probability of an arrangement and compares it with
// target.
func Evaluate(blue, total uint64, target exact.Rational) (Evaluation, error) {
	p, err := Probability(blue, total)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{Blue: blue, Total: total, Probability: p, Cmp: p.Cmp(target)}, nil
}

// IsTarget reports whether the arrangement has exactly the target
// probability. Invalid counts never match.
func IsTarget(blue, total uint64, target exact.Rational) bool {
	e, err := Evaluate(blue, total, target)
	return err == nil && e.Matches()
}

// BlueFor finds the blue count that gives exactly target for total discs.
// The probability is strictly increasing in blue from blue = 1, so the
// comparison with target picks the direction of each step of a binary
// search. ok is false when no blue count hits target exactly.
func BlueFor(ctx context.Context, total uint64, target exact.Rational) (blue uint64, ok bool, err error) {
	if err := validCounts(0, total); err != nil {
		return 0, false, err
	}

	lo, hi := uint64(1), total
	for lo <= hi {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		mid := lo + (hi-lo)/2
		p, err := Probability(mid, total)
		if err != nil {
			return 0, false, err
		}
		switch c := p.Cmp(target); {
		case c == 0:
			return mid, true, nil
		case c < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return 0, false, nil
}
