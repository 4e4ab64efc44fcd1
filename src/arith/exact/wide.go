package exact

import (
	"math/bits"

	num "github.com/shabbyrobe/go-num"
)

// mulWide returns the full 256-bit product of a and b as hi:lo. Each operand
// is split into 64-bit limbs and the four partial products are summed with
// explicit carries.
func mulWide(a, b num.U128) (hi, lo num.U128) {
	ahi, alo := a.Raw()
	bhi, blo := b.Raw()

	h0, l0 := bits.Mul64(alo, blo)
	h1, l1 := bits.Mul64(ahi, blo)
	h2, l2 := bits.Mul64(alo, bhi)
	h3, l3 := bits.Mul64(ahi, bhi)

	w1, c1 := bits.Add64(h0, l1, 0)
	w1, c2 := bits.Add64(w1, l2, 0)

	w2, c3 := bits.Add64(h1, h2, 0)
	w2, c4 := bits.Add64(w2, l3, 0)
	w2, c5 := bits.Add64(w2, c1+c2, 0)

	w3 := h3 + c3 + c4 + c5
	return num.U128FromRaw(w3, w2), num.U128FromRaw(w1, l0)
}

// cmpWide compares the 256-bit values ahi:alo and bhi:blo.
func cmpWide(ahi, alo, bhi, blo num.U128) int {
	if c := ahi.Cmp(bhi); c != 0 {
		return c
	}
	return alo.Cmp(blo)
}
