package exact

import num "github.com/shabbyrobe/go-num"

var (
	zeroI128 num.I128
	oneI128  = num.I128From64(1)
	oneU128  = num.U128From64(1)
)
