package exact

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrDivisionByZero is matched by every *DivisionByZeroError via errors.Is.
var ErrDivisionByZero = errors.New("exact: division by zero")

// DivisionByZeroError reports a zero denominator or divisor. Arithmetic in
// this package panics with it; TryNew and Recover turn it back into an error.
type DivisionByZeroError struct {
	Op    string
	Frame string
}

func (e *DivisionByZeroError) Error() string {
	if e.Frame == "" {
		return fmt.Sprintf("%s: %v", e.Op, ErrDivisionByZero)
	}
	return fmt.Sprintf("%s: %v on %s", e.Op, ErrDivisionByZero, e.Frame)
}

func (e *DivisionByZeroError) Unwrap() error {
	return ErrDivisionByZero
}

// divisionByZero builds the error for op, recording the first frame outside
// this package so the report points at the caller that passed the zero.
func divisionByZero(op string) *DivisionByZeroError {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !inPackage(frame) {
			return &DivisionByZeroError{
				Op:    op,
				Frame: fmt.Sprintf("%s (%s:%d)", frame.Function, frame.File, frame.Line),
			}
		}
		if !more {
			break
		}
	}
	return &DivisionByZeroError{Op: op}
}

// pkgPrefix is the import path of this package followed by a dot, the
// prefix runtime gives the names of its functions.
var pkgPrefix = packagePrefix()

func packagePrefix() string {
	pc, _, _, _ := runtime.Caller(0)
	name := runtime.FuncForPC(pc).Name()
	slash := strings.LastIndexByte(name, '/')
	dot := strings.IndexByte(name[slash+1:], '.')
	return name[:slash+1+dot+1]
}

// inPackage reports whether a frame belongs to the arithmetic in this
// package. Test files of the package count as callers.
func inPackage(frame runtime.Frame) bool {
	return strings.HasPrefix(frame.Function, pkgPrefix) && !strings.HasSuffix(frame.File, "_test.go")
}

// Recover stops a DivisionByZeroError panic and stores it in *err. Any other
// panic is re-raised. It must be deferred directly:
//
//	defer exact.Recover(&err)
func Recover(err *error) {
	if v := recover(); v != nil {
		if e, ok := v.(*DivisionByZeroError); ok {
			*err = e
			return
		}
		panic(v)
	}
}
