// Package math includes important helpers for Ethereum such as fast integer square roots.
package math

import (
	stdmath "math"
	"math/bits"

	"github.com/pkg/errors"
)

var (
	// ErrOverflow occurs when an operation exceeds max or minimum values.
	ErrOverflow = errors.New("integer overflow")
	// ErrDivByZero occurs when a divisor is zero.
	ErrDivByZero = errors.New("integer divide by zero")
	// ErrMulOverflow occurs when a multiplication exceeds max uint64.
	ErrMulOverflow = errors.New("multiplication overflows")
	// ErrAddOverflow occurs when an addition exceeds max uint64.
	ErrAddOverflow = errors.New("addition overflows")
	// ErrSubUnderflow occurs when a subtraction goes below zero.
	ErrSubUnderflow = errors.New("subtraction underflows")
)

// MaxUint64 is the largest value a uint64 can hold.
const MaxUint64 = stdmath.MaxUint64

// IntegerSquareRoot defines a function that returns the
// largest possible integer root of a number using go's standard library.
func IntegerSquareRoot(n uint64) uint64 {
	const maxRoot = 1<<32 - 1
	x := uint64(stdmath.Sqrt(float64(n)))
	if x > maxRoot {
		x = maxRoot
	}
	for x*x > n {
		x--
	}
	for x < maxRoot && (x+1)*(x+1) <= n {
		x++
	}
	return x
}

// Mul64 multiples 2 64-bit unsigned integers and checks if they
// lead to an overflow. If they do not, it returns the result
// without an error.
func Mul64(a, b uint64) (uint64, error) {
	overflows, val := bits.Mul64(a, b)
	if overflows > 0 {
		return 0, ErrMulOverflow
	}
	return val, nil
}

// Div64 divides two 64-bit unsigned integers and checks for errors.
func Div64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	val, _ := bits.Div64(0, a, b)
	return val, nil
}

// Add64 adds 2 64-bit unsigned integers and checks if they
// lead to an overflow. If they do not, it returns the result
// without an error.
func Add64(a, b uint64) (uint64, error) {
	res, carry := bits.Add64(a, b, 0 /* carry */)
	if carry > 0 {
		return 0, ErrAddOverflow
	}
	return res, nil
}

// Sub64 subtracts two 64-bit unsigned integers and checks for errors.
func Sub64(a, b uint64) (uint64, error) {
	res, borrow := bits.Sub64(a, b, 0 /* borrow */)
	if borrow > 0 {
		return 0, ErrSubUnderflow
	}
	return res, nil
}

// Mod64 finds remainder of division of two 64-bit unsigned integers and checks for errors.
func Mod64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	_, val := bits.Div64(0, a, b)
	return val, nil
}

// SaturatingSub returns a-b, or zero when b > a.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// Min returns the smaller of two uint64 values.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two uint64 values.
func Max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
