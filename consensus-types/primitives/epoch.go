package types

import (
	"fmt"

	"github.com/prysmaticlabs/gasper/math"
)

// Epoch represents a single epoch.
type Epoch uint64

// Mul multiplies epoch by x.
// In case of arithmetic issues (overflow/underflow/div by zero) panic is thrown.
func (e Epoch) Mul(x uint64) Epoch {
	res, err := e.SafeMul(x)
	if err != nil {
		panic(err.Error())
	}
	return res
}

// SafeMul multiplies epoch by x.
func (e Epoch) SafeMul(x uint64) (Epoch, error) {
	res, err := math.Mul64(uint64(e), x)
	return Epoch(res), err
}

// Div divides epoch by x.
// In case of arithmetic issues (overflow/underflow/div by zero) panic is thrown.
func (e Epoch) Div(x uint64) Epoch {
	res, err := math.Div64(uint64(e), x)
	if err != nil {
		panic(err.Error())
	}
	return Epoch(res)
}

// Add increases epoch by x.
// In case of arithmetic issues (overflow/underflow/div by zero) panic is thrown.
func (e Epoch) Add(x uint64) Epoch {
	res, err := e.SafeAdd(x)
	if err != nil {
		panic(err.Error())
	}
	return res
}

// SafeAdd increases epoch by x.
func (e Epoch) SafeAdd(x uint64) (Epoch, error) {
	res, err := math.Add64(uint64(e), x)
	return Epoch(res), err
}

// Sub subtracts x from the epoch.
// In case of arithmetic issues (overflow/underflow/div by zero) panic is thrown.
func (e Epoch) Sub(x uint64) Epoch {
	res, err := e.SafeSub(x)
	if err != nil {
		panic(err.Error())
	}
	return res
}

// SafeSub subtracts x from the epoch.
func (e Epoch) SafeSub(x uint64) (Epoch, error) {
	res, err := math.Sub64(uint64(e), x)
	return Epoch(res), err
}

// Mod returns result of `epoch % x`.
// In case of arithmetic issues (overflow/underflow/div by zero) panic is thrown.
func (e Epoch) Mod(x uint64) Epoch {
	res, err := math.Mod64(uint64(e), x)
	if err != nil {
		panic(err.Error())
	}
	return Epoch(res)
}

// String implements fmt.Stringer.
func (e Epoch) String() string {
	return fmt.Sprintf("%d", uint64(e))
}
