package types

import (
	"math/bits"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// MinimumLiquidity is the LP amount locked forever on pool genesis.
const MinimumLiquidity uint64 = 1_000

// SafeAdd adds two uint64 values with overflow checking
func SafeAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow.Wrapf("%d + %d", a, b)
	}
	return sum, nil
}

// SafeSub subtracts two uint64 values with underflow checking
func SafeSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow.Wrapf("%d - %d underflows", a, b)
	}
	return diff, nil
}

// MulDiv returns floor(a * b / c) using a 128-bit intermediate product.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrOverflow.Wrap("division by zero")
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, ErrOverflow.Wrapf("%d * %d / %d does not fit in 64 bits", a, b, c)
	}
	quo, _ := bits.Div64(hi, lo, c)
	return quo, nil
}

// Product returns a * b as a math.Int; the result always fits in 128 bits.
func Product(a, b uint64) math.Int {
	prod := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	return math.NewIntFromBigInt(prod.ToBig())
}

// SqrtProduct returns floor(sqrt(a * b)).
func SqrtProduct(a, b uint64) uint64 {
	prod := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	// sqrt of a value below 2^128 is below 2^64
	return new(uint256.Int).Sqrt(prod).Uint64()
}

// Quote returns the amount of B matching amountA at the reserve ratio:
// floor(amountA * reserveB / reserveA).
func Quote(amountA, reserveA, reserveB uint64) (uint64, error) {
	if amountA == 0 {
		return 0, ErrInsufficientAmount.Wrap("quote amount must be positive")
	}
	if reserveA == 0 || reserveB == 0 {
		return 0, ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	return MulDiv(amountA, reserveB, reserveA)
}

// GetAmountOut prices an exact-input trade on the constant product curve:
//
//	amountOut = amountIn*(10000-fee)*reserveOut / (reserveIn*10000 + amountIn*(10000-fee))
//
// The numerator reaches ~2^142, so it is computed in 256 bits.
func GetAmountOut(amountIn, reserveIn, reserveOut, feeBps uint64) (uint64, error) {
	if amountIn == 0 {
		return 0, ErrInsufficientInputAmount.Wrap("input amount must be positive")
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	if feeBps >= BpsDenominator {
		return 0, ErrExcessiveFee.Wrapf("fee %d bps", feeBps)
	}

	inWithFee := new(uint256.Int).Mul(uint256.NewInt(amountIn), uint256.NewInt(BpsDenominator-feeBps))
	numerator := new(uint256.Int).Mul(inWithFee, uint256.NewInt(reserveOut))
	denominator := new(uint256.Int).Mul(uint256.NewInt(reserveIn), uint256.NewInt(BpsDenominator))
	denominator.Add(denominator, inWithFee)

	// amountOut < reserveOut, so it fits in 64 bits
	return new(uint256.Int).Div(numerator, denominator).Uint64(), nil
}

// GetAmountIn is the inverse of GetAmountOut: the smallest input that buys
// amountOut at the given fee.
//
//	amountIn = reserveIn*amountOut*10000 / ((reserveOut-amountOut)*(10000-fee)) + 1
func GetAmountIn(amountOut, reserveIn, reserveOut, feeBps uint64) (uint64, error) {
	if amountOut == 0 {
		return 0, ErrInsufficientOutputAmount.Wrap("output amount must be positive")
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	if amountOut >= reserveOut {
		return 0, ErrInsufficientLiquidity.Wrapf("output %d >= reserve %d", amountOut, reserveOut)
	}
	if feeBps >= BpsDenominator {
		return 0, ErrExcessiveFee.Wrapf("fee %d bps", feeBps)
	}

	numerator := new(uint256.Int).Mul(uint256.NewInt(reserveIn), uint256.NewInt(amountOut))
	numerator.Mul(numerator, uint256.NewInt(BpsDenominator))
	denominator := new(uint256.Int).Mul(uint256.NewInt(reserveOut-amountOut), uint256.NewInt(BpsDenominator-feeBps))

	amountIn := new(uint256.Int).Div(numerator, denominator)
	amountIn.Add(amountIn, uint256.NewInt(1))
	if !amountIn.IsUint64() {
		return 0, ErrOverflow.Wrapf("input for %d out of reserves %d/%d exceeds 64 bits", amountOut, reserveIn, reserveOut)
	}
	return amountIn.Uint64(), nil
}
