package types

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// Precision is the fixed-point scale of the K check.
const Precision uint64 = 10_000

// KCheck holds the inputs of the constant product check for one swap.
// Balances are the pool's tradable balances after fee extraction and payout.
type KCheck struct {
	BalanceX, BalanceY   uint64
	AmountXIn, AmountYIn uint64
	ReserveX, ReserveY   uint64
	FeeDenominator       uint64
}

// Verify requires
//
//	(balanceX*P - amountXIn*feeDen) * (balanceY*P - amountYIn*feeDen) >= (reserveX*P) * (reserveY*P)
//
// Each factor fits in 128 bits and each product in 256. When all four
// factors fit in 64 bits the products are compared as native 128-bit pairs.
func (c KCheck) Verify() error {
	adjX, ok := adjustedBalance(c.BalanceX, c.AmountXIn, c.FeeDenominator)
	if !ok {
		return ErrKInvariantViolation.Wrapf("adjusted balance x negative: balance %d, in %d", c.BalanceX, c.AmountXIn)
	}
	adjY, ok := adjustedBalance(c.BalanceY, c.AmountYIn, c.FeeDenominator)
	if !ok {
		return ErrKInvariantViolation.Wrapf("adjusted balance y negative: balance %d, in %d", c.BalanceY, c.AmountYIn)
	}
	scaledX := new(uint256.Int).Mul(uint256.NewInt(c.ReserveX), uint256.NewInt(Precision))
	scaledY := new(uint256.Int).Mul(uint256.NewInt(c.ReserveY), uint256.NewInt(Precision))

	if productLess(adjX, adjY, scaledX, scaledY) {
		return ErrKInvariantViolation.Wrapf("adjusted k %s*%s below %s*%s",
			adjX.Dec(), adjY.Dec(), scaledX.Dec(), scaledY.Dec())
	}
	return nil
}

// adjustedBalance returns balance*Precision - amountIn*feeDen, or false when
// the charge exceeds the scaled balance.
func adjustedBalance(balance, amountIn, feeDen uint64) (*uint256.Int, bool) {
	scaled := new(uint256.Int).Mul(uint256.NewInt(balance), uint256.NewInt(Precision))
	charge := new(uint256.Int).Mul(uint256.NewInt(amountIn), uint256.NewInt(feeDen))
	adj, underflow := new(uint256.Int).SubOverflow(scaled, charge)
	return adj, !underflow
}

// productLess reports whether a*b < c*d.
func productLess(a, b, c, d *uint256.Int) bool {
	if a.IsUint64() && b.IsUint64() && c.IsUint64() && d.IsUint64() {
		return narrowProductLess(a.Uint64(), b.Uint64(), c.Uint64(), d.Uint64())
	}
	return wideProductLess(a, b, c, d)
}

// narrowProductLess compares two 64x64 products as 128-bit (hi, lo) pairs.
func narrowProductLess(a, b, c, d uint64) bool {
	lhsHi, lhsLo := bits.Mul64(a, b)
	rhsHi, rhsLo := bits.Mul64(c, d)
	if lhsHi != rhsHi {
		return lhsHi < rhsHi
	}
	return lhsLo < rhsLo
}

// wideProductLess compares two products of 128-bit factors in 256 bits.
// Neither product can overflow, the overflow flags only guard the contract.
func wideProductLess(a, b, c, d *uint256.Int) bool {
	lhs, lhsOverflow := new(uint256.Int).MulOverflow(a, b)
	rhs, rhsOverflow := new(uint256.Int).MulOverflow(c, d)
	switch {
	case lhsOverflow && !rhsOverflow:
		return false
	case rhsOverflow && !lhsOverflow:
		return true
	}
	return lhs.Lt(rhs)
}
