package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pair is a canonical asset pair: X sorts lexicographically before Y.
type Pair struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// NewPair orders two denoms into their canonical pair. flipped reports whether
// a was not the X side, so callers can map their amounts onto the pair.
func NewPair(a, b string) (pair Pair, flipped bool, err error) {
	if a == b {
		return Pair{}, false, ErrInvalidTokenPair.Wrapf("identical assets %s", a)
	}
	if err := sdk.ValidateDenom(a); err != nil {
		return Pair{}, false, ErrInvalidTokenPair.Wrapf("asset %q: %v", a, err)
	}
	if err := sdk.ValidateDenom(b); err != nil {
		return Pair{}, false, ErrInvalidTokenPair.Wrapf("asset %q: %v", b, err)
	}
	if a > b {
		return Pair{X: b, Y: a}, true, nil
	}
	return Pair{X: a, Y: b}, false, nil
}

// MustNewPair is NewPair for static pairs, panicking on invalid input.
func MustNewPair(a, b string) Pair {
	pair, _, err := NewPair(a, b)
	if err != nil {
		panic(err)
	}
	return pair
}

// Validate checks that the pair is canonical.
func (p Pair) Validate() error {
	pair, flipped, err := NewPair(p.X, p.Y)
	if err != nil {
		return err
	}
	if flipped || pair != p {
		return ErrInvalidTokenPair.Wrapf("pair %s is not canonical", p)
	}
	return nil
}

// Side returns the side holding denom, or false if the pair does not contain it.
func (p Pair) Side(denom string) (Side, bool) {
	switch denom {
	case p.X:
		return SideX, true
	case p.Y:
		return SideY, true
	default:
		return 0, false
	}
}

// Denom returns the denom on the given side.
func (p Pair) Denom(side Side) string {
	if side == SideX {
		return p.X
	}
	return p.Y
}

func (p Pair) String() string {
	return p.X + "/" + p.Y
}

// Side selects one asset of a pool.
type Side uint8

const (
	SideX Side = iota + 1
	SideY
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideX {
		return SideY
	}
	return SideX
}

func (s Side) String() string {
	switch s {
	case SideX:
		return "x"
	case SideY:
		return "y"
	default:
		return "unknown"
	}
}

// SwapDirection is the direction of a trade within a canonical pair.
type SwapDirection uint8

const (
	XToY SwapDirection = iota + 1
	YToX
)

// In returns the side the trader pays into.
func (d SwapDirection) In() Side {
	if d == XToY {
		return SideX
	}
	return SideY
}

// Out returns the side the trader receives from.
func (d SwapDirection) Out() Side {
	return d.In().Other()
}

func (d SwapDirection) String() string {
	switch d {
	case XToY:
		return "x_to_y"
	case YToX:
		return "y_to_x"
	default:
		return "unknown"
	}
}
