package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPair(t *testing.T) {
	pair, flipped, err := NewPair("uatom", "upaw")
	require.NoError(t, err)
	require.False(t, flipped)
	require.Equal(t, Pair{X: "uatom", Y: "upaw"}, pair)

	pair, flipped, err = NewPair("upaw", "uatom")
	require.NoError(t, err)
	require.True(t, flipped)
	require.Equal(t, Pair{X: "uatom", Y: "upaw"}, pair)
	require.Equal(t, "uatom/upaw", pair.String())

	_, _, err = NewPair("upaw", "upaw")
	require.ErrorIs(t, err, ErrInvalidTokenPair)

	_, _, err = NewPair("1bad", "upaw")
	require.ErrorIs(t, err, ErrInvalidTokenPair)

	_, _, err = NewPair("upaw", "")
	require.ErrorIs(t, err, ErrInvalidTokenPair)
}

func TestPairValidate(t *testing.T) {
	require.NoError(t, MustNewPair("upaw", "uatom").Validate())
	require.ErrorIs(t, Pair{X: "upaw", Y: "uatom"}.Validate(), ErrInvalidTokenPair)
	require.Panics(t, func() { MustNewPair("upaw", "upaw") })
}

func TestPairSides(t *testing.T) {
	pair := MustNewPair("uatom", "upaw")

	side, ok := pair.Side("upaw")
	require.True(t, ok)
	require.Equal(t, SideY, side)
	require.Equal(t, SideX, side.Other())
	require.Equal(t, "uatom", pair.Denom(side.Other()))

	_, ok = pair.Side("uosmo")
	require.False(t, ok)

	require.Equal(t, SideX, XToY.In())
	require.Equal(t, SideY, XToY.Out())
	require.Equal(t, SideY, YToX.In())
	require.Equal(t, SideX, YToX.Out())
}
