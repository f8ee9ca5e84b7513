package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad big int literal %s", s)
	return v
}

func TestTickIndexToSqrtPrice(t *testing.T) {
	cases := []struct {
		tick int32
		want string
	}{
		{0, "18446744073709551616"},
		{1, "18447666387855959850"},
		{-1, "18445821805675392311"},
		{2, "18448588748116922571"},
		{-2, "18444899583751176498"},
		{64, "18505865242158250041"},
		{-64, "18387811781193591352"},
		{128, "18565175891880433522"},
		{-128, "18329067761203520168"},
		{300, "18725516865638445767"},
		{-300, "18172121461990766222"},
		{39823, "135089609333625892096"},
		{-39823, "2518938122624631217"},
		{shared.MaxTickIndex, "79226673515401279992447579055"},
		{shared.MinTickIndex, "4295048016"},
	}
	for _, tc := range cases {
		got := TickIndexToSqrtPrice(tc.tick)
		assert.Equal(t, tc.want, got.String(), "tick %d", tc.tick)
	}
}

func TestTickIndexToSqrtPriceBounds(t *testing.T) {
	assert.Equal(t, shared.MinSqrtPrice, TickIndexToSqrtPrice(shared.MinTickIndex))
	assert.Equal(t, shared.MaxSqrtPrice, TickIndexToSqrtPrice(shared.MaxTickIndex))
}

func TestSqrtPriceToTickIndex(t *testing.T) {
	for _, tick := range []int32{0, 1, -1, 64, -64, 128, -128, 300, -300, 39823, -39823, shared.MinTickIndex, shared.MaxTickIndex} {
		got, err := SqrtPriceToTickIndex(TickIndexToSqrtPrice(tick))
		require.NoError(t, err)
		assert.Equal(t, tick, got, "round trip of tick %d", tick)
	}
}

func TestSqrtPriceToTickIndexFloors(t *testing.T) {
	// a sqrt price strictly between two ticks maps to the lower tick
	between := new(big.Int).Add(TickIndexToSqrtPrice(64), big.NewInt(1))
	got, err := SqrtPriceToTickIndex(between)
	require.NoError(t, err)
	assert.Equal(t, int32(64), got)

	justBelow := new(big.Int).Sub(TickIndexToSqrtPrice(64), big.NewInt(1))
	got, err = SqrtPriceToTickIndex(justBelow)
	require.NoError(t, err)
	assert.Equal(t, int32(63), got)
}

func TestSqrtPriceToTickIndexOutOfRange(t *testing.T) {
	_, err := SqrtPriceToTickIndex(new(big.Int).Sub(shared.MinSqrtPrice, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrInvalidSqrtPrice)
	_, err = SqrtPriceToTickIndex(new(big.Int).Add(shared.MaxSqrtPrice, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrInvalidSqrtPrice)
}

func TestGetTickArrayStartTickIndex(t *testing.T) {
	cases := []struct {
		tick    int32
		spacing uint16
		want    int32
	}{
		{0, 64, 0},
		{100, 64, 0},
		{5632, 64, 5632},
		{5631, 64, 0},
		{-1, 64, -5632},
		{-5632, 64, -5632},
		{-5633, 64, -11264},
		{shared.MaxTickIndex, 64, 439296},
		{shared.MinTickIndex, 64, -444928},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GetTickArrayStartTickIndex(tc.tick, tc.spacing), "tick %d spacing %d", tc.tick, tc.spacing)
	}
}

func TestGetFullRangeTickIndexes(t *testing.T) {
	lower, upper := GetFullRangeTickIndexes(64)
	assert.Equal(t, int32(-443584), lower)
	assert.Equal(t, int32(443584), upper)

	lower, upper = GetFullRangeTickIndexes(shared.SplashPoolTickSpacing)
	assert.Equal(t, int32(-427648), lower)
	assert.Equal(t, int32(427648), upper)
}

func TestGetInitializableTickIndex(t *testing.T) {
	assert.Equal(t, int32(64), GetInitializableTickIndex(100, 64))
	assert.Equal(t, int32(-64), GetInitializableTickIndex(-100, 64))
	assert.Equal(t, int32(128), GetInitializableTickIndex(128, 64))
	assert.Equal(t, int32(0), GetInitializableTickIndex(63, 64))
}

func TestIsFullRangeOnly(t *testing.T) {
	assert.False(t, IsFullRangeOnly(64))
	assert.False(t, IsFullRangeOnly(shared.SplashPoolTickSpacing-1))
	assert.True(t, IsFullRangeOnly(shared.SplashPoolTickSpacing))
}

func TestCheckTickRange(t *testing.T) {
	assert.NoError(t, CheckTickRange(-128, 128, 64))

	err := CheckTickRange(128, -128, 64)
	assert.EqualError(t, err, "tick lower must be below tick upper")

	err = CheckTickRange(-443648, 128, 64)
	assert.ErrorIs(t, err, ErrTickOutOfRange)

	err = CheckTickRange(-128, 443648, 64)
	assert.ErrorIs(t, err, ErrTickOutOfRange)

	err = CheckTickRange(-100, 128, 64)
	assert.EqualError(t, err, "tick index not a multiple of tick spacing")
}
