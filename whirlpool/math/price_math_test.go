package math

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

func TestPriceToSqrtPrice(t *testing.T) {
	sqrtPrice, err := PriceToSqrtPrice(decimal.NewFromInt(1), 6, 6)
	require.NoError(t, err)
	assert.Equal(t, shared.OneQ64.String(), sqrtPrice.String())

	// a decimal gap shifts the raw price before the square root
	sqrtPrice, err = PriceToSqrtPrice(decimal.NewFromInt(100), 8, 6)
	require.NoError(t, err)
	back := SqrtPriceToPrice(sqrtPrice, 8, 6)
	assert.True(t, back.Sub(decimal.NewFromInt(100)).Abs().LessThan(decimal.NewFromFloat(0.000001)), "got %s", back)
}

func TestPriceToSqrtPriceRejects(t *testing.T) {
	_, err := PriceToSqrtPrice(decimal.Zero, 6, 6)
	assert.EqualError(t, err, "price must be greater than 0")

	_, err = PriceToSqrtPrice(decimal.NewFromInt(-1), 6, 6)
	assert.EqualError(t, err, "price must be greater than 0")

	// far beyond the representable range
	_, err = PriceToSqrtPrice(decimal.New(1, 40), 6, 6)
	assert.ErrorIs(t, err, ErrInvalidSqrtPrice)
}

func TestSqrtPriceToPrice(t *testing.T) {
	price := SqrtPriceToPrice(shared.OneQ64, 6, 6)
	assert.True(t, price.Equal(decimal.NewFromInt(1)), "got %s", price)
}

func TestPriceSqrtPriceRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.000025", "0.5", "1", "25.5", "1000000"} {
		price := decimal.RequireFromString(raw)
		sqrtPrice, err := PriceToSqrtPrice(price, 9, 6)
		require.NoError(t, err)
		back := SqrtPriceToPrice(sqrtPrice, 9, 6)
		diff := back.Sub(price).Abs().Div(price)
		assert.True(t, diff.LessThan(decimal.New(1, -9)), "price %s round tripped to %s", raw, back)
	}
}

func TestPriceToTickIndex(t *testing.T) {
	tick, err := PriceToTickIndex(decimal.NewFromInt(1), 6, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(0), tick)
}

func TestTickIndexToPrice(t *testing.T) {
	price := TickIndexToPrice(0, 6, 6)
	assert.True(t, price.Equal(decimal.NewFromInt(1)), "got %s", price)

	// each tick moves the price by one basis point of 1.0001
	higher := TickIndexToPrice(1, 6, 6)
	assert.True(t, higher.GreaterThan(price))
	lower := TickIndexToPrice(-1, 6, 6)
	assert.True(t, lower.LessThan(price))
}
