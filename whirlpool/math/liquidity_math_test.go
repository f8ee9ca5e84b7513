package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

// quoteFixture pins a position between ticks -128 and 128 with the pool
// sitting exactly at price 1, token B carrying a 1% transfer fee.
type quoteFixture struct {
	currentSqrtPrice *big.Int
	tokenInfoA       *helpers.TokenInfo
	tokenInfoB       *helpers.TokenInfo
}

func newQuoteFixture() quoteFixture {
	return quoteFixture{
		currentSqrtPrice: new(big.Int).Set(shared.OneQ64),
		tokenInfoA:       &helpers.TokenInfo{Decimals: 6},
		tokenInfoB: &helpers.TokenInfo{
			Decimals:       6,
			HasTransferFee: true,
			BasisPoints:    100,
			MaximumFee:     big.NewInt(1_000_000_000),
		},
	}
}

func TestIncreaseLiquidityQuoteByLiquidity(t *testing.T) {
	fx := newQuoteFixture()
	quote, err := IncreaseLiquidityQuoteByLiquidity(
		big.NewInt(1_000_000_000), 100, fx.currentSqrtPrice, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	require.NoError(t, err)

	assert.Equal(t, "1000000000", quote.LiquidityDelta.String())
	assert.Equal(t, "6379246", quote.TokenEstA.String())
	assert.Equal(t, "6443682", quote.TokenEstB.String())
	assert.Equal(t, "6443039", quote.TokenMaxA.String())
	assert.Equal(t, "6508119", quote.TokenMaxB.String())
}

func TestIncreaseLiquidityQuoteByLiquidityRejects(t *testing.T) {
	fx := newQuoteFixture()

	_, err := IncreaseLiquidityQuoteByLiquidity(big.NewInt(0), 100, fx.currentSqrtPrice, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	assert.EqualError(t, err, "liquidity must be greater than 0")

	_, err = IncreaseLiquidityQuoteByLiquidity(nil, 100, fx.currentSqrtPrice, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	assert.EqualError(t, err, "liquidity must be greater than 0")

	_, err = IncreaseLiquidityQuoteByLiquidity(big.NewInt(1), 100, fx.currentSqrtPrice, 128, -128, fx.tokenInfoA, fx.tokenInfoB)
	assert.EqualError(t, err, "tick lower must be below tick upper")
}

func TestIncreaseLiquidityQuoteByToken(t *testing.T) {
	fx := newQuoteFixture()
	quote, err := IncreaseLiquidityQuoteByToken(
		big.NewInt(1_000_000), true, 100, fx.currentSqrtPrice, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	require.NoError(t, err)

	assert.Equal(t, "156758345", quote.LiquidityDelta.String())
	assert.Equal(t, "1000000", quote.TokenEstA.String())
	assert.Equal(t, "1010101", quote.TokenEstB.String())
	assert.Equal(t, "1010000", quote.TokenMaxA.String())
	assert.Equal(t, "1020203", quote.TokenMaxB.String())
}

func TestIncreaseLiquidityQuoteByTokenOutOfRange(t *testing.T) {
	fx := newQuoteFixture()

	above := TickIndexToSqrtPrice(300)
	_, err := IncreaseLiquidityQuoteByToken(big.NewInt(1_000_000), true, 100, above, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	assert.EqualError(t, err, "position is entirely in token B")

	below := TickIndexToSqrtPrice(-300)
	_, err = IncreaseLiquidityQuoteByToken(big.NewInt(1_000_000), false, 100, below, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	assert.EqualError(t, err, "position is entirely in token A")

	_, err = IncreaseLiquidityQuoteByToken(big.NewInt(0), true, 100, fx.currentSqrtPrice, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	assert.EqualError(t, err, "token amount must be greater than 0")
}

func TestDecreaseLiquidityQuoteByLiquidity(t *testing.T) {
	fx := newQuoteFixture()
	quote, err := DecreaseLiquidityQuoteByLiquidity(
		big.NewInt(1_000_000_000), 100, fx.currentSqrtPrice, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	require.NoError(t, err)

	assert.Equal(t, "1000000000", quote.LiquidityDelta.String())
	assert.Equal(t, "6379245", quote.TokenEstA.String())
	assert.Equal(t, "6315453", quote.TokenEstB.String())
	assert.Equal(t, "6315452", quote.TokenMinA.String())
	assert.Equal(t, "6252298", quote.TokenMinB.String())
}

func TestDecreaseLiquidityQuoteByToken(t *testing.T) {
	fx := newQuoteFixture()
	quote, err := DecreaseLiquidityQuoteByToken(
		big.NewInt(1_000_000), true, 100, fx.currentSqrtPrice, -128, 128, fx.tokenInfoA, fx.tokenInfoB)
	require.NoError(t, err)

	// the derived liquidity delta pays out at least the requested token A
	assert.True(t, quote.TokenEstA.Cmp(big.NewInt(900_000)) > 0)
	assert.True(t, quote.TokenMinA.Cmp(quote.TokenEstA) <= 0)
	assert.True(t, quote.TokenMinB.Cmp(quote.TokenEstB) <= 0)
}

func TestQuoteOutsideRangeSingleSided(t *testing.T) {
	noFee := &helpers.TokenInfo{Decimals: 6}

	t.Run("below range is all token A", func(t *testing.T) {
		below := TickIndexToSqrtPrice(-300)
		quote, err := IncreaseLiquidityQuoteByLiquidity(
			big.NewInt(1_000_000_000), 0, below, -128, 128, noFee, noFee)
		require.NoError(t, err)
		assert.Equal(t, "12799448", quote.TokenEstA.String())
		assert.Equal(t, "0", quote.TokenEstB.String())
	})

	t.Run("above range is all token B", func(t *testing.T) {
		above := TickIndexToSqrtPrice(300)
		quote, err := IncreaseLiquidityQuoteByLiquidity(
			big.NewInt(1_000_000_000), 0, above, -128, 128, noFee, noFee)
		require.NoError(t, err)
		assert.Equal(t, "0", quote.TokenEstA.String())
		assert.Equal(t, "12799448", quote.TokenEstB.String())
	})
}

func TestAmountDeltasRoundTrip(t *testing.T) {
	lower := TickIndexToSqrtPrice(-128)
	upper := TickIndexToSqrtPrice(128)
	liquidity := big.NewInt(1_000_000_000)

	amountA := GetAmountDeltaA(lower, upper, liquidity, shared.RoundingDown)
	amountB := GetAmountDeltaB(lower, upper, liquidity, shared.RoundingDown)

	// rounding down both ways keeps the derived liquidity at or below
	// the funding liquidity
	assert.True(t, GetLiquidityFromAmountA(amountA, lower, upper).Cmp(liquidity) <= 0)
	assert.True(t, GetLiquidityFromAmountB(amountB, lower, upper).Cmp(liquidity) <= 0)

	up := GetAmountDeltaA(lower, upper, liquidity, shared.RoundingUp)
	diff := new(big.Int).Sub(up, amountA)
	assert.True(t, diff.Cmp(big.NewInt(1)) <= 0 && diff.Sign() >= 0)
}
