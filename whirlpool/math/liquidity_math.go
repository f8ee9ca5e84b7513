package math

import (
	"errors"
	"math/big"

	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

func orderSqrtPrices(a, b *big.Int) (lower, upper *big.Int) {
	if a.Cmp(b) < 0 {
		return a, b
	}
	return b, a
}

// GetAmountDeltaA returns the token A amount covered by liquidity between
// two sqrt prices.
func GetAmountDeltaA(sqrtPrice0, sqrtPrice1, liquidity *big.Int, rounding shared.Rounding) *big.Int {
	lower, upper := orderSqrtPrices(sqrtPrice0, sqrtPrice1)
	numerator := new(big.Int).Lsh(liquidity, shared.ScaleOffset)
	numerator.Mul(numerator, new(big.Int).Sub(upper, lower))
	denominator := new(big.Int).Mul(upper, lower)
	return MulDiv(numerator, big.NewInt(1), denominator, rounding)
}

// GetAmountDeltaB returns the token B amount covered by liquidity between
// two sqrt prices.
func GetAmountDeltaB(sqrtPrice0, sqrtPrice1, liquidity *big.Int, rounding shared.Rounding) *big.Int {
	lower, upper := orderSqrtPrices(sqrtPrice0, sqrtPrice1)
	product := new(big.Int).Mul(liquidity, new(big.Int).Sub(upper, lower))
	out := new(big.Int).Rsh(product, shared.ScaleOffset)
	if rounding == shared.RoundingUp {
		rem := new(big.Int).And(product, new(big.Int).Sub(shared.OneQ64, big.NewInt(1)))
		if rem.Sign() != 0 {
			out.Add(out, big.NewInt(1))
		}
	}
	return out
}

// GetLiquidityFromAmountA returns the liquidity a token A amount funds
// between two sqrt prices.
func GetLiquidityFromAmountA(amount, sqrtPrice0, sqrtPrice1 *big.Int) *big.Int {
	lower, upper := orderSqrtPrices(sqrtPrice0, sqrtPrice1)
	numerator := new(big.Int).Mul(amount, lower)
	numerator.Mul(numerator, upper)
	denominator := new(big.Int).Lsh(new(big.Int).Sub(upper, lower), shared.ScaleOffset)
	return MulDiv(numerator, big.NewInt(1), denominator, shared.RoundingDown)
}

// GetLiquidityFromAmountB returns the liquidity a token B amount funds
// between two sqrt prices.
func GetLiquidityFromAmountB(amount, sqrtPrice0, sqrtPrice1 *big.Int) *big.Int {
	lower, upper := orderSqrtPrices(sqrtPrice0, sqrtPrice1)
	numerator := new(big.Int).Lsh(amount, shared.ScaleOffset)
	denominator := new(big.Int).Sub(upper, lower)
	return MulDiv(numerator, big.NewInt(1), denominator, shared.RoundingDown)
}

// positionTokenAmounts splits a liquidity delta into token amounts given
// the pool's current sqrt price and the position's tick bounds.
func positionTokenAmounts(liquidity, currentSqrtPrice *big.Int, tickLower, tickUpper int32, rounding shared.Rounding) (amountA, amountB *big.Int) {
	sqrtLower := TickIndexToSqrtPrice(tickLower)
	sqrtUpper := TickIndexToSqrtPrice(tickUpper)
	switch {
	case currentSqrtPrice.Cmp(sqrtLower) <= 0:
		return GetAmountDeltaA(sqrtLower, sqrtUpper, liquidity, rounding), big.NewInt(0)
	case currentSqrtPrice.Cmp(sqrtUpper) >= 0:
		return big.NewInt(0), GetAmountDeltaB(sqrtLower, sqrtUpper, liquidity, rounding)
	default:
		amountA = GetAmountDeltaA(currentSqrtPrice, sqrtUpper, liquidity, rounding)
		amountB = GetAmountDeltaB(sqrtLower, currentSqrtPrice, liquidity, rounding)
		return amountA, amountB
	}
}

func applySlippageUp(amount *big.Int, slippageBps uint16) *big.Int {
	return MulDiv(amount, big.NewInt(int64(shared.BasisPointMax)+int64(slippageBps)), big.NewInt(shared.BasisPointMax), shared.RoundingUp)
}

func applySlippageDown(amount *big.Int, slippageBps uint16) *big.Int {
	return MulDiv(amount, big.NewInt(int64(shared.BasisPointMax)-int64(slippageBps)), big.NewInt(shared.BasisPointMax), shared.RoundingDown)
}

// IncreaseLiquidityQuoteByLiquidity estimates the fee-included token
// deposits needed for a liquidity delta, plus slippage-padded maximums.
func IncreaseLiquidityQuoteByLiquidity(
	liquidity *big.Int,
	slippageBps uint16,
	currentSqrtPrice *big.Int,
	tickLower, tickUpper int32,
	tokenInfoA, tokenInfoB *helpers.TokenInfo,
) (shared.IncreaseLiquidityQuote, error) {
	if liquidity == nil || liquidity.Sign() <= 0 {
		return shared.IncreaseLiquidityQuote{}, errors.New("liquidity must be greater than 0")
	}
	if tickLower >= tickUpper {
		return shared.IncreaseLiquidityQuote{}, errors.New("tick lower must be below tick upper")
	}
	rawA, rawB := positionTokenAmounts(liquidity, currentSqrtPrice, tickLower, tickUpper, shared.RoundingUp)
	estA := CalculateTransferFeeIncludedAmount(rawA, tokenInfoA).Amount
	estB := CalculateTransferFeeIncludedAmount(rawB, tokenInfoB).Amount
	return shared.IncreaseLiquidityQuote{
		LiquidityDelta: new(big.Int).Set(liquidity),
		TokenEstA:      estA,
		TokenEstB:      estB,
		TokenMaxA:      applySlippageUp(estA, slippageBps),
		TokenMaxB:      applySlippageUp(estB, slippageBps),
	}, nil
}

// IncreaseLiquidityQuoteByToken derives the liquidity delta funded by a
// single token amount, then quotes both sides.
func IncreaseLiquidityQuoteByToken(
	tokenAmount *big.Int,
	amountIsTokenA bool,
	slippageBps uint16,
	currentSqrtPrice *big.Int,
	tickLower, tickUpper int32,
	tokenInfoA, tokenInfoB *helpers.TokenInfo,
) (shared.IncreaseLiquidityQuote, error) {
	if tokenAmount == nil || tokenAmount.Sign() <= 0 {
		return shared.IncreaseLiquidityQuote{}, errors.New("token amount must be greater than 0")
	}
	sqrtLower := TickIndexToSqrtPrice(tickLower)
	sqrtUpper := TickIndexToSqrtPrice(tickUpper)

	bound := new(big.Int).Set(currentSqrtPrice)
	if bound.Cmp(sqrtLower) < 0 {
		bound.Set(sqrtLower)
	}
	if bound.Cmp(sqrtUpper) > 0 {
		bound.Set(sqrtUpper)
	}

	var liquidity *big.Int
	if amountIsTokenA {
		deposited := CalculateTransferFeeExcludedAmount(tokenAmount, tokenInfoA).Amount
		if bound.Cmp(sqrtUpper) >= 0 {
			return shared.IncreaseLiquidityQuote{}, errors.New("position is entirely in token B")
		}
		liquidity = GetLiquidityFromAmountA(deposited, bound, sqrtUpper)
	} else {
		deposited := CalculateTransferFeeExcludedAmount(tokenAmount, tokenInfoB).Amount
		if bound.Cmp(sqrtLower) <= 0 {
			return shared.IncreaseLiquidityQuote{}, errors.New("position is entirely in token A")
		}
		liquidity = GetLiquidityFromAmountB(deposited, sqrtLower, bound)
	}
	return IncreaseLiquidityQuoteByLiquidity(liquidity, slippageBps, currentSqrtPrice, tickLower, tickUpper, tokenInfoA, tokenInfoB)
}

// DecreaseLiquidityQuoteByToken derives the liquidity delta that pays
// out a single token amount net of transfer fees, then quotes both sides.
func DecreaseLiquidityQuoteByToken(
	tokenAmount *big.Int,
	amountIsTokenA bool,
	slippageBps uint16,
	currentSqrtPrice *big.Int,
	tickLower, tickUpper int32,
	tokenInfoA, tokenInfoB *helpers.TokenInfo,
) (shared.DecreaseLiquidityQuote, error) {
	if tokenAmount == nil || tokenAmount.Sign() <= 0 {
		return shared.DecreaseLiquidityQuote{}, errors.New("token amount must be greater than 0")
	}
	sqrtLower := TickIndexToSqrtPrice(tickLower)
	sqrtUpper := TickIndexToSqrtPrice(tickUpper)

	bound := new(big.Int).Set(currentSqrtPrice)
	if bound.Cmp(sqrtLower) < 0 {
		bound.Set(sqrtLower)
	}
	if bound.Cmp(sqrtUpper) > 0 {
		bound.Set(sqrtUpper)
	}

	var liquidity *big.Int
	if amountIsTokenA {
		raw := CalculateTransferFeeIncludedAmount(tokenAmount, tokenInfoA).Amount
		if bound.Cmp(sqrtUpper) >= 0 {
			return shared.DecreaseLiquidityQuote{}, errors.New("position is entirely in token B")
		}
		liquidity = GetLiquidityFromAmountA(raw, bound, sqrtUpper)
	} else {
		raw := CalculateTransferFeeIncludedAmount(tokenAmount, tokenInfoB).Amount
		if bound.Cmp(sqrtLower) <= 0 {
			return shared.DecreaseLiquidityQuote{}, errors.New("position is entirely in token A")
		}
		liquidity = GetLiquidityFromAmountB(raw, sqrtLower, bound)
	}
	return DecreaseLiquidityQuoteByLiquidity(liquidity, slippageBps, currentSqrtPrice, tickLower, tickUpper, tokenInfoA, tokenInfoB)
}

// DecreaseLiquidityQuoteByLiquidity estimates the fee-excluded token
// withdrawals for a liquidity delta, plus slippage-cut minimums.
func DecreaseLiquidityQuoteByLiquidity(
	liquidity *big.Int,
	slippageBps uint16,
	currentSqrtPrice *big.Int,
	tickLower, tickUpper int32,
	tokenInfoA, tokenInfoB *helpers.TokenInfo,
) (shared.DecreaseLiquidityQuote, error) {
	if liquidity == nil || liquidity.Sign() <= 0 {
		return shared.DecreaseLiquidityQuote{}, errors.New("liquidity must be greater than 0")
	}
	if tickLower >= tickUpper {
		return shared.DecreaseLiquidityQuote{}, errors.New("tick lower must be below tick upper")
	}
	rawA, rawB := positionTokenAmounts(liquidity, currentSqrtPrice, tickLower, tickUpper, shared.RoundingDown)
	estA := CalculateTransferFeeExcludedAmount(rawA, tokenInfoA).Amount
	estB := CalculateTransferFeeExcludedAmount(rawB, tokenInfoB).Amount
	return shared.DecreaseLiquidityQuote{
		LiquidityDelta: new(big.Int).Set(liquidity),
		TokenEstA:      estA,
		TokenEstB:      estB,
		TokenMinA:      applySlippageDown(estA, slippageBps),
		TokenMinB:      applySlippageDown(estB, slippageBps),
	}, nil
}
