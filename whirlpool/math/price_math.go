package math

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

const sqrtPrec = 512

// PriceToSqrtPrice converts a human readable price of token A quoted in
// token B into the pool's Q64.64 sqrt price representation.
func PriceToSqrtPrice(price decimal.Decimal, decimalsA, decimalsB uint8) (*big.Int, error) {
	if price.Sign() <= 0 {
		return nil, errors.New("price must be greater than 0")
	}
	scaled := price.Mul(decimal.New(1, int32(decimalsB)-int32(decimalsA)))
	f, _ := new(big.Float).SetPrec(sqrtPrec).SetString(scaled.String())
	if f == nil {
		return nil, errors.New("invalid price")
	}
	f.Sqrt(f)
	f.Mul(f, new(big.Float).SetPrec(sqrtPrec).SetInt(shared.OneQ64))
	out, _ := f.Int(nil)
	if out.Cmp(shared.MinSqrtPrice) < 0 || out.Cmp(shared.MaxSqrtPrice) > 0 {
		return nil, ErrInvalidSqrtPrice
	}
	return out, nil
}

// SqrtPriceToPrice converts a Q64.64 sqrt price back into a human
// readable price of token A quoted in token B.
func SqrtPriceToPrice(sqrtPrice *big.Int, decimalsA, decimalsB uint8) decimal.Decimal {
	sqrt := Q64ToDecimal(sqrtPrice, -1)
	return sqrt.Mul(sqrt).Mul(decimal.New(1, int32(decimalsA)-int32(decimalsB)))
}

// PriceToTickIndex returns the tick whose sqrt price floors the price.
func PriceToTickIndex(price decimal.Decimal, decimalsA, decimalsB uint8) (int32, error) {
	sqrtPrice, err := PriceToSqrtPrice(price, decimalsA, decimalsB)
	if err != nil {
		return 0, err
	}
	return SqrtPriceToTickIndex(sqrtPrice)
}

// TickIndexToPrice returns the price at an exact tick.
func TickIndexToPrice(tickIndex int32, decimalsA, decimalsB uint8) decimal.Decimal {
	return SqrtPriceToPrice(TickIndexToSqrtPrice(tickIndex), decimalsA, decimalsB)
}
