package math

import (
	"math/big"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) *big.Int {
	if denominator.Sign() == 0 {
		return big.NewInt(0)
	}
	mul := new(big.Int).Mul(x, y)
	div, mod := new(big.Int).QuoRem(mul, denominator, new(big.Int))
	if rounding == shared.RoundingUp && mod.Sign() != 0 {
		return div.Add(div, big.NewInt(1))
	}
	return div
}

func Q64ToDecimal(num *big.Int, decimalPlaces int32) decimal.Decimal {
	if num == nil {
		return decimal.Zero
	}
	out := decimal.NewFromBigInt(num, 0).Div(decimal.NewFromBigInt(shared.OneQ64, 0))
	if decimalPlaces >= 0 {
		return out.Round(decimalPlaces)
	}
	return out
}

func DecimalToQ64(num decimal.Decimal) *big.Int {
	return num.Mul(decimal.NewFromBigInt(shared.OneQ64, 0)).Floor().BigInt()
}

func U128FromBig(v *big.Int) binary.Uint128 {
	if v == nil {
		return binary.Uint128{}
	}
	lo := new(big.Int).And(v, shared.MaxU64).Uint64()
	hi := new(big.Int).Rsh(new(big.Int).Set(v), 64).Uint64()
	return binary.Uint128{Lo: lo, Hi: hi}
}
