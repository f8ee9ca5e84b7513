package math

import (
	"errors"
	stdmath "math"
	"math/big"

	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

var (
	ErrTickOutOfRange   = errors.New("tick index out of range")
	ErrInvalidSqrtPrice = errors.New("sqrt price out of range")
)

// sqrtPriceBitsPositive[k] is sqrt(1.0001^(2^k)) as a Q64.96 integer.
// The products reproduce the on-chain fixed point math bit for bit,
// including its flooring behavior.
var sqrtPriceBitsPositive = [19]string{
	"79232123823359799118286999567",
	"79236085330515764027303304731",
	"79244008939048815603706035061",
	"79259858533276714757314932305",
	"79291567232598584799939703904",
	"79355022692464371645785046466",
	"79482085999252804386437311141",
	"79736823300114093921829183326",
	"80248749790819932309965073892",
	"81282483887344747381513967011",
	"83390072131320151908154831281",
	"87770609709833776024991924138",
	"97234110755111693312479820773",
	"119332217159966728226237229890",
	"179736315981702064433883588727",
	"407748233172238350107850275304",
	"2098478828474011932436660412517",
	"55581415166113811149459800483533",
	"38992368544603139932233054999993551",
}

// sqrtPriceBitsNegative[k] is sqrt(1.0001^-(2^k)) as a Q64.64 integer.
var sqrtPriceBitsNegative = [19]uint64{
	18445821805675392311,
	18444899583751176498,
	18443055278223354162,
	18439367220385604838,
	18431993317065449817,
	18417254355718160513,
	18387811781193591352,
	18329067761203520168,
	18212142134806087854,
	17980523815641551639,
	17526086738831147013,
	16651378430235024244,
	15030750278693429944,
	12247334978882834399,
	8131365268884726200,
	3584323654723342297,
	696457651847595233,
	26294789957452057,
	37481735321082,
}

var (
	sqrtPricePositive [19]*big.Int
	sqrtPriceNegative [19]*big.Int
)

func init() {
	for i, s := range sqrtPriceBitsPositive {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			panic("math: bad sqrt price constant " + s)
		}
		sqrtPricePositive[i] = v
	}
	for i, v := range sqrtPriceBitsNegative {
		sqrtPriceNegative[i] = new(big.Int).SetUint64(v)
	}
}

// TickIndexToSqrtPrice returns the Q64.64 sqrt price of 1.0001^tick for
// any tick in the supported range, matching the on-chain computation.
func TickIndexToSqrtPrice(tickIndex int32) *big.Int {
	if tickIndex >= 0 {
		// positive ticks run in Q64.96 and shift down at the end
		ratio := new(big.Int).Lsh(big.NewInt(1), 96)
		if tickIndex&1 != 0 {
			ratio.Set(sqrtPricePositive[0])
		}
		for k, t := 1, tickIndex>>1; t > 0; k, t = k+1, t>>1 {
			if t&1 != 0 {
				ratio.Mul(ratio, sqrtPricePositive[k])
				ratio.Rsh(ratio, 96)
			}
		}
		return ratio.Rsh(ratio, 32)
	}

	t := -tickIndex
	ratio := new(big.Int).Set(shared.OneQ64)
	if t&1 != 0 {
		ratio.Set(sqrtPriceNegative[0])
	}
	for k, rest := 1, t>>1; rest > 0; k, rest = k+1, rest>>1 {
		if rest&1 != 0 {
			ratio.Mul(ratio, sqrtPriceNegative[k])
			ratio.Rsh(ratio, 64)
		}
	}
	return ratio
}

// SqrtPriceToTickIndex returns the largest tick whose sqrt price is at
// most the given Q64.64 value.
func SqrtPriceToTickIndex(sqrtPrice *big.Int) (int32, error) {
	if sqrtPrice.Cmp(shared.MinSqrtPrice) < 0 || sqrtPrice.Cmp(shared.MaxSqrtPrice) > 0 {
		return 0, ErrInvalidSqrtPrice
	}
	f, _ := new(big.Float).SetInt(sqrtPrice).Float64()
	x := f / stdmath.Pow(2, 64)
	tick := int32(stdmath.Floor(2 * stdmath.Log(x) / stdmath.Log(1.0001)))
	// float64 estimate can be off by a tick at the boundary
	for tick < shared.MaxTickIndex && TickIndexToSqrtPrice(tick+1).Cmp(sqrtPrice) <= 0 {
		tick++
	}
	for tick > shared.MinTickIndex && TickIndexToSqrtPrice(tick).Cmp(sqrtPrice) > 0 {
		tick--
	}
	return tick, nil
}

// GetTickArrayStartTickIndex returns the start tick of the array holding
// tickIndex, flooring toward negative infinity.
func GetTickArrayStartTickIndex(tickIndex int32, tickSpacing uint16) int32 {
	ticksPerArray := int32(tickSpacing) * shared.TickArraySize
	index := tickIndex / ticksPerArray
	if tickIndex < 0 && tickIndex%ticksPerArray != 0 {
		index--
	}
	return index * ticksPerArray
}

// GetFullRangeTickIndexes returns the widest initializable tick bounds
// for a tick spacing.
func GetFullRangeTickIndexes(tickSpacing uint16) (lower, upper int32) {
	n := int32(shared.MaxTickIndex) / int32(tickSpacing)
	return -n * int32(tickSpacing), n * int32(tickSpacing)
}

// GetInitializableTickIndex snaps a tick to the nearest initializable
// multiple of the spacing, toward zero.
func GetInitializableTickIndex(tickIndex int32, tickSpacing uint16) int32 {
	return tickIndex - tickIndex%int32(tickSpacing)
}

// IsFullRangeOnly reports whether a tick spacing restricts positions to
// the full price range.
func IsFullRangeOnly(tickSpacing uint16) bool {
	return tickSpacing >= shared.SplashPoolTickSpacing
}

// CheckTickRange validates an ordered pair of position tick bounds
// against the supported range and spacing.
func CheckTickRange(lower, upper int32, tickSpacing uint16) error {
	if lower >= upper {
		return errors.New("tick lower must be below tick upper")
	}
	if lower < shared.MinTickIndex || upper > shared.MaxTickIndex {
		return ErrTickOutOfRange
	}
	if lower%int32(tickSpacing) != 0 || upper%int32(tickSpacing) != 0 {
		return errors.New("tick index not a multiple of tick spacing")
	}
	return nil
}
