package shared

import "math/big"

// Enums and common types shared by math and the whirlpool client.
type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

const (
	BasisPointMax = 10_000
	ScaleOffset   = 64

	// TickArraySize ticks per tick array account.
	TickArraySize = 88

	MinTickIndex = -443636
	MaxTickIndex = 443636

	// SplashPoolTickSpacing marks a full-range-only pool.
	SplashPoolTickSpacing = 32896
)

var (
	OneQ64  = new(big.Int).Lsh(big.NewInt(1), ScaleOffset)
	MaxU64  = new(big.Int).SetUint64(^uint64(0))
	MaxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	// Sqrt price bounds matching MinTickIndex and MaxTickIndex.
	MinSqrtPrice, _ = new(big.Int).SetString("4295048016", 10)
	MaxSqrtPrice, _ = new(big.Int).SetString("79226673515401279992447579055", 10)
)

// IncreaseLiquidityQuote is the token cost estimate for adding liquidity.
type IncreaseLiquidityQuote struct {
	LiquidityDelta *big.Int
	TokenEstA      *big.Int
	TokenEstB      *big.Int
	TokenMaxA      *big.Int
	TokenMaxB      *big.Int
}

// DecreaseLiquidityQuote is the token withdrawal estimate for removing liquidity.
type DecreaseLiquidityQuote struct {
	LiquidityDelta *big.Int
	TokenEstA      *big.Int
	TokenEstB      *big.Int
	TokenMinA      *big.Int
	TokenMinB      *big.Int
}

// CollectFeesQuote is the owed trading fees of a position after an
// on-chain fee update.
type CollectFeesQuote struct {
	FeeOwedA *big.Int
	FeeOwedB *big.Int
}

// CollectRewardsQuote is the owed reward amounts per emission slot.
type CollectRewardsQuote struct {
	RewardsOwed [3]*big.Int
}
