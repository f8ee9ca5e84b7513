package whirlpool

import (
	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// Account sizes in bytes, discriminator included.
const (
	WhirlpoolLen       = 653
	PositionLen        = 216
	TickArrayLen       = 9988
	FeeTierLen         = 44
	TokenAccountLen    = 165
	TickArraySize      = 88
	NumRewards         = 3
	PositionBundleSize = 256
)

// Tick range supported by the program.
const (
	MinTickIndex = -443636
	MaxTickIndex = 443636
)

// WhirlpoolRewardInfo is one of the three reward emission slots on a pool.
type WhirlpoolRewardInfo struct {
	Mint                  solanago.PublicKey
	Vault                 solanago.PublicKey
	Authority             solanago.PublicKey
	EmissionsPerSecondX64 bin.Uint128
	GrowthGlobalX64       bin.Uint128
}

// PositionRewardInfo tracks reward accrual checkpoints for a position.
type PositionRewardInfo struct {
	GrowthInsideCheckpoint bin.Uint128
	AmountOwed             uint64
}

// Tick is a single initialized price boundary inside a tick array.
type Tick struct {
	Initialized          bool
	LiquidityNet         bin.Int128
	LiquidityGross       bin.Uint128
	FeeGrowthOutsideA    bin.Uint128
	FeeGrowthOutsideB    bin.Uint128
	RewardGrowthsOutside [NumRewards]bin.Uint128
}

// RemainingAccountsSlice labels a run of trailing accounts on a v2 instruction.
type RemainingAccountsSlice struct {
	AccountsType uint8
	Length       uint8
}

// RemainingAccountsInfo describes extra accounts appended for transfer hooks.
type RemainingAccountsInfo struct {
	Slices []RemainingAccountsSlice
}
