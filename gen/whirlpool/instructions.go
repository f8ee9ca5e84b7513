package whirlpool

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// InitializePoolV2Args are the borsh-encoded arguments of initialize_pool_v2.
type InitializePoolV2Args struct {
	TickSpacing      uint16
	InitialSqrtPrice bin.Uint128
}

// InitializeTickArrayArgs are the arguments of initialize_tick_array.
type InitializeTickArrayArgs struct {
	StartTickIndex int32
}

// IncreaseLiquidityV2Args are the arguments of increase_liquidity_v2.
type IncreaseLiquidityV2Args struct {
	LiquidityAmount       bin.Uint128
	TokenMaxA             uint64
	TokenMaxB             uint64
	RemainingAccountsInfo *RemainingAccountsInfo `bin:"optional"`
}

// DecreaseLiquidityV2Args are the arguments of decrease_liquidity_v2.
type DecreaseLiquidityV2Args struct {
	LiquidityAmount       bin.Uint128
	TokenMinA             uint64
	TokenMinB             uint64
	RemainingAccountsInfo *RemainingAccountsInfo `bin:"optional"`
}

// CollectFeesV2Args are the arguments of collect_fees_v2.
type CollectFeesV2Args struct {
	RemainingAccountsInfo *RemainingAccountsInfo `bin:"optional"`
}

// CollectRewardV2Args are the arguments of collect_reward_v2.
type CollectRewardV2Args struct {
	RewardIndex           uint8
	RemainingAccountsInfo *RemainingAccountsInfo `bin:"optional"`
}

func encodeInstruction(disc [8]byte, args any) ([]byte, error) {
	data := new(bytes.Buffer)
	data.Write(disc[:])
	if args != nil {
		if err := bin.NewBorshEncoder(data).Encode(args); err != nil {
			return nil, err
		}
	}
	return data.Bytes(), nil
}

// NewInitializePoolV2Instruction builds initialize_pool_v2.
func NewInitializePoolV2Instruction(
	args InitializePoolV2Args,
	whirlpoolsConfig solanago.PublicKey,
	tokenMintA solanago.PublicKey,
	tokenMintB solanago.PublicKey,
	tokenBadgeA solanago.PublicKey,
	tokenBadgeB solanago.PublicKey,
	funder solanago.PublicKey,
	whirlpool solanago.PublicKey,
	tokenVaultA solanago.PublicKey,
	tokenVaultB solanago.PublicKey,
	feeTier solanago.PublicKey,
	tokenProgramA solanago.PublicKey,
	tokenProgramB solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_InitializePoolV2, args)
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(whirlpoolsConfig, false, false),
		solanago.NewAccountMeta(tokenMintA, false, false),
		solanago.NewAccountMeta(tokenMintB, false, false),
		solanago.NewAccountMeta(tokenBadgeA, false, false),
		solanago.NewAccountMeta(tokenBadgeB, false, false),
		solanago.NewAccountMeta(funder, true, true),
		solanago.NewAccountMeta(whirlpool, true, false),
		solanago.NewAccountMeta(tokenVaultA, true, true),
		solanago.NewAccountMeta(tokenVaultB, true, true),
		solanago.NewAccountMeta(feeTier, false, false),
		solanago.NewAccountMeta(tokenProgramA, false, false),
		solanago.NewAccountMeta(tokenProgramB, false, false),
		solanago.NewAccountMeta(solanago.SystemProgramID, false, false),
		solanago.NewAccountMeta(solanago.SysVarRentPubkey, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// NewInitializeTickArrayInstruction builds initialize_tick_array.
func NewInitializeTickArrayInstruction(
	args InitializeTickArrayArgs,
	whirlpool solanago.PublicKey,
	funder solanago.PublicKey,
	tickArray solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_InitializeTickArray, args)
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(whirlpool, false, false),
		solanago.NewAccountMeta(funder, true, true),
		solanago.NewAccountMeta(tickArray, true, false),
		solanago.NewAccountMeta(solanago.SystemProgramID, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// LiquidityV2Accounts groups the shared account set of the v2 liquidity
// instructions (increase and decrease use the same order).
type LiquidityV2Accounts struct {
	Whirlpool          solanago.PublicKey
	TokenProgramA      solanago.PublicKey
	TokenProgramB      solanago.PublicKey
	PositionAuthority  solanago.PublicKey
	Position           solanago.PublicKey
	PositionTokenAcct  solanago.PublicKey
	TokenMintA         solanago.PublicKey
	TokenMintB         solanago.PublicKey
	TokenOwnerAccountA solanago.PublicKey
	TokenOwnerAccountB solanago.PublicKey
	TokenVaultA        solanago.PublicKey
	TokenVaultB        solanago.PublicKey
	TickArrayLower     solanago.PublicKey
	TickArrayUpper     solanago.PublicKey
}

func (a LiquidityV2Accounts) metas() solanago.AccountMetaSlice {
	return solanago.AccountMetaSlice{
		solanago.NewAccountMeta(a.Whirlpool, true, false),
		solanago.NewAccountMeta(a.TokenProgramA, false, false),
		solanago.NewAccountMeta(a.TokenProgramB, false, false),
		solanago.NewAccountMeta(MemoProgramID, false, false),
		solanago.NewAccountMeta(a.PositionAuthority, false, true),
		solanago.NewAccountMeta(a.Position, true, false),
		solanago.NewAccountMeta(a.PositionTokenAcct, false, false),
		solanago.NewAccountMeta(a.TokenMintA, false, false),
		solanago.NewAccountMeta(a.TokenMintB, false, false),
		solanago.NewAccountMeta(a.TokenOwnerAccountA, true, false),
		solanago.NewAccountMeta(a.TokenOwnerAccountB, true, false),
		solanago.NewAccountMeta(a.TokenVaultA, true, false),
		solanago.NewAccountMeta(a.TokenVaultB, true, false),
		solanago.NewAccountMeta(a.TickArrayLower, true, false),
		solanago.NewAccountMeta(a.TickArrayUpper, true, false),
	}
}

// NewIncreaseLiquidityV2Instruction builds increase_liquidity_v2.
func NewIncreaseLiquidityV2Instruction(args IncreaseLiquidityV2Args, accounts LiquidityV2Accounts) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_IncreaseLiquidityV2, args)
	if err != nil {
		return nil, err
	}
	return solanago.NewInstruction(ProgramID, accounts.metas(), data), nil
}

// NewDecreaseLiquidityV2Instruction builds decrease_liquidity_v2.
func NewDecreaseLiquidityV2Instruction(args DecreaseLiquidityV2Args, accounts LiquidityV2Accounts) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_DecreaseLiquidityV2, args)
	if err != nil {
		return nil, err
	}
	return solanago.NewInstruction(ProgramID, accounts.metas(), data), nil
}

// NewCollectFeesV2Instruction builds collect_fees_v2.
func NewCollectFeesV2Instruction(
	args CollectFeesV2Args,
	whirlpool solanago.PublicKey,
	positionAuthority solanago.PublicKey,
	position solanago.PublicKey,
	positionTokenAccount solanago.PublicKey,
	tokenMintA solanago.PublicKey,
	tokenMintB solanago.PublicKey,
	tokenOwnerAccountA solanago.PublicKey,
	tokenOwnerAccountB solanago.PublicKey,
	tokenVaultA solanago.PublicKey,
	tokenVaultB solanago.PublicKey,
	tokenProgramA solanago.PublicKey,
	tokenProgramB solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_CollectFeesV2, args)
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(whirlpool, true, false),
		solanago.NewAccountMeta(positionAuthority, false, true),
		solanago.NewAccountMeta(position, true, false),
		solanago.NewAccountMeta(positionTokenAccount, false, false),
		solanago.NewAccountMeta(tokenMintA, false, false),
		solanago.NewAccountMeta(tokenMintB, false, false),
		solanago.NewAccountMeta(tokenOwnerAccountA, true, false),
		solanago.NewAccountMeta(tokenOwnerAccountB, true, false),
		solanago.NewAccountMeta(tokenVaultA, true, false),
		solanago.NewAccountMeta(tokenVaultB, true, false),
		solanago.NewAccountMeta(tokenProgramA, false, false),
		solanago.NewAccountMeta(tokenProgramB, false, false),
		solanago.NewAccountMeta(MemoProgramID, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// NewCollectRewardV2Instruction builds collect_reward_v2.
func NewCollectRewardV2Instruction(
	args CollectRewardV2Args,
	whirlpool solanago.PublicKey,
	positionAuthority solanago.PublicKey,
	position solanago.PublicKey,
	positionTokenAccount solanago.PublicKey,
	rewardOwnerAccount solanago.PublicKey,
	rewardMint solanago.PublicKey,
	rewardVault solanago.PublicKey,
	rewardTokenProgram solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_CollectRewardV2, args)
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(whirlpool, true, false),
		solanago.NewAccountMeta(positionAuthority, false, true),
		solanago.NewAccountMeta(position, true, false),
		solanago.NewAccountMeta(positionTokenAccount, false, false),
		solanago.NewAccountMeta(rewardOwnerAccount, true, false),
		solanago.NewAccountMeta(rewardMint, false, false),
		solanago.NewAccountMeta(rewardVault, true, false),
		solanago.NewAccountMeta(rewardTokenProgram, false, false),
		solanago.NewAccountMeta(MemoProgramID, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// NewUpdateFeesAndRewardsInstruction builds update_fees_and_rewards.
func NewUpdateFeesAndRewardsInstruction(
	whirlpool solanago.PublicKey,
	position solanago.PublicKey,
	tickArrayLower solanago.PublicKey,
	tickArrayUpper solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_UpdateFeesAndRewards, nil)
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(whirlpool, true, false),
		solanago.NewAccountMeta(position, true, false),
		solanago.NewAccountMeta(tickArrayLower, false, false),
		solanago.NewAccountMeta(tickArrayUpper, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// NewClosePositionInstruction builds close_position.
func NewClosePositionInstruction(
	positionAuthority solanago.PublicKey,
	receiver solanago.PublicKey,
	position solanago.PublicKey,
	positionMint solanago.PublicKey,
	positionTokenAccount solanago.PublicKey,
	tokenProgram solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_ClosePosition, nil)
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(positionAuthority, false, true),
		solanago.NewAccountMeta(receiver, true, false),
		solanago.NewAccountMeta(position, true, false),
		solanago.NewAccountMeta(positionMint, true, false),
		solanago.NewAccountMeta(positionTokenAccount, true, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}
