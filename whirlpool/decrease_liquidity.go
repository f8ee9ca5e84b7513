package whirlpool

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
	"github.com/krazyTry/whirlpool-go/whirlpool/math"
	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

// DecreaseLiquidity builds a transaction withdrawing from an existing
// position. Exactly one of Liquidity, TokenA, TokenB selects the quote.
func (c *Client) DecreaseLiquidity(ctx context.Context, params DecreaseLiquidityParams) (*DecreaseLiquidityResult, error) {
	authority := c.funder(params.Authority)
	if authority.IsZero() {
		return nil, fmt.Errorf("authority: %w", ErrZeroAddress)
	}
	pc, err := c.fetchPositionContext(ctx, params.PositionMint, authority)
	if err != nil {
		return nil, err
	}

	slippage := c.slippageBps(params.SlippageBps)
	quote, err := c.quoteDecrease(params, slippage, pc)
	if err != nil {
		return nil, err
	}

	prepared, err := c.PrepareTokenAccounts(ctx, authority, []TokenAccountSpec{
		WithoutBalance(pc.PoolState.TokenMintA),
		WithoutBalance(pc.PoolState.TokenMintB),
	})
	if err != nil {
		return nil, err
	}

	ix, err := whirlpoolgen.NewDecreaseLiquidityV2Instruction(
		whirlpoolgen.DecreaseLiquidityV2Args{
			LiquidityAmount: math.U128FromBig(quote.LiquidityDelta),
			TokenMinA:       quote.TokenMinA.Uint64(),
			TokenMinB:       quote.TokenMinB.Uint64(),
		},
		pc.liquidityAccounts(authority,
			prepared.Addresses[pc.PoolState.TokenMintA],
			prepared.Addresses[pc.PoolState.TokenMintB]),
	)
	if err != nil {
		return nil, err
	}

	builder, instructions := assembleTransaction(
		prepared.CreateInstructions,
		[]solanago.Instruction{ix},
		prepared.CleanupInstructions,
	)

	c.logger.Debug().
		Stringer("position", pc.Position).
		Str("liquidity", quote.LiquidityDelta.String()).
		Msg("assembled liquidity decrease")

	return &DecreaseLiquidityResult{
		Builder:           builder,
		Instructions:      instructions,
		Quote:             quote,
		AdditionalSigners: prepared.AdditionalSigners,
	}, nil
}

func (c *Client) quoteDecrease(params DecreaseLiquidityParams, slippage uint16, pc *positionContext) (shared.DecreaseLiquidityQuote, error) {
	sqrtPrice := pc.PoolState.SqrtPrice.BigInt()
	lower := pc.PositionState.TickLowerIndex
	upper := pc.PositionState.TickUpperIndex
	switch {
	case params.Liquidity != nil && params.TokenA == nil && params.TokenB == nil:
		return math.DecreaseLiquidityQuoteByLiquidity(params.Liquidity, slippage, sqrtPrice, lower, upper, pc.TokenInfoA, pc.TokenInfoB)
	case params.TokenA != nil && params.Liquidity == nil && params.TokenB == nil:
		return math.DecreaseLiquidityQuoteByToken(params.TokenA, true, slippage, sqrtPrice, lower, upper, pc.TokenInfoA, pc.TokenInfoB)
	case params.TokenB != nil && params.Liquidity == nil && params.TokenA == nil:
		return math.DecreaseLiquidityQuoteByToken(params.TokenB, false, slippage, sqrtPrice, lower, upper, pc.TokenInfoA, pc.TokenInfoB)
	default:
		return shared.DecreaseLiquidityQuote{}, errors.New("exactly one of Liquidity, TokenA, TokenB must be set")
	}
}

// ClosePosition empties a position, collects its fees and rewards, and
// closes the position accounts, all in one transaction.
func (c *Client) ClosePosition(ctx context.Context, params ClosePositionParams) (*ClosePositionResult, error) {
	authority := c.funder(params.Authority)
	if authority.IsZero() {
		return nil, fmt.Errorf("authority: %w", ErrZeroAddress)
	}
	pc, err := c.fetchPositionContext(ctx, params.PositionMint, authority)
	if err != nil {
		return nil, err
	}

	slippage := c.slippageBps(params.SlippageBps)
	liquidity := pc.PositionState.Liquidity.BigInt()

	quote := shared.DecreaseLiquidityQuote{
		LiquidityDelta: big.NewInt(0),
		TokenEstA:      big.NewInt(0),
		TokenEstB:      big.NewInt(0),
		TokenMinA:      big.NewInt(0),
		TokenMinB:      big.NewInt(0),
	}
	if liquidity.Sign() > 0 {
		quote, err = math.DecreaseLiquidityQuoteByLiquidity(
			liquidity, slippage, pc.PoolState.SqrtPrice.BigInt(),
			pc.PositionState.TickLowerIndex, pc.PositionState.TickUpperIndex,
			pc.TokenInfoA, pc.TokenInfoB)
		if err != nil {
			return nil, err
		}
	}
	feesQuote := positionFeesQuote(pc.PositionState)
	rewardsQuote := positionRewardsQuote(pc.PositionState)

	rewardMints := initializedRewardMints(pc.PoolState)
	specs := []TokenAccountSpec{
		WithoutBalance(pc.PoolState.TokenMintA),
		WithoutBalance(pc.PoolState.TokenMintB),
	}
	for _, mint := range rewardMints {
		specs = append(specs, WithoutBalance(mint))
	}
	prepared, err := c.PrepareTokenAccounts(ctx, authority, specs)
	if err != nil {
		return nil, err
	}
	tokenAccountA := prepared.Addresses[pc.PoolState.TokenMintA]
	tokenAccountB := prepared.Addresses[pc.PoolState.TokenMintB]

	var core []solanago.Instruction

	if liquidity.Sign() > 0 {
		decreaseIx, err := whirlpoolgen.NewDecreaseLiquidityV2Instruction(
			whirlpoolgen.DecreaseLiquidityV2Args{
				LiquidityAmount: math.U128FromBig(liquidity),
				TokenMinA:       quote.TokenMinA.Uint64(),
				TokenMinB:       quote.TokenMinB.Uint64(),
			},
			pc.liquidityAccounts(authority, tokenAccountA, tokenAccountB),
		)
		if err != nil {
			return nil, err
		}
		core = append(core, decreaseIx)
	}

	collectIx, err := whirlpoolgen.NewCollectFeesV2Instruction(
		whirlpoolgen.CollectFeesV2Args{},
		pc.Pool,
		authority,
		pc.Position,
		pc.PositionTokenAccount,
		pc.PoolState.TokenMintA,
		pc.PoolState.TokenMintB,
		tokenAccountA,
		tokenAccountB,
		pc.PoolState.TokenVaultA,
		pc.PoolState.TokenVaultB,
		pc.TokenProgramA,
		pc.TokenProgramB,
	)
	if err != nil {
		return nil, err
	}
	core = append(core, collectIx)

	rewardIxs, err := c.collectRewardInstructions(ctx, pc, authority, prepared)
	if err != nil {
		return nil, err
	}
	core = append(core, rewardIxs...)

	closeIx, err := whirlpoolgen.NewClosePositionInstruction(
		authority,
		authority,
		pc.Position,
		params.PositionMint,
		pc.PositionTokenAccount,
		pc.PositionTokenProgram,
	)
	if err != nil {
		return nil, err
	}
	core = append(core, closeIx)

	builder, instructions := assembleTransaction(
		prepared.CreateInstructions,
		core,
		prepared.CleanupInstructions,
	)

	c.logger.Debug().
		Stringer("position", pc.Position).
		Str("liquidity", liquidity.String()).
		Msg("assembled position close")

	return &ClosePositionResult{
		Builder:           builder,
		Instructions:      instructions,
		Quote:             quote,
		FeesQuote:         feesQuote,
		RewardsQuote:      rewardsQuote,
		AdditionalSigners: prepared.AdditionalSigners,
	}, nil
}

func positionFeesQuote(position *PositionState) shared.CollectFeesQuote {
	return shared.CollectFeesQuote{
		FeeOwedA: new(big.Int).SetUint64(position.FeeOwedA),
		FeeOwedB: new(big.Int).SetUint64(position.FeeOwedB),
	}
}

func positionRewardsQuote(position *PositionState) shared.CollectRewardsQuote {
	var quote shared.CollectRewardsQuote
	for i, info := range position.RewardInfos {
		quote.RewardsOwed[i] = new(big.Int).SetUint64(info.AmountOwed)
	}
	return quote
}

func initializedRewardMints(pool *WhirlpoolState) []solanago.PublicKey {
	out := make([]solanago.PublicKey, 0, len(pool.RewardInfos))
	for _, info := range pool.RewardInfos {
		if !info.Mint.IsZero() {
			out = append(out, info.Mint)
		}
	}
	return out
}

func (c *Client) collectRewardInstructions(ctx context.Context, pc *positionContext, authority solanago.PublicKey, prepared *PreparedTokenAccounts) ([]solanago.Instruction, error) {
	var out []solanago.Instruction
	for i, info := range pc.PoolState.RewardInfos {
		if info.Mint.IsZero() {
			continue
		}
		rewardProgram, err := c.tokenProgramForMint(ctx, info.Mint)
		if err != nil {
			return nil, err
		}
		ix, err := whirlpoolgen.NewCollectRewardV2Instruction(
			whirlpoolgen.CollectRewardV2Args{RewardIndex: uint8(i)},
			pc.Pool,
			authority,
			pc.Position,
			pc.PositionTokenAccount,
			prepared.Addresses[info.Mint],
			info.Mint,
			info.Vault,
			rewardProgram,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, ix)
	}
	return out, nil
}

func (c *Client) tokenProgramForMint(ctx context.Context, mint solanago.PublicKey) (solanago.PublicKey, error) {
	acc, err := c.Reader.GetAccountInfoWithOpts(ctx, mint, &rpc.GetAccountInfoOpts{Commitment: c.Commitment})
	if err != nil {
		return solanago.PublicKey{}, err
	}
	if acc == nil || acc.Value == nil {
		return solanago.PublicKey{}, fmt.Errorf("mint %s: %w", mint, ErrAccountNotFound)
	}
	if acc.Value.Owner.Equals(solanago.Token2022ProgramID) || acc.Value.Owner.Equals(solanago.TokenProgramID) {
		return acc.Value.Owner, nil
	}
	return solanago.PublicKey{}, fmt.Errorf("mint %s: %w", mint, ErrUnsupportedTokenProgram)
}
