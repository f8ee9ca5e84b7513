package whirlpool

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
)

// HarvestPosition collects the owed fees and rewards of a position
// without changing its liquidity. The batch starts with an on-chain fee
// and reward update so the collects sweep fresh accumulators.
func (c *Client) HarvestPosition(ctx context.Context, params HarvestPositionParams) (*HarvestPositionResult, error) {
	authority := c.funder(params.Authority)
	if authority.IsZero() {
		return nil, fmt.Errorf("authority: %w", ErrZeroAddress)
	}
	pc, err := c.fetchPositionContext(ctx, params.PositionMint, authority)
	if err != nil {
		return nil, err
	}

	feesQuote := positionFeesQuote(pc.PositionState)
	rewardsQuote := positionRewardsQuote(pc.PositionState)

	specs := []TokenAccountSpec{
		WithoutBalance(pc.PoolState.TokenMintA),
		WithoutBalance(pc.PoolState.TokenMintB),
	}
	for _, mint := range initializedRewardMints(pc.PoolState) {
		specs = append(specs, WithoutBalance(mint))
	}
	prepared, err := c.PrepareTokenAccounts(ctx, authority, specs)
	if err != nil {
		return nil, err
	}

	var core []solanago.Instruction

	if pc.PositionState.Liquidity.BigInt().Sign() > 0 {
		updateIx, err := whirlpoolgen.NewUpdateFeesAndRewardsInstruction(
			pc.Pool,
			pc.Position,
			pc.TickArrayLower,
			pc.TickArrayUpper,
		)
		if err != nil {
			return nil, err
		}
		core = append(core, updateIx)
	}

	collectIx, err := whirlpoolgen.NewCollectFeesV2Instruction(
		whirlpoolgen.CollectFeesV2Args{},
		pc.Pool,
		authority,
		pc.Position,
		pc.PositionTokenAccount,
		pc.PoolState.TokenMintA,
		pc.PoolState.TokenMintB,
		prepared.Addresses[pc.PoolState.TokenMintA],
		prepared.Addresses[pc.PoolState.TokenMintB],
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

	builder, instructions := assembleTransaction(
		prepared.CreateInstructions,
		core,
		prepared.CleanupInstructions,
	)

	c.logger.Debug().
		Stringer("position", pc.Position).
		Msg("assembled position harvest")

	return &HarvestPositionResult{
		Builder:           builder,
		Instructions:      instructions,
		FeesQuote:         feesQuote,
		RewardsQuote:      rewardsQuote,
		AdditionalSigners: prepared.AdditionalSigners,
	}, nil
}
