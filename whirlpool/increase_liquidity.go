package whirlpool

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
	"github.com/krazyTry/whirlpool-go/whirlpool/math"
	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

// positionContext bundles everything the position pipelines need to
// assemble an instruction batch.
type positionContext struct {
	Position             solanago.PublicKey
	PositionState        *PositionState
	Pool                 solanago.PublicKey
	PoolState            *WhirlpoolState
	PositionTokenAccount solanago.PublicKey
	PositionTokenProgram solanago.PublicKey
	TokenInfoA           *helpers.TokenInfo
	TokenInfoB           *helpers.TokenInfo
	TokenProgramA        solanago.PublicKey
	TokenProgramB        solanago.PublicKey
	TickArrayLower       solanago.PublicKey
	TickArrayUpper       solanago.PublicKey
}

func (c *Client) fetchPositionContext(ctx context.Context, positionMint, authority solanago.PublicKey) (*positionContext, error) {
	position, err := DerivePositionAddress(positionMint)
	if err != nil {
		return nil, err
	}
	positionState, err := c.FetchPositionState(ctx, position)
	if err != nil {
		return nil, err
	}
	poolState, err := c.FetchWhirlpoolState(ctx, positionState.Whirlpool)
	if err != nil {
		return nil, err
	}

	infos, err := helpers.GetMultipleTokenInfo(ctx, c.Reader, []solanago.PublicKey{
		poolState.TokenMintA, poolState.TokenMintB, positionMint,
	}, c.Commitment)
	if err != nil {
		return nil, err
	}
	positionTokenProgram := helpers.TokenProgramForOwner(infos[2].Owner)
	positionTokenAccount, err := helpers.FindAssociatedTokenAddress(authority, positionMint, positionTokenProgram)
	if err != nil {
		return nil, err
	}

	lowerStart := math.GetTickArrayStartTickIndex(positionState.TickLowerIndex, poolState.TickSpacing)
	upperStart := math.GetTickArrayStartTickIndex(positionState.TickUpperIndex, poolState.TickSpacing)
	tickArrayLower, err := DeriveTickArrayAddress(positionState.Whirlpool, lowerStart)
	if err != nil {
		return nil, err
	}
	tickArrayUpper, err := DeriveTickArrayAddress(positionState.Whirlpool, upperStart)
	if err != nil {
		return nil, err
	}

	return &positionContext{
		Position:             position,
		PositionState:        positionState,
		Pool:                 positionState.Whirlpool,
		PoolState:            poolState,
		PositionTokenAccount: positionTokenAccount,
		PositionTokenProgram: positionTokenProgram,
		TokenInfoA:           infos[0],
		TokenInfoB:           infos[1],
		TokenProgramA:        helpers.TokenProgramForOwner(infos[0].Owner),
		TokenProgramB:        helpers.TokenProgramForOwner(infos[1].Owner),
		TickArrayLower:       tickArrayLower,
		TickArrayUpper:       tickArrayUpper,
	}, nil
}

func (pc *positionContext) liquidityAccounts(authority, tokenAccountA, tokenAccountB solanago.PublicKey) whirlpoolgen.LiquidityV2Accounts {
	return whirlpoolgen.LiquidityV2Accounts{
		Whirlpool:          pc.Pool,
		TokenProgramA:      pc.TokenProgramA,
		TokenProgramB:      pc.TokenProgramB,
		PositionAuthority:  authority,
		Position:           pc.Position,
		PositionTokenAcct:  pc.PositionTokenAccount,
		TokenMintA:         pc.PoolState.TokenMintA,
		TokenMintB:         pc.PoolState.TokenMintB,
		TokenOwnerAccountA: tokenAccountA,
		TokenOwnerAccountB: tokenAccountB,
		TokenVaultA:        pc.PoolState.TokenVaultA,
		TokenVaultB:        pc.PoolState.TokenVaultB,
		TickArrayLower:     pc.TickArrayLower,
		TickArrayUpper:     pc.TickArrayUpper,
	}
}

// IncreaseLiquidity builds a transaction depositing into an existing
// position. Exactly one of Liquidity, TokenA, TokenB selects the quote.
func (c *Client) IncreaseLiquidity(ctx context.Context, params IncreaseLiquidityParams) (*IncreaseLiquidityResult, error) {
	authority := c.funder(params.Authority)
	if authority.IsZero() {
		return nil, fmt.Errorf("authority: %w", ErrZeroAddress)
	}
	pc, err := c.fetchPositionContext(ctx, params.PositionMint, authority)
	if err != nil {
		return nil, err
	}

	slippage := c.slippageBps(params.SlippageBps)
	quote, err := c.quoteIncrease(params, slippage, pc)
	if err != nil {
		return nil, err
	}

	prepared, err := c.PrepareTokenAccounts(ctx, authority, []TokenAccountSpec{
		WithBalance(pc.PoolState.TokenMintA, quote.TokenMaxA),
		WithBalance(pc.PoolState.TokenMintB, quote.TokenMaxB),
	})
	if err != nil {
		return nil, err
	}

	ix, err := whirlpoolgen.NewIncreaseLiquidityV2Instruction(
		whirlpoolgen.IncreaseLiquidityV2Args{
			LiquidityAmount: math.U128FromBig(quote.LiquidityDelta),
			TokenMaxA:       quote.TokenMaxA.Uint64(),
			TokenMaxB:       quote.TokenMaxB.Uint64(),
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
		Msg("assembled liquidity increase")

	return &IncreaseLiquidityResult{
		Builder:           builder,
		Instructions:      instructions,
		Quote:             quote,
		AdditionalSigners: prepared.AdditionalSigners,
	}, nil
}

func (c *Client) quoteIncrease(params IncreaseLiquidityParams, slippage uint16, pc *positionContext) (shared.IncreaseLiquidityQuote, error) {
	sqrtPrice := pc.PoolState.SqrtPrice.BigInt()
	lower := pc.PositionState.TickLowerIndex
	upper := pc.PositionState.TickUpperIndex
	switch {
	case params.Liquidity != nil && params.TokenA == nil && params.TokenB == nil:
		return math.IncreaseLiquidityQuoteByLiquidity(params.Liquidity, slippage, sqrtPrice, lower, upper, pc.TokenInfoA, pc.TokenInfoB)
	case params.TokenA != nil && params.Liquidity == nil && params.TokenB == nil:
		return math.IncreaseLiquidityQuoteByToken(params.TokenA, true, slippage, sqrtPrice, lower, upper, pc.TokenInfoA, pc.TokenInfoB)
	case params.TokenB != nil && params.Liquidity == nil && params.TokenA == nil:
		return math.IncreaseLiquidityQuoteByToken(params.TokenB, false, slippage, sqrtPrice, lower, upper, pc.TokenInfoA, pc.TokenInfoB)
	default:
		return shared.IncreaseLiquidityQuote{}, errors.New("exactly one of Liquidity, TokenA, TokenB must be set")
	}
}
