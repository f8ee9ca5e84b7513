package whirlpool

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
	"github.com/krazyTry/whirlpool-go/whirlpool/math"
)

// CreatePool builds a transaction that initializes a concentrated pool
// at the given price, plus the tick arrays a first position is likely to
// need. The token vault keypairs come back as additional signers.
func (c *Client) CreatePool(ctx context.Context, params CreatePoolParams) (*CreatePoolResult, error) {
	funder := c.funder(params.Funder)
	if funder.IsZero() {
		return nil, fmt.Errorf("funder: %w", ErrZeroAddress)
	}
	// mints are never swapped silently; a reversed pair would derive a
	// different pool than the caller expects
	if !MintsInCanonicalOrder(params.TokenMintA, params.TokenMintB) {
		return nil, ErrMintOrder
	}

	infos, err := helpers.GetMultipleTokenInfo(ctx, c.Reader, []solanago.PublicKey{params.TokenMintA, params.TokenMintB}, c.Commitment)
	if err != nil {
		return nil, err
	}
	tokenProgramA := helpers.TokenProgramForOwner(infos[0].Owner)
	tokenProgramB := helpers.TokenProgramForOwner(infos[1].Owner)

	initialSqrtPrice, err := math.PriceToSqrtPrice(params.InitialPrice, infos[0].Decimals, infos[1].Decimals)
	if err != nil {
		return nil, err
	}
	currentTick, err := math.SqrtPriceToTickIndex(initialSqrtPrice)
	if err != nil {
		return nil, err
	}

	pool, err := DeriveWhirlpoolAddress(c.Config.WhirlpoolsConfig, params.TokenMintA, params.TokenMintB, params.TickSpacing)
	if err != nil {
		return nil, err
	}
	exists, err := c.IsPoolExist(ctx, pool)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("whirlpool %s: %w", pool, ErrPoolAlreadyExists)
	}

	feeTier, err := DeriveFeeTierAddress(c.Config.WhirlpoolsConfig, params.TickSpacing)
	if err != nil {
		return nil, err
	}
	badgeA, err := DeriveTokenBadgeAddress(c.ConfigExtension, params.TokenMintA)
	if err != nil {
		return nil, err
	}
	badgeB, err := DeriveTokenBadgeAddress(c.ConfigExtension, params.TokenMintB)
	if err != nil {
		return nil, err
	}

	vaultA := solanago.NewWallet()
	vaultB := solanago.NewWallet()

	initIx, err := whirlpoolgen.NewInitializePoolV2Instruction(
		whirlpoolgen.InitializePoolV2Args{
			TickSpacing:      params.TickSpacing,
			InitialSqrtPrice: math.U128FromBig(initialSqrtPrice),
		},
		c.Config.WhirlpoolsConfig,
		params.TokenMintA,
		params.TokenMintB,
		badgeA,
		badgeB,
		funder,
		pool,
		vaultA.PublicKey(),
		vaultB.PublicKey(),
		feeTier,
		tokenProgramA,
		tokenProgramB,
	)
	if err != nil {
		return nil, err
	}

	instructions := []solanago.Instruction{initIx}

	starts := initialTickArrayStarts(currentTick, params.TickSpacing)
	for _, start := range starts {
		tickArray, err := DeriveTickArrayAddress(pool, start)
		if err != nil {
			return nil, err
		}
		arrayIx, err := whirlpoolgen.NewInitializeTickArrayInstruction(
			whirlpoolgen.InitializeTickArrayArgs{StartTickIndex: start},
			pool,
			funder,
			tickArray,
		)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, arrayIx)
	}

	builder, instructions := assembleTransaction(instructions)

	cost, err := c.poolInitializationCost(ctx, len(starts))
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Stringer("pool", pool).
		Uint16("tick_spacing", params.TickSpacing).
		Int("tick_arrays", len(starts)).
		Uint64("rent_lamports", cost).
		Msg("assembled pool initialization")

	return &CreatePoolResult{
		Pool:               builder,
		Instructions:       instructions,
		Address:            pool,
		InitializationCost: cost,
		AdditionalSigners:  []solanago.PrivateKey{vaultA.PrivateKey, vaultB.PrivateKey},
	}, nil
}

// CreateSplashPool initializes a full-range-only pool for a mint pair.
func (c *Client) CreateSplashPool(ctx context.Context, params CreatePoolParams) (*CreatePoolResult, error) {
	params.TickSpacing = SplashPoolTickSpacing
	return c.CreatePool(ctx, params)
}

// initialTickArrayStarts covers both full-range boundaries and the array
// holding the starting price, deduplicated.
func initialTickArrayStarts(currentTick int32, tickSpacing uint16) []int32 {
	lowerFull, upperFull := math.GetFullRangeTickIndexes(tickSpacing)
	candidates := []int32{
		math.GetTickArrayStartTickIndex(lowerFull, tickSpacing),
		math.GetTickArrayStartTickIndex(upperFull, tickSpacing),
		math.GetTickArrayStartTickIndex(currentTick, tickSpacing),
	}
	seen := make(map[int32]struct{}, len(candidates))
	out := make([]int32, 0, len(candidates))
	for _, start := range candidates {
		if _, ok := seen[start]; ok {
			continue
		}
		seen[start] = struct{}{}
		out = append(out, start)
	}
	return out
}

func (c *Client) poolInitializationCost(ctx context.Context, tickArrays int) (uint64, error) {
	poolRent, err := c.Reader.GetMinimumBalanceForRentExemption(ctx, whirlpoolgen.WhirlpoolLen, rpc.CommitmentFinalized)
	if err != nil {
		return 0, err
	}
	vaultRent, err := c.Reader.GetMinimumBalanceForRentExemption(ctx, whirlpoolgen.TokenAccountLen, rpc.CommitmentFinalized)
	if err != nil {
		return 0, err
	}
	arrayRent, err := c.Reader.GetMinimumBalanceForRentExemption(ctx, whirlpoolgen.TickArrayLen, rpc.CommitmentFinalized)
	if err != nil {
		return 0, err
	}
	return poolRent + 2*vaultRent + uint64(tickArrays)*arrayRent, nil
}
