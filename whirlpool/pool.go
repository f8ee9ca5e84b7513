package whirlpool

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
	"github.com/krazyTry/whirlpool-go/whirlpool/math"
)

// IsPoolExist checks whether a pool account exists.
func (c *Client) IsPoolExist(ctx context.Context, pool solanago.PublicKey) (bool, error) {
	acc, err := c.Reader.GetAccountInfoWithOpts(ctx, pool, &rpc.GetAccountInfoOpts{Commitment: c.Commitment})
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return acc != nil && acc.Value != nil, nil
}

// FetchPool describes the pool for a mint pair and tick spacing. When the
// pool is not initialized yet, the result is synthesized from the config
// and fee tier so callers can still quote and create it.
func (c *Client) FetchPool(ctx context.Context, mint1, mint2 solanago.PublicKey, tickSpacing uint16) (*PoolInfo, error) {
	mintA, mintB := OrderMints(mint1, mint2)
	pool, err := DeriveWhirlpoolAddress(c.Config.WhirlpoolsConfig, mintA, mintB, tickSpacing)
	if err != nil {
		return nil, err
	}
	feeTier, err := DeriveFeeTierAddress(c.Config.WhirlpoolsConfig, tickSpacing)
	if err != nil {
		return nil, err
	}

	raw, err := c.GetMultipleAccountsRaw(ctx, []solanago.PublicKey{pool, c.Config.WhirlpoolsConfig, feeTier, mintA, mintB})
	if err != nil {
		return nil, err
	}
	poolData, configData, feeTierData := raw[0], raw[1], raw[2]
	mintAData, mintBData := raw[3], raw[4]
	if mintAData == nil || mintBData == nil {
		return nil, fmt.Errorf("mint account: %w", ErrAccountNotFound)
	}
	decimalsA, decimalsB, err := pairDecimals(mintAData, mintBData)
	if err != nil {
		return nil, err
	}

	if poolData != nil {
		state, err := decodeAccount[WhirlpoolState](poolData, "whirlpool", pool)
		if err != nil {
			return nil, err
		}
		return &PoolInfo{
			Address:          pool,
			Initialized:      true,
			State:            state,
			WhirlpoolsConfig: state.WhirlpoolsConfig,
			TickSpacing:      state.TickSpacing,
			FeeRate:          state.FeeRate,
			ProtocolFeeRate:  state.ProtocolFeeRate,
			TokenMintA:       state.TokenMintA,
			TokenMintB:       state.TokenMintB,
			Price:            math.SqrtPriceToPrice(state.SqrtPrice.BigInt(), decimalsA, decimalsB),
		}, nil
	}

	if configData == nil {
		return nil, fmt.Errorf("whirlpools config %s: %w", c.Config.WhirlpoolsConfig, ErrAccountNotFound)
	}
	if feeTierData == nil {
		return nil, fmt.Errorf("fee tier %s: %w", feeTier, ErrAccountNotFound)
	}
	config, err := decodeAccount[ConfigState](configData, "whirlpools config", c.Config.WhirlpoolsConfig)
	if err != nil {
		return nil, err
	}
	tier, err := decodeAccount[FeeTierState](feeTierData, "fee tier", feeTier)
	if err != nil {
		return nil, err
	}

	return &PoolInfo{
		Address:          pool,
		Initialized:      false,
		WhirlpoolsConfig: c.Config.WhirlpoolsConfig,
		TickSpacing:      tickSpacing,
		FeeRate:          tier.DefaultFeeRate,
		ProtocolFeeRate:  config.DefaultProtocolFeeRate,
		TokenMintA:       mintA,
		TokenMintB:       mintB,
	}, nil
}

// FetchSplashPool is FetchPool for the full-range-only tick spacing.
func (c *Client) FetchSplashPool(ctx context.Context, mint1, mint2 solanago.PublicKey) (*PoolInfo, error) {
	return c.FetchPool(ctx, mint1, mint2, SplashPoolTickSpacing)
}

// FetchPoolsForPair describes the pools of every registered fee tier for
// a mint pair, initialized or not.
func (c *Client) FetchPoolsForPair(ctx context.Context, mint1, mint2 solanago.PublicKey) ([]*PoolInfo, error) {
	mintA, mintB := OrderMints(mint1, mint2)
	tiers, err := c.GetAllFeeTiers(ctx)
	if err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		return nil, nil
	}

	addresses := make([]solanago.PublicKey, 0, len(tiers)+3)
	for _, tier := range tiers {
		pool, err := DeriveWhirlpoolAddress(c.Config.WhirlpoolsConfig, mintA, mintB, tier.Account.TickSpacing)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, pool)
	}
	addresses = append(addresses, c.Config.WhirlpoolsConfig, mintA, mintB)

	raw, err := c.GetMultipleAccountsRaw(ctx, addresses)
	if err != nil {
		return nil, err
	}
	configData := raw[len(tiers)]
	if configData == nil {
		return nil, fmt.Errorf("whirlpools config %s: %w", c.Config.WhirlpoolsConfig, ErrAccountNotFound)
	}
	config, err := decodeAccount[ConfigState](configData, "whirlpools config", c.Config.WhirlpoolsConfig)
	if err != nil {
		return nil, err
	}
	if raw[len(tiers)+1] == nil || raw[len(tiers)+2] == nil {
		return nil, fmt.Errorf("mint account: %w", ErrAccountNotFound)
	}
	decimalsA, decimalsB, err := pairDecimals(raw[len(tiers)+1], raw[len(tiers)+2])
	if err != nil {
		return nil, err
	}

	out := make([]*PoolInfo, 0, len(tiers))
	for i, tier := range tiers {
		info := &PoolInfo{
			Address:          addresses[i],
			WhirlpoolsConfig: c.Config.WhirlpoolsConfig,
			TickSpacing:      tier.Account.TickSpacing,
			FeeRate:          tier.Account.DefaultFeeRate,
			ProtocolFeeRate:  config.DefaultProtocolFeeRate,
			TokenMintA:       mintA,
			TokenMintB:       mintB,
		}
		if raw[i] != nil {
			state, err := decodeAccount[WhirlpoolState](raw[i], "whirlpool", addresses[i])
			if err != nil {
				return nil, err
			}
			info.Initialized = true
			info.State = state
			info.FeeRate = state.FeeRate
			info.ProtocolFeeRate = state.ProtocolFeeRate
			info.Price = math.SqrtPriceToPrice(state.SqrtPrice.BigInt(), decimalsA, decimalsB)
		}
		out = append(out, info)
	}
	return out, nil
}

func pairDecimals(mintAData, mintBData []byte) (uint8, uint8, error) {
	decA, err := helpers.MintDecimals(mintAData)
	if err != nil {
		return 0, 0, err
	}
	decB, err := helpers.MintDecimals(mintBData)
	if err != nil {
		return 0, 0, err
	}
	return decA, decB, nil
}
