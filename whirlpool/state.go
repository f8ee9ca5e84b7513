package whirlpool

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
)

func (c *Client) fetchAccount(ctx context.Context, address solanago.PublicKey) ([]byte, error) {
	acc, err := c.Reader.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{Commitment: c.Commitment})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("account %s: %w", address, ErrAccountNotFound)
	}
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Value == nil {
		return nil, fmt.Errorf("account %s: %w", address, ErrAccountNotFound)
	}
	return acc.Value.Data.GetBinary(), nil
}

func decodeAccount[T any](data []byte, kind string, address solanago.PublicKey) (*T, error) {
	parsed, err := whirlpoolgen.ParseAnyAccount(data)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %v: %w", kind, address, err, ErrInvalidAccountData)
	}
	state, ok := parsed.(*T)
	if !ok {
		return nil, fmt.Errorf("%s %s: wrong account type: %w", kind, address, ErrInvalidAccountData)
	}
	return state, nil
}

// FetchWhirlpoolState fetches and decodes a pool account.
func (c *Client) FetchWhirlpoolState(ctx context.Context, pool solanago.PublicKey) (*WhirlpoolState, error) {
	data, err := c.fetchAccount(ctx, pool)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, fmt.Errorf("whirlpool %s: %w", pool, ErrPoolNotFound)
		}
		return nil, err
	}
	return decodeAccount[WhirlpoolState](data, "whirlpool", pool)
}

// FetchPositionState fetches and decodes a position account.
func (c *Client) FetchPositionState(ctx context.Context, position solanago.PublicKey) (*PositionState, error) {
	data, err := c.fetchAccount(ctx, position)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, fmt.Errorf("position %s: %w", position, ErrPositionNotFound)
		}
		return nil, err
	}
	return decodeAccount[PositionState](data, "position", position)
}

// FetchConfigState fetches and decodes the whirlpools config account.
func (c *Client) FetchConfigState(ctx context.Context, config solanago.PublicKey) (*ConfigState, error) {
	data, err := c.fetchAccount(ctx, config)
	if err != nil {
		return nil, err
	}
	return decodeAccount[ConfigState](data, "whirlpools config", config)
}

// FetchFeeTierState fetches and decodes a fee tier account.
func (c *Client) FetchFeeTierState(ctx context.Context, feeTier solanago.PublicKey) (*FeeTierState, error) {
	data, err := c.fetchAccount(ctx, feeTier)
	if err != nil {
		return nil, err
	}
	return decodeAccount[FeeTierState](data, "fee tier", feeTier)
}

// FetchTickArrayState fetches and decodes a tick array account.
func (c *Client) FetchTickArrayState(ctx context.Context, tickArray solanago.PublicKey) (*TickArrayState, error) {
	data, err := c.fetchAccount(ctx, tickArray)
	if err != nil {
		return nil, err
	}
	return decodeAccount[TickArrayState](data, "tick array", tickArray)
}

// GetMultipleAccountsRaw fetches several accounts in one call; missing
// accounts come back as nil entries.
func (c *Client) GetMultipleAccountsRaw(ctx context.Context, addresses []solanago.PublicKey) ([][]byte, error) {
	resp, err := c.Reader.GetMultipleAccountsWithOpts(ctx, addresses, &rpc.GetMultipleAccountsOpts{Commitment: c.Commitment})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Value) != len(addresses) {
		return nil, fmt.Errorf("unexpected account count: got %d want %d", len(resp.Value), len(addresses))
	}
	out := make([][]byte, len(addresses))
	for i, acc := range resp.Value {
		if acc != nil {
			out[i] = acc.Data.GetBinary()
		}
	}
	return out, nil
}

// GetAllFeeTiers scans every fee tier registered under the configured
// whirlpools config.
func (c *Client) GetAllFeeTiers(ctx context.Context) ([]AccountWithFeeTier, error) {
	filters := helpers.CreateProgramAccountFilter(AccountKeyFeeTier, helpers.Filter{
		Key:    c.Config.WhirlpoolsConfig,
		Offset: helpers.ComputeStructOffset(new(FeeTierState), "WhirlpoolsConfig"),
	})
	accs, err := c.Reader.GetProgramAccountsWithOpts(ctx, whirlpoolgen.ProgramID, &rpc.GetProgramAccountsOpts{Commitment: c.Commitment, Filters: filters})
	if err != nil {
		return nil, err
	}
	out := []AccountWithFeeTier{}
	for _, acc := range accs {
		parsed, err := whirlpoolgen.ParseAnyAccount(acc.Account.Data.GetBinary())
		if err != nil {
			continue
		}
		if tier, ok := parsed.(*FeeTierState); ok {
			out = append(out, AccountWithFeeTier{PublicKey: acc.Pubkey, Account: tier})
		}
	}
	return out, nil
}

// GetAllPositionsByPool scans the positions opened on one pool.
func (c *Client) GetAllPositionsByPool(ctx context.Context, pool solanago.PublicKey) ([]AccountWithPosition, error) {
	filters := helpers.CreateProgramAccountFilter(AccountKeyPosition, helpers.Filter{
		Key:    pool,
		Offset: helpers.ComputeStructOffset(new(PositionState), "Whirlpool"),
	})
	accs, err := c.Reader.GetProgramAccountsWithOpts(ctx, whirlpoolgen.ProgramID, &rpc.GetProgramAccountsOpts{Commitment: c.Commitment, Filters: filters})
	if err != nil {
		return nil, err
	}
	out := []AccountWithPosition{}
	for _, acc := range accs {
		parsed, err := whirlpoolgen.ParseAnyAccount(acc.Account.Data.GetBinary())
		if err != nil {
			continue
		}
		if pos, ok := parsed.(*PositionState); ok {
			out = append(out, AccountWithPosition{PublicKey: acc.Pubkey, Account: pos})
		}
	}
	return out, nil
}
