package whirlpoolgo

import (
	"github.com/krazyTry/whirlpool-go/whirlpool"
)

// NewWhirlpoolClient creates a new whirlpool instruction client.
//
// Example:
//
// client, err := NewWhirlpoolClient(rpcClient, rpc.CommitmentFinalized, whirlpool.ClientConfig{Funder: funder, WhirlpoolsConfig: config})
//
// client.FetchPool(ctx, mintA, mintB, 64)
//
// client.IncreaseLiquidity(ctx, whirlpool.IncreaseLiquidityParams{PositionMint: mint, TokenA: amount})
var NewWhirlpoolClient = whirlpool.NewClient
