package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	soltx "github.com/krazyTry/whirlpool-go/solana"
	"github.com/krazyTry/whirlpool-go/whirlpool"
)

func newPoolCmd(opts *globalOpts) *cobra.Command {
	pool := &cobra.Command{
		Use:   "pool",
		Short: "Inspect and initialize whirlpools",
	}
	pool.AddCommand(
		newPoolFetchCmd(opts),
		newPoolListCmd(opts),
		newPoolCreateCmd(opts),
	)
	return pool
}

func newPoolFetchCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [mintA] [mintB] [tick-spacing]",
		Short: "Fetch one pool for a mint pair and tick spacing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mintA, err := parsePubkey("mintA", args[0])
			if err != nil {
				return err
			}
			mintB, err := parsePubkey("mintB", args[1])
			if err != nil {
				return err
			}
			spacing, err := strconv.ParseUint(args[2], 10, 16)
			if err != nil {
				return fmt.Errorf("tick-spacing: %w", err)
			}

			deps, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, deps)
			defer cancel()

			info, err := deps.engine.FetchPool(ctx, mintA, mintB, uint16(spacing))
			if err != nil {
				return err
			}
			printPoolInfo(cmd, info)
			return nil
		},
	}
}

func newPoolListCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list [mintA] [mintB]",
		Short: "List pools for a mint pair across all fee tiers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mintA, err := parsePubkey("mintA", args[0])
			if err != nil {
				return err
			}
			mintB, err := parsePubkey("mintB", args[1])
			if err != nil {
				return err
			}

			deps, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, deps)
			defer cancel()

			infos, err := deps.engine.FetchPoolsForPair(ctx, mintA, mintB)
			if err != nil {
				return err
			}
			for _, info := range infos {
				printPoolInfo(cmd, info)
			}
			return nil
		},
	}
}

func newPoolCreateCmd(opts *globalOpts) *cobra.Command {
	var splash bool

	cmd := &cobra.Command{
		Use:   "create [mintA] [mintB] [tick-spacing] [initial-price]",
		Short: "Assemble an unsigned pool initialization batch",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			mintA, err := parsePubkey("mintA", args[0])
			if err != nil {
				return err
			}
			mintB, err := parsePubkey("mintB", args[1])
			if err != nil {
				return err
			}

			params := whirlpool.CreatePoolParams{
				TokenMintA: mintA,
				TokenMintB: mintB,
			}
			priceArg := args[2]
			if !splash {
				spacing, err := strconv.ParseUint(args[2], 10, 16)
				if err != nil {
					return fmt.Errorf("tick-spacing: %w", err)
				}
				if len(args) < 4 {
					return fmt.Errorf("initial-price is required")
				}
				params.TickSpacing = uint16(spacing)
				priceArg = args[3]
			}
			if params.InitialPrice, err = decimal.NewFromString(priceArg); err != nil {
				return fmt.Errorf("initial-price: %w", err)
			}

			deps, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, deps)
			defer cancel()

			var result *whirlpool.CreatePoolResult
			if splash {
				result, err = deps.engine.CreateSplashPool(ctx, params)
			} else {
				result, err = deps.engine.CreatePool(ctx, params)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pool=%s rent_lamports=%d\n", result.Address, result.InitializationCost)
			return printUnsigned(ctx, cmd, deps, result.Instructions, result.AdditionalSigners)
		},
	}

	cmd.Flags().BoolVar(&splash, "splash", false, "create a full-range-only splash pool (tick-spacing is implied)")
	return cmd
}

func printPoolInfo(cmd *cobra.Command, info *whirlpool.PoolInfo) {
	state := "uninitialized"
	if info.Initialized {
		state = "initialized"
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"pool=%s %s spacing=%d fee_rate=%d protocol_fee_rate=%d mint_a=%s mint_b=%s price=%s\n",
		info.Address, state, info.TickSpacing, info.FeeRate, info.ProtocolFeeRate,
		info.TokenMintA, info.TokenMintB, info.Price)
}

// printUnsigned stamps the batch with a fresh blockhash and prints the
// unsigned transaction together with the signers it still needs.
func printUnsigned(ctx context.Context, cmd *cobra.Command, deps *runtimeDeps, instructions []solana.Instruction, extraSigners []solana.PrivateKey) error {
	tx, err := soltx.BuildTransaction(ctx, deps.rpcClient, deps.funder, instructions)
	if err != nil {
		return err
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return err
	}
	for _, signer := range extraSigners {
		fmt.Fprintf(cmd.OutOrStdout(), "required_signer=%s\n", signer.PublicKey())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "unsigned_tx=%s\n", base64.StdEncoding.EncodeToString(raw))
	return nil
}
