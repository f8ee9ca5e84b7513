package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/krazyTry/whirlpool-go/whirlpool"
	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

func newPositionCmd(opts *globalOpts) *cobra.Command {
	position := &cobra.Command{
		Use:   "position",
		Short: "Assemble unsigned position liquidity batches",
	}
	position.AddCommand(
		newPositionIncreaseCmd(opts),
		newPositionDecreaseCmd(opts),
		newPositionCloseCmd(opts),
		newPositionHarvestCmd(opts),
	)
	return position
}

type liquidityFlags struct {
	liquidity   string
	tokenA      string
	tokenB      string
	slippageBps uint16
}

func (f *liquidityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.liquidity, "liquidity", "", "liquidity delta")
	cmd.Flags().StringVar(&f.tokenA, "token-a", "", "token A amount")
	cmd.Flags().StringVar(&f.tokenB, "token-b", "", "token B amount")
	cmd.Flags().Uint16Var(&f.slippageBps, "slippage-bps", 0, "slippage override in bps")
}

func (f *liquidityFlags) amounts() (liquidity, tokenA, tokenB *big.Int, slippage *uint16, err error) {
	parse := func(name, s string) (*big.Int, error) {
		if s == "" {
			return nil, nil
		}
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%s: invalid amount %q", name, s)
		}
		return v, nil
	}
	if liquidity, err = parse("liquidity", f.liquidity); err != nil {
		return
	}
	if tokenA, err = parse("token-a", f.tokenA); err != nil {
		return
	}
	if tokenB, err = parse("token-b", f.tokenB); err != nil {
		return
	}
	if f.slippageBps > 0 {
		slippage = &f.slippageBps
	}
	return
}

func newPositionIncreaseCmd(opts *globalOpts) *cobra.Command {
	flags := &liquidityFlags{}
	cmd := &cobra.Command{
		Use:   "increase [position-mint]",
		Short: "Add liquidity to an existing position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parsePubkey("position-mint", args[0])
			if err != nil {
				return err
			}
			liquidity, tokenA, tokenB, slippage, err := flags.amounts()
			if err != nil {
				return err
			}

			deps, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, deps)
			defer cancel()

			result, err := deps.engine.IncreaseLiquidity(ctx, whirlpool.IncreaseLiquidityParams{
				PositionMint: mint,
				Liquidity:    liquidity,
				TokenA:       tokenA,
				TokenB:       tokenB,
				SlippageBps:  slippage,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "liquidity=%s est_a=%s est_b=%s max_a=%s max_b=%s\n",
				result.Quote.LiquidityDelta, result.Quote.TokenEstA, result.Quote.TokenEstB,
				result.Quote.TokenMaxA, result.Quote.TokenMaxB)
			return printUnsigned(ctx, cmd, deps, result.Instructions, result.AdditionalSigners)
		},
	}
	flags.register(cmd)
	return cmd
}

func newPositionDecreaseCmd(opts *globalOpts) *cobra.Command {
	flags := &liquidityFlags{}
	cmd := &cobra.Command{
		Use:   "decrease [position-mint]",
		Short: "Withdraw liquidity from a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parsePubkey("position-mint", args[0])
			if err != nil {
				return err
			}
			liquidity, tokenA, tokenB, slippage, err := flags.amounts()
			if err != nil {
				return err
			}

			deps, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, deps)
			defer cancel()

			result, err := deps.engine.DecreaseLiquidity(ctx, whirlpool.DecreaseLiquidityParams{
				PositionMint: mint,
				Liquidity:    liquidity,
				TokenA:       tokenA,
				TokenB:       tokenB,
				SlippageBps:  slippage,
			})
			if err != nil {
				return err
			}

			printDecreaseQuote(cmd, result.Quote)
			return printUnsigned(ctx, cmd, deps, result.Instructions, result.AdditionalSigners)
		},
	}
	flags.register(cmd)
	return cmd
}

func newPositionCloseCmd(opts *globalOpts) *cobra.Command {
	var slippageBps uint16
	cmd := &cobra.Command{
		Use:   "close [position-mint]",
		Short: "Empty a position, collect fees and rewards, close its accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parsePubkey("position-mint", args[0])
			if err != nil {
				return err
			}

			deps, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, deps)
			defer cancel()

			params := whirlpool.ClosePositionParams{PositionMint: mint}
			if slippageBps > 0 {
				params.SlippageBps = &slippageBps
			}
			result, err := deps.engine.ClosePosition(ctx, params)
			if err != nil {
				return err
			}

			printDecreaseQuote(cmd, result.Quote)
			printOwed(cmd, result.FeesQuote, result.RewardsQuote)
			return printUnsigned(ctx, cmd, deps, result.Instructions, result.AdditionalSigners)
		},
	}
	cmd.Flags().Uint16Var(&slippageBps, "slippage-bps", 0, "slippage override in bps")
	return cmd
}

func newPositionHarvestCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "harvest [position-mint]",
		Short: "Collect owed fees and rewards without touching liquidity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parsePubkey("position-mint", args[0])
			if err != nil {
				return err
			}

			deps, err := newEngine(cmd, opts)
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, deps)
			defer cancel()

			result, err := deps.engine.HarvestPosition(ctx, whirlpool.HarvestPositionParams{PositionMint: mint})
			if err != nil {
				return err
			}

			printOwed(cmd, result.FeesQuote, result.RewardsQuote)
			return printUnsigned(ctx, cmd, deps, result.Instructions, result.AdditionalSigners)
		},
	}
}

func printDecreaseQuote(cmd *cobra.Command, quote shared.DecreaseLiquidityQuote) {
	fmt.Fprintf(cmd.OutOrStdout(), "liquidity=%s est_a=%s est_b=%s min_a=%s min_b=%s\n",
		quote.LiquidityDelta, quote.TokenEstA, quote.TokenEstB, quote.TokenMinA, quote.TokenMinB)
}

func printOwed(cmd *cobra.Command, fees shared.CollectFeesQuote, rewards shared.CollectRewardsQuote) {
	fmt.Fprintf(cmd.OutOrStdout(), "fees_owed_a=%s fees_owed_b=%s\n", fees.FeeOwedA, fees.FeeOwedB)
	for i, owed := range rewards.RewardsOwed {
		if owed != nil && owed.Sign() > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "reward_%d_owed=%s\n", i, owed)
		}
	}
}
