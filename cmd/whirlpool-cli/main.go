package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/krazyTry/whirlpool-go/whirlpool"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOpts struct {
	rpcURL     string
	configPath string
	logLevel   string
	timeoutSec int
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:   "whirlpool-cli",
		Short: "Assemble and print unsigned whirlpool transaction batches",
	}

	root.PersistentFlags().StringVar(&opts.rpcURL, "rpc-url", rpc.MainNetBeta_RPC, "RPC endpoint")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a JSON client config")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	root.PersistentFlags().IntVar(&opts.timeoutSec, "timeout-sec", 20, "RPC timeout seconds")

	root.AddCommand(
		newPoolCmd(opts),
		newPositionCmd(opts),
	)

	return root
}

type runtimeDeps struct {
	rpcClient *rpc.Client
	engine    *whirlpool.Client
	funder    solana.PublicKey
	timeout   time.Duration
}

// newEngine wires a whirlpool client from flags plus the optional JSON
// config file. Config file fields: funder, whirlpools_config, slippage_bps,
// wrapping (none|ata|keypair|seed).
func newEngine(cmd *cobra.Command, opts *globalOpts) (*runtimeDeps, error) {
	cfg := whirlpool.ClientConfig{}

	if opts.configPath != "" {
		raw, err := os.ReadFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if funder := gjson.GetBytes(raw, "funder").String(); funder != "" {
			if cfg.Funder, err = solana.PublicKeyFromBase58(funder); err != nil {
				return nil, fmt.Errorf("config funder: %w", err)
			}
		}
		if wc := gjson.GetBytes(raw, "whirlpools_config").String(); wc != "" {
			if cfg.WhirlpoolsConfig, err = solana.PublicKeyFromBase58(wc); err != nil {
				return nil, fmt.Errorf("config whirlpools_config: %w", err)
			}
		}
		cfg.SlippageBps = uint16(gjson.GetBytes(raw, "slippage_bps").Uint())
		if cfg.Wrapping, err = parseWrapping(gjson.GetBytes(raw, "wrapping").String()); err != nil {
			return nil, err
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(parseLogLevel(opts.logLevel)).
		With().Timestamp().Logger()

	rpcClient := rpc.New(opts.rpcURL)
	engine, err := whirlpool.NewClient(rpcClient, rpc.CommitmentFinalized, cfg, whirlpool.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}

	return &runtimeDeps{
		rpcClient: rpcClient,
		engine:    engine,
		funder:    cfg.Funder,
		timeout:   time.Duration(opts.timeoutSec) * time.Second,
	}, nil
}

func contextWithTimeout(cmd *cobra.Command, deps *runtimeDeps) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), deps.timeout)
}

func parseWrapping(s string) (whirlpool.WrappingStrategy, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return whirlpool.WrappingNone, nil
	case "ata":
		return whirlpool.WrappingAta, nil
	case "keypair":
		return whirlpool.WrappingKeypair, nil
	case "seed":
		return whirlpool.WrappingSeed, nil
	default:
		return whirlpool.WrappingNone, fmt.Errorf("unknown wrapping strategy %q", s)
	}
}

func parseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func parsePubkey(name, s string) (solana.PublicKey, error) {
	pub, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s: %w", name, err)
	}
	return pub, nil
}
