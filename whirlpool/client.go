package whirlpool

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
)

// ClientConfig carries the per-client defaults every pipeline consumes.
// It replaces process-wide mutable settings so concurrent clients never
// contend on shared state.
type ClientConfig struct {
	// Funder pays rent and fees when a params struct leaves it unset.
	Funder solanago.PublicKey
	// SlippageBps bounds quote amounts; DefaultSlippageBps when zero.
	SlippageBps uint16
	// WhirlpoolsConfig is the protocol config all derivations use.
	WhirlpoolsConfig solanago.PublicKey
	// Wrapping controls native SOL handling.
	Wrapping WrappingStrategy
}

// Client assembles whirlpool instruction batches against a read-only
// RPC surface.
type Client struct {
	Reader     helpers.SolanaReader
	Commitment rpc.CommitmentType
	Config     ClientConfig

	// ConfigExtension is derived once from the whirlpools config.
	ConfigExtension solanago.PublicKey

	logger zerolog.Logger
}

type Option func(*Client)

// WithLogger attaches a structured logger; the default discards all
// events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(reader helpers.SolanaReader, commitment rpc.CommitmentType, config ClientConfig, opts ...Option) (*Client, error) {
	if config.SlippageBps == 0 {
		config.SlippageBps = DefaultSlippageBps
	}
	extension, err := DeriveConfigExtensionAddress(config.WhirlpoolsConfig)
	if err != nil {
		return nil, err
	}
	c := &Client{
		Reader:          reader,
		Commitment:      commitment,
		Config:          config,
		ConfigExtension: extension,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) slippageBps(override *uint16) uint16 {
	if override != nil {
		return *override
	}
	return c.Config.SlippageBps
}

func (c *Client) funder(override solanago.PublicKey) solanago.PublicKey {
	if !override.IsZero() {
		return override
	}
	return c.Config.Funder
}
