package whirlpool

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
	soltx "github.com/krazyTry/whirlpool-go/solana"
	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

// TxBuilder mirrors the TS builder style using a transaction builder.
type TxBuilder = *solanago.TransactionBuilder

// assembleTransaction merges the instruction batches into a single phased
// list and loads it into a transaction builder. Callers get both forms:
// the builder for manual submission and the flat list for packing several
// operations into one transaction.
func assembleTransaction(batches ...[]solanago.Instruction) (TxBuilder, []solanago.Instruction) {
	instructions := soltx.MergeInstructions(batches...)
	builder := solanago.NewTransactionBuilder()
	for _, ix := range instructions {
		builder.AddInstruction(ix)
	}
	return builder, instructions
}

// State aliases for the decoded on-chain accounts.
type (
	WhirlpoolState       = whirlpoolgen.Whirlpool
	PositionState        = whirlpoolgen.Position
	TickArrayState       = whirlpoolgen.TickArray
	FeeTierState         = whirlpoolgen.FeeTier
	ConfigState          = whirlpoolgen.WhirlpoolsConfig
	ConfigExtensionState = whirlpoolgen.WhirlpoolsConfigExtension
)

// WrappingStrategy controls how native SOL is made spendable as wSOL.
type WrappingStrategy uint8

const (
	// WrappingNone leaves an existing wSOL ATA untouched.
	WrappingNone WrappingStrategy = iota
	// WrappingAta funds the wSOL ATA on demand and closes it afterwards
	// only when this call created it.
	WrappingAta
	// WrappingKeypair uses a throwaway token account signed by a fresh
	// keypair, always closed afterwards.
	WrappingKeypair
	// WrappingSeed derives the throwaway account with a seed so no extra
	// signer is needed, always closed afterwards.
	WrappingSeed
)

// TokenAccountSpec asks the account preparer for a spendable account of
// one mint. A nil Balance only requires existence; a non-nil Balance
// additionally requires that many tokens to be spendable.
type TokenAccountSpec struct {
	Mint    solanago.PublicKey
	Balance *big.Int
}

// WithoutBalance requires the account to exist.
func WithoutBalance(mint solanago.PublicKey) TokenAccountSpec {
	return TokenAccountSpec{Mint: mint}
}

// WithBalance requires the account to hold at least amount tokens.
func WithBalance(mint solanago.PublicKey, amount *big.Int) TokenAccountSpec {
	return TokenAccountSpec{Mint: mint, Balance: new(big.Int).Set(amount)}
}

// PreparedTokenAccounts is the provisioning result for a spec set.
type PreparedTokenAccounts struct {
	// Addresses maps each requested mint to its token account.
	Addresses map[solanago.PublicKey]solanago.PublicKey
	// CreateInstructions run before the main instruction.
	CreateInstructions []solanago.Instruction
	// CleanupInstructions run after the main instruction.
	CleanupInstructions []solanago.Instruction
	// AdditionalSigners holds throwaway account keypairs.
	AdditionalSigners []solanago.PrivateKey
}

// PoolInfo describes a pool for a mint pair and tick spacing, whether or
// not it exists on chain yet.
type PoolInfo struct {
	Address     solanago.PublicKey
	Initialized bool

	// State is set when the pool exists on chain.
	State *WhirlpoolState

	// The fields below describe the pool either way.
	WhirlpoolsConfig solanago.PublicKey
	TickSpacing      uint16
	FeeRate          uint16
	ProtocolFeeRate  uint16
	TokenMintA       solanago.PublicKey
	TokenMintB       solanago.PublicKey
	Price            decimal.Decimal
}

// AccountWithFeeTier pairs a fee tier account with its address.
type AccountWithFeeTier struct {
	PublicKey solanago.PublicKey
	Account   *FeeTierState
}

// AccountWithPosition pairs a position account with its address.
type AccountWithPosition struct {
	PublicKey solanago.PublicKey
	Account   *PositionState
}

// CreatePoolParams are the inputs for initializing a concentrated pool.
type CreatePoolParams struct {
	TokenMintA   solanago.PublicKey
	TokenMintB   solanago.PublicKey
	TickSpacing  uint16
	InitialPrice decimal.Decimal
	// Funder overrides the configured funder when set.
	Funder solanago.PublicKey
}

// CreatePoolResult reports the derived accounts and rent cost.
type CreatePoolResult struct {
	Pool               TxBuilder
	Instructions       []solanago.Instruction
	Address            solanago.PublicKey
	InitializationCost uint64
	AdditionalSigners  []solanago.PrivateKey
}

// OpenPositionParams are the inputs for increasing liquidity on an
// existing position.
type IncreaseLiquidityParams struct {
	PositionMint solanago.PublicKey

	// Exactly one of Liquidity, TokenA, TokenB drives the quote.
	Liquidity *big.Int
	TokenA    *big.Int
	TokenB    *big.Int

	SlippageBps *uint16
	Authority   solanago.PublicKey
}

// IncreaseLiquidityResult carries the builder, quote and extra signers.
type IncreaseLiquidityResult struct {
	Builder           TxBuilder
	Instructions      []solanago.Instruction
	Quote             shared.IncreaseLiquidityQuote
	AdditionalSigners []solanago.PrivateKey
}

// DecreaseLiquidityParams mirror IncreaseLiquidityParams for withdrawal.
type DecreaseLiquidityParams struct {
	PositionMint solanago.PublicKey

	Liquidity *big.Int
	TokenA    *big.Int
	TokenB    *big.Int

	SlippageBps *uint16
	Authority   solanago.PublicKey
}

// DecreaseLiquidityResult carries the builder, quote and extra signers.
type DecreaseLiquidityResult struct {
	Builder           TxBuilder
	Instructions      []solanago.Instruction
	Quote             shared.DecreaseLiquidityQuote
	AdditionalSigners []solanago.PrivateKey
}

// ClosePositionParams empty the position and close its accounts in one
// transaction.
type ClosePositionParams struct {
	PositionMint solanago.PublicKey
	SlippageBps  *uint16
	Authority    solanago.PublicKey
}

// ClosePositionResult carries the builder and the quotes for the final
// withdrawal, fees and rewards.
type ClosePositionResult struct {
	Builder           TxBuilder
	Instructions      []solanago.Instruction
	Quote             shared.DecreaseLiquidityQuote
	FeesQuote         shared.CollectFeesQuote
	RewardsQuote      shared.CollectRewardsQuote
	AdditionalSigners []solanago.PrivateKey
}

// HarvestPositionParams collect owed fees and rewards without touching
// liquidity.
type HarvestPositionParams struct {
	PositionMint solanago.PublicKey
	Authority    solanago.PublicKey
}

// HarvestPositionResult carries the builder and owed amounts.
type HarvestPositionResult struct {
	Builder           TxBuilder
	Instructions      []solanago.Instruction
	FeesQuote         shared.CollectFeesQuote
	RewardsQuote      shared.CollectRewardsQuote
	AdditionalSigners []solanago.PrivateKey
}
