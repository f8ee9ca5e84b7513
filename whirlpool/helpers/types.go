package helpers

import (
	"context"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaReader is the read-only RPC surface the engine consumes.
// *rpc.Client satisfies it.
type SolanaReader interface {
	GetAccountInfoWithOpts(ctx context.Context, account solanago.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetMultipleAccountsWithOpts(ctx context.Context, accounts []solanago.PublicKey, opts *rpc.GetMultipleAccountsOpts) (*rpc.GetMultipleAccountsResult, error)
	GetProgramAccountsWithOpts(ctx context.Context, publicKey solanago.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error)
	GetEpochInfo(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetEpochInfoResult, error)
}

// TokenInfo mirrors the fields needed for Token2022 fee calculations.
type TokenInfo struct {
	Owner           solanago.PublicKey
	Mint            solanago.PublicKey
	CurrentEpoch    uint64
	Decimals        uint8
	BasisPoints     uint16
	MaximumFee      *big.Int
	HasTransferFee  bool
	HasTransferHook bool
}

// PositionNftAccount represents a position NFT mint and its token account.
type PositionNftAccount struct {
	PositionNft        solanago.PublicKey
	PositionNftAccount solanago.PublicKey
}
