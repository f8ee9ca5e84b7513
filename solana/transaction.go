package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func GetLatestBlockhash(ctx context.Context, rpcClient *rpc.Client) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, err
	}
	return recent.Value.Blockhash, nil
}

// BuildTransaction merges the instruction batches into a single unsigned
// transaction stamped with the latest blockhash. Signing and broadcasting
// stay with the caller.
func BuildTransaction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	batches ...[]solana.Instruction,
) (*solana.Transaction, error) {

	latestBlockhash, err := GetLatestBlockhash(ctx, rpcClient)
	if err != nil {
		return nil, err
	}

	return solana.NewTransaction(
		MergeInstructions(batches...),
		latestBlockhash,
		solana.TransactionPayer(payer),
	)
}
