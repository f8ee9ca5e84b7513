package helpers

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// NativeMint is the wrapped SOL mint.
var NativeMint = solanago.WrappedSol

// TokenProgramForOwner maps an account owner to itself when it is one of
// the two token programs, defaulting to the legacy program.
func TokenProgramForOwner(owner solanago.PublicKey) solanago.PublicKey {
	if owner.Equals(solanago.Token2022ProgramID) {
		return solanago.Token2022ProgramID
	}
	return token.ProgramID
}

func FindAssociatedTokenAddress(wallet, mint, tokenProgram solanago.PublicKey) (solanago.PublicKey, error) {
	ata, _, err := solanago.FindProgramAddress([][]byte{wallet.Bytes(), tokenProgram.Bytes(), mint.Bytes()}, solanago.SPLAssociatedTokenAccountProgramID)
	return ata, err
}

// CreateAssociatedTokenAccountInstruction builds an ATA create instruction that supports custom token programs (SPL/Token2022).
func CreateAssociatedTokenAccountInstruction(payer, ata, owner, mint, tokenProgram solanago.PublicKey) solanago.Instruction {
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(payer, true, true),
		solanago.NewAccountMeta(ata, true, false),
		solanago.NewAccountMeta(owner, false, false),
		solanago.NewAccountMeta(mint, false, false),
		solanago.NewAccountMeta(system.ProgramID, false, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
	}
	return solanago.NewInstruction(solanago.SPLAssociatedTokenAccountProgramID, accounts, nil)
}

// AccountsExist batch-checks account existence in a single RPC call.
func AccountsExist(ctx context.Context, reader SolanaReader, accounts []solanago.PublicKey, commitment rpc.CommitmentType) ([]bool, error) {
	if len(accounts) == 0 {
		return nil, nil
	}
	resp, err := reader.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: commitment})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Value) != len(accounts) {
		return nil, fmt.Errorf("unexpected account count: got %d want %d", len(resp.Value), len(accounts))
	}
	out := make([]bool, len(accounts))
	for i, acc := range resp.Value {
		out[i] = acc != nil
	}
	return out, nil
}

// GetTokenBalance returns the token amount held by an SPL token account,
// or zero if the account does not exist. Transport failures propagate.
func GetTokenBalance(ctx context.Context, reader SolanaReader, account solanago.PublicKey, commitment rpc.CommitmentType) (uint64, error) {
	out, err := reader.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: commitment})
	if errors.Is(err, rpc.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if out == nil || out.Value == nil {
		return 0, nil
	}
	var tokenAcc token.Account
	if err := tokenAcc.UnmarshalWithDecoder(bin.NewBinDecoder(out.Value.Data.GetBinary())); err != nil {
		return 0, err
	}
	return tokenAcc.Amount, nil
}

func WrapSOLInstruction(from, to solanago.PublicKey, amount uint64) ([]solanago.Instruction, error) {
	transferIx := system.NewTransferInstructionBuilder().
		SetFundingAccount(from).
		SetRecipientAccount(to).
		SetLamports(amount).
		Build()
	syncIx := token.NewSyncNativeInstructionBuilder().
		SetTokenAccount(to).
		Build()
	return []solanago.Instruction{transferIx, syncIx}, nil
}

// CloseTokenAccountInstruction closes any SPL token account, returning
// its lamports to the receiver.
func CloseTokenAccountInstruction(account, receiver, owner solanago.PublicKey) solanago.Instruction {
	return token.NewCloseAccountInstructionBuilder().
		SetAccount(account).
		SetDestinationAccount(receiver).
		SetOwnerAccount(owner).
		Build()
}

// MintDecimals decodes just the decimals out of raw mint account data.
func MintDecimals(data []byte) (uint8, error) {
	var mintAcc token.Mint
	if err := mintAcc.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return 0, err
	}
	return mintAcc.Decimals, nil
}

// GetTokenInfo loads a mint and, for Token2022 mints, resolves the
// transfer fee schedule active in the current epoch.
func GetTokenInfo(ctx context.Context, reader SolanaReader, mint solanago.PublicKey, commitment rpc.CommitmentType) (*TokenInfo, error) {
	out, err := reader.GetAccountInfoWithOpts(ctx, mint, &rpc.GetAccountInfoOpts{Commitment: commitment})
	if err != nil {
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("mint %s not found", mint)
	}
	epochInfo, err := reader.GetEpochInfo(ctx, commitment)
	if err != nil {
		return nil, err
	}
	return tokenInfoFromAccount(mint, out.Value.Owner, out.Value.Data.GetBinary(), epochInfo.Epoch)
}

// GetMultipleTokenInfo resolves several mints with one account fetch and
// one epoch fetch.
func GetMultipleTokenInfo(ctx context.Context, reader SolanaReader, mints []solanago.PublicKey, commitment rpc.CommitmentType) ([]*TokenInfo, error) {
	resp, err := reader.GetMultipleAccountsWithOpts(ctx, mints, &rpc.GetMultipleAccountsOpts{Commitment: commitment})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Value) != len(mints) {
		return nil, fmt.Errorf("unexpected mint count: got %d want %d", len(resp.Value), len(mints))
	}
	epochInfo, err := reader.GetEpochInfo(ctx, commitment)
	if err != nil {
		return nil, err
	}
	out := make([]*TokenInfo, len(mints))
	for i, acc := range resp.Value {
		if acc == nil {
			return nil, fmt.Errorf("mint %s not found", mints[i])
		}
		info, err := tokenInfoFromAccount(mints[i], acc.Owner, acc.Data.GetBinary(), epochInfo.Epoch)
		if err != nil {
			return nil, err
		}
		out[i] = info
	}
	return out, nil
}

func tokenInfoFromAccount(mint, owner solanago.PublicKey, data []byte, epoch uint64) (*TokenInfo, error) {
	var mintAcc token.Mint
	if err := mintAcc.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return nil, err
	}
	info := &TokenInfo{
		Owner:        owner,
		Mint:         mint,
		CurrentEpoch: epoch,
		Decimals:     mintAcc.Decimals,
	}
	if !owner.Equals(solanago.Token2022ProgramID) {
		return info, nil
	}
	ext, err := parseToken2022Extensions(data)
	if err != nil {
		return nil, err
	}
	info.HasTransferHook = ext.HasTransferHook
	if ext.TransferFeeConfig != nil {
		fee := ext.TransferFeeConfig.FeeForEpoch(epoch)
		info.HasTransferFee = true
		info.BasisPoints = fee.FeeBps
		info.MaximumFee = new(big.Int).SetUint64(fee.MaxFee)
	}
	return info, nil
}
