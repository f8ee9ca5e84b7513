package whirlpool

import (
	"context"
	"fmt"
	"strconv"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
	"github.com/krazyTry/whirlpool-go/whirlpool/helpers"
)

// PrepareTokenAccounts resolves a spendable token account per requested
// mint, appending create and funding instructions for anything missing
// and cleanup instructions for anything temporary. Native SOL follows
// the configured wrapping strategy.
func (c *Client) PrepareTokenAccounts(ctx context.Context, owner solanago.PublicKey, specs []TokenAccountSpec) (*PreparedTokenAccounts, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("owner: %w", ErrZeroAddress)
	}
	mints := make([]solanago.PublicKey, len(specs))
	for i, spec := range specs {
		mints[i] = spec.Mint
	}
	infos, err := helpers.GetMultipleTokenInfo(ctx, c.Reader, mints, c.Commitment)
	if err != nil {
		return nil, err
	}

	out := &PreparedTokenAccounts{
		Addresses: make(map[solanago.PublicKey]solanago.PublicKey, len(specs)),
	}

	// Resolve ATAs for everything except native mint under the throwaway
	// strategies, then existence-check them in one call.
	type ataEntry struct {
		spec    TokenAccountSpec
		info    *helpers.TokenInfo
		address solanago.PublicKey
	}
	var ataEntries []ataEntry
	var ataAddrs []solanago.PublicKey
	for i, spec := range specs {
		info := infos[i]
		if spec.Mint.Equals(helpers.NativeMint) &&
			(c.Config.Wrapping == WrappingKeypair || c.Config.Wrapping == WrappingSeed) {
			continue
		}
		program := helpers.TokenProgramForOwner(info.Owner)
		ata, err := helpers.FindAssociatedTokenAddress(owner, spec.Mint, program)
		if err != nil {
			return nil, err
		}
		ataEntries = append(ataEntries, ataEntry{spec: spec, info: info, address: ata})
		ataAddrs = append(ataAddrs, ata)
	}

	exists, err := helpers.AccountsExist(ctx, c.Reader, ataAddrs, c.Commitment)
	if err != nil {
		return nil, err
	}

	for i, entry := range ataEntries {
		program := helpers.TokenProgramForOwner(entry.info.Owner)
		out.Addresses[entry.spec.Mint] = entry.address
		if !exists[i] {
			out.CreateInstructions = append(out.CreateInstructions,
				helpers.CreateAssociatedTokenAccountInstruction(c.Config.Funder, entry.address, owner, entry.spec.Mint, program))
		}
		if !entry.spec.Mint.Equals(helpers.NativeMint) || c.Config.Wrapping != WrappingAta {
			continue
		}
		// fund the wSOL ATA only up to the shortfall
		required := uint64(0)
		if entry.spec.Balance != nil {
			required = entry.spec.Balance.Uint64()
		}
		current := uint64(0)
		if exists[i] {
			current, err = helpers.GetTokenBalance(ctx, c.Reader, entry.address, c.Commitment)
			if err != nil {
				return nil, err
			}
		}
		if required > current {
			wrapIxs, err := helpers.WrapSOLInstruction(owner, entry.address, required-current)
			if err != nil {
				return nil, err
			}
			out.CreateInstructions = append(out.CreateInstructions, wrapIxs...)
		}
		if !exists[i] {
			out.CleanupInstructions = append(out.CleanupInstructions,
				helpers.CloseTokenAccountInstruction(entry.address, owner, owner))
		}
	}

	// Throwaway wSOL accounts exist only for the duration of the batch.
	for i, spec := range specs {
		if !spec.Mint.Equals(helpers.NativeMint) {
			continue
		}
		if c.Config.Wrapping != WrappingKeypair && c.Config.Wrapping != WrappingSeed {
			continue
		}
		program := helpers.TokenProgramForOwner(infos[i].Owner)
		balance := uint64(0)
		if spec.Balance != nil {
			balance = spec.Balance.Uint64()
		}
		rent, err := c.Reader.GetMinimumBalanceForRentExemption(ctx, whirlpoolgen.TokenAccountLen, rpc.CommitmentFinalized)
		if err != nil {
			return nil, err
		}

		var account solanago.PublicKey
		if c.Config.Wrapping == WrappingKeypair {
			wallet := solanago.NewWallet()
			account = wallet.PublicKey()
			out.AdditionalSigners = append(out.AdditionalSigners, wallet.PrivateKey)
			out.CreateInstructions = append(out.CreateInstructions,
				system.NewCreateAccountInstruction(rent+balance, whirlpoolgen.TokenAccountLen, program, owner, account).Build())
		} else {
			seed := strconv.FormatInt(time.Now().UnixMilli(), 10)
			account, err = solanago.CreateWithSeed(owner, seed, program)
			if err != nil {
				return nil, err
			}
			out.CreateInstructions = append(out.CreateInstructions,
				system.NewCreateAccountWithSeedInstructionBuilder().
					SetBase(owner).
					SetSeed(seed).
					SetLamports(rent+balance).
					SetSpace(whirlpoolgen.TokenAccountLen).
					SetOwner(program).
					SetFundingAccount(owner).
					SetCreatedAccount(account).
					SetBaseAccount(owner).
					Build())
		}
		out.CreateInstructions = append(out.CreateInstructions,
			token.NewInitializeAccount3InstructionBuilder().
				SetOwner(owner).
				SetAccount(account).
				SetMintAccount(helpers.NativeMint).
				Build())
		out.CleanupInstructions = append(out.CleanupInstructions,
			helpers.CloseTokenAccountInstruction(account, owner, owner))
		out.Addresses[spec.Mint] = account
	}

	return out, nil
}
