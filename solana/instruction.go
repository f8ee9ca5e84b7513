package solana

import (
	bin "encoding/binary"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

var (
	transferInstructionTypeID     = binary.TypeIDFromUint32(system.Instruction_Transfer, bin.LittleEndian)
	syncNativeInstructionTypeID   = binary.TypeIDFromUint8(token.Instruction_SyncNative)
	closeAccountInstructionTypeID = binary.TypeIDFromUint8(token.Instruction_CloseAccount)
)

func sameLeadingAccounts(a, b solana.Instruction, n int) bool {
	as, bs := a.Accounts(), b.Accounts()
	if len(as) < n || len(bs) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if as[i].PublicKey != bs[i].PublicKey {
			return false
		}
	}
	return true
}

func appendUnique(list []solana.Instruction, ix solana.Instruction, n int) ([]solana.Instruction, bool) {
	for _, kept := range list {
		if sameLeadingAccounts(kept, ix, n) {
			return list, false
		}
	}
	return append(list, ix), true
}

// SplitInstructions partitions instructions into setup, core and cleanup
// phases. Associated token account creations move to the front and token
// account closes move to the back. Duplicates produced by independently
// assembled operations collapse to a single instruction, and funding
// transfers to the same recipient are merged by summing their lamports.
func SplitInstructions(instructions []solana.Instruction) (setup, core, cleanup []solana.Instruction) {
	var transfers []*system.Transfer

	for _, ix := range instructions {
		// associated token account creations, regardless of how the
		// instruction value was built
		if ix.ProgramID().Equals(solana.SPLAssociatedTokenAccountProgramID) {
			setup, _ = appendUnique(setup, ix, 4)
			continue
		}
		switch inst := ix.(type) {
		case *system.Instruction:
			if inst.TypeID == transferInstructionTypeID {
				transfer, ok := inst.Impl.(system.Transfer)
				if ok {
					merged := false
					for _, kept := range transfers {
						if transfer.GetFundingAccount().PublicKey != kept.GetFundingAccount().PublicKey ||
							transfer.GetRecipientAccount().PublicKey != kept.GetRecipientAccount().PublicKey {
							continue
						}
						// the impl copy shares the lamports pointer with
						// the instruction already kept in core
						*kept.Lamports += *transfer.Lamports
						merged = true
						break
					}
					if merged {
						continue
					}
					transfers = append(transfers, &transfer)
				}
			}
		case *token.Instruction:
			switch inst.TypeID {
			case syncNativeInstructionTypeID:
				core, _ = appendUnique(core, ix, 1)
				continue
			case closeAccountInstructionTypeID:
				cleanup, _ = appendUnique(cleanup, ix, 3)
				continue
			}
		}
		core = append(core, ix)
	}
	return setup, core, cleanup
}

// MergeInstructions flattens one or more instruction batches into a single
// phased list. Use it when several independently built operations are packed
// into one transaction, so a shared token account is created once and closed
// once.
func MergeInstructions(batches ...[]solana.Instruction) []solana.Instruction {
	var flat []solana.Instruction
	for _, batch := range batches {
		flat = append(flat, batch...)
	}

	setup, core, cleanup := SplitInstructions(flat)

	merged := make([]solana.Instruction, 0, len(setup)+len(core)+len(cleanup))
	merged = append(merged, setup...)
	merged = append(merged, core...)
	merged = append(merged, cleanup...)
	return merged
}
