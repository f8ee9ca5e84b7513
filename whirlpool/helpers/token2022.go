package helpers

import (
	"encoding/binary"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
)

const (
	// Legacy mint size. Token2022 pads mints to the legacy token account
	// size, stores an account type byte, then the extension TLV region.
	MintBaseSize      = 82
	accountTypeOffset = 165
	extensionStart    = 166

	accountTypeMint uint8 = 1

	ExtUninitialized     uint16 = 0
	ExtTransferFeeConfig uint16 = 1
	ExtTransferHook      uint16 = 14
)

// Extensions holds raw TLV slices plus the decoded extensions the engine
// cares about.
type Extensions struct {
	Raw map[uint16][]byte

	TransferFeeConfig *TransferFeeConfig
	HasTransferHook   bool
}

type TransferFee struct {
	Epoch  uint64
	MaxFee uint64
	FeeBps uint16
}

type TransferFeeConfig struct {
	// Authorities are stored as OptionalNonZeroPubkey on-chain; nil means "None".
	TransferFeeConfigAuthority *solanago.PublicKey
	WithdrawWithheldAuthority  *solanago.PublicKey

	WithheldAmount uint64

	Older TransferFee
	Newer TransferFee
}

// FeeForEpoch picks the fee schedule active in the given epoch. The newer
// schedule only takes effect once its epoch is reached.
func (c *TransferFeeConfig) FeeForEpoch(currentEpoch uint64) TransferFee {
	if currentEpoch < c.Newer.Epoch {
		return c.Older
	}
	return c.Newer
}

// parseToken2022Extensions walks the TLV region of a Token2022 mint.
func parseToken2022Extensions(data []byte) (*Extensions, error) {
	if len(data) < MintBaseSize {
		return nil, fmt.Errorf("data too short for mint base: got=%d want>=%d", len(data), MintBaseSize)
	}

	exts := &Extensions{
		Raw: make(map[uint16][]byte),
	}

	// a legacy-sized mint carries no extensions
	if len(data) <= extensionStart {
		return exts, nil
	}
	if data[accountTypeOffset] != accountTypeMint {
		return nil, fmt.Errorf("not a mint account: account type %d", data[accountTypeOffset])
	}

	off := extensionStart
	for {
		if off+4 > len(data) {
			break
		}

		typ := binary.LittleEndian.Uint16(data[off : off+2])
		l := binary.LittleEndian.Uint16(data[off+2 : off+4])
		off += 4

		// trailing zero padding
		if typ == ExtUninitialized && l == 0 {
			break
		}

		if off+int(l) > len(data) {
			return nil, fmt.Errorf("invalid TLV length: type=%d len=%d off=%d total=%d", typ, l, off, len(data))
		}

		val := data[off : off+int(l)]
		off += int(l)

		exts.Raw[typ] = val

		switch typ {
		case ExtTransferFeeConfig:
			cfg, err := parseTransferFeeConfig(val)
			if err != nil {
				return nil, fmt.Errorf("parse TransferFeeConfig failed: %w", err)
			}
			exts.TransferFeeConfig = cfg
		case ExtTransferHook:
			exts.HasTransferHook = true
		}
	}

	return exts, nil
}

// transferFeeConfigLen is the pod size of the on-chain TransferFeeConfig
// extension: two 32-byte optional pubkeys (all-zero means none, no tag
// bytes), a u64 withheld amount, then two packed 18-byte fee schedules.
const transferFeeConfigLen = 108

func parseTransferFeeConfig(b []byte) (*TransferFeeConfig, error) {
	if len(b) < transferFeeConfigLen {
		return nil, fmt.Errorf("transfer fee config: got %d bytes want %d", len(b), transferFeeConfigLen)
	}
	return &TransferFeeConfig{
		TransferFeeConfigAuthority: optionalNonZeroPubkey(b[0:32]),
		WithdrawWithheldAuthority:  optionalNonZeroPubkey(b[32:64]),
		WithheldAmount:             binary.LittleEndian.Uint64(b[64:72]),
		Older:                      readTransferFee(b[72:90]),
		Newer:                      readTransferFee(b[90:108]),
	}, nil
}

func optionalNonZeroPubkey(b []byte) *solanago.PublicKey {
	pk := solanago.PublicKeyFromBytes(b)
	if pk.IsZero() {
		return nil
	}
	return &pk
}

func readTransferFee(b []byte) TransferFee {
	return TransferFee{
		Epoch:  binary.LittleEndian.Uint64(b[0:8]),
		MaxFee: binary.LittleEndian.Uint64(b[8:16]),
		FeeBps: binary.LittleEndian.Uint16(b[16:18]),
	}
}
