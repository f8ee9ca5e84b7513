package whirlpool

import "crypto/sha256"

// Instruction discriminators, first 8 bytes of sha256("global:<name>").
var (
	Instruction_InitializePoolV2     = [8]byte{0xcf, 0x2d, 0x57, 0xf2, 0x1b, 0x3f, 0xcc, 0x43}
	Instruction_InitializeTickArray  = [8]byte{0x0b, 0xbc, 0xc1, 0xd6, 0x8d, 0x5b, 0x95, 0xb8}
	Instruction_IncreaseLiquidityV2  = [8]byte{0x85, 0x1d, 0x59, 0xdf, 0x45, 0xee, 0xb0, 0x0a}
	Instruction_DecreaseLiquidityV2  = [8]byte{0x3a, 0x7f, 0xbc, 0x3e, 0x4f, 0x52, 0xc4, 0x60}
	Instruction_CollectFeesV2        = [8]byte{0xcf, 0x75, 0x5f, 0xbf, 0xe5, 0xb4, 0xe2, 0x0f}
	Instruction_CollectRewardV2      = [8]byte{0xb1, 0x6b, 0x25, 0xb4, 0xa0, 0x13, 0x31, 0xd1}
	Instruction_UpdateFeesAndRewards = [8]byte{0x9a, 0xe6, 0xfa, 0x0d, 0xec, 0xd1, 0x4b, 0xdf}
	Instruction_ClosePosition        = [8]byte{0x7b, 0x86, 0x51, 0x00, 0x31, 0x44, 0x62, 0x62}
)

// AccountDiscriminator returns the 8-byte prefix identifying an account type.
func AccountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}
