package whirlpool

import (
	"bytes"
	"encoding/binary"
	"strconv"

	solanago "github.com/gagliardetto/solana-go"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
)

// OrderMints returns the two mints in canonical byte order; every pool
// stores the smaller key as token A.
func OrderMints(mint1, mint2 solanago.PublicKey) (solanago.PublicKey, solanago.PublicKey) {
	if bytes.Compare(mint1.Bytes(), mint2.Bytes()) < 0 {
		return mint1, mint2
	}
	return mint2, mint1
}

// MintsInCanonicalOrder reports whether mintA sorts before mintB.
func MintsInCanonicalOrder(mintA, mintB solanago.PublicKey) bool {
	return bytes.Compare(mintA.Bytes(), mintB.Bytes()) < 0
}

func tickSpacingSeed(tickSpacing uint16) []byte {
	seed := make([]byte, 2)
	binary.LittleEndian.PutUint16(seed, tickSpacing)
	return seed
}

func DeriveWhirlpoolAddress(config, tokenMintA, tokenMintB solanago.PublicKey, tickSpacing uint16) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("whirlpool"),
		config.Bytes(),
		tokenMintA.Bytes(),
		tokenMintB.Bytes(),
		tickSpacingSeed(tickSpacing),
	}, whirlpoolgen.ProgramID)
	return pub, err
}

func DeriveFeeTierAddress(config solanago.PublicKey, tickSpacing uint16) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("fee_tier"),
		config.Bytes(),
		tickSpacingSeed(tickSpacing),
	}, whirlpoolgen.ProgramID)
	return pub, err
}

// DeriveTickArrayAddress uses the start index rendered as a base-10
// string, sign included, as the program does.
func DeriveTickArrayAddress(pool solanago.PublicKey, startTickIndex int32) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("tick_array"),
		pool.Bytes(),
		[]byte(strconv.FormatInt(int64(startTickIndex), 10)),
	}, whirlpoolgen.ProgramID)
	return pub, err
}

func DerivePositionAddress(positionMint solanago.PublicKey) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("position"),
		positionMint.Bytes(),
	}, whirlpoolgen.ProgramID)
	return pub, err
}

func DerivePositionBundleAddress(bundleMint solanago.PublicKey) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("position_bundle"),
		bundleMint.Bytes(),
	}, whirlpoolgen.ProgramID)
	return pub, err
}

func DeriveOracleAddress(pool solanago.PublicKey) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("oracle"),
		pool.Bytes(),
	}, whirlpoolgen.ProgramID)
	return pub, err
}

func DeriveConfigExtensionAddress(config solanago.PublicKey) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("config_extension"),
		config.Bytes(),
	}, whirlpoolgen.ProgramID)
	return pub, err
}

// DeriveTokenBadgeAddress derives the badge account under the config
// extension, not the config itself.
func DeriveTokenBadgeAddress(configExtension, tokenMint solanago.PublicKey) (solanago.PublicKey, error) {
	pub, _, err := solanago.FindProgramAddress([][]byte{
		[]byte("token_badge"),
		configExtension.Bytes(),
		tokenMint.Bytes(),
	}, whirlpoolgen.ProgramID)
	return pub, err
}
