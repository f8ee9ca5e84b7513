package whirlpool

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// Whirlpool is the on-chain pool account.
type Whirlpool struct {
	WhirlpoolsConfig           solanago.PublicKey
	WhirlpoolBump              [1]uint8
	TickSpacing                uint16
	TickSpacingSeed            [2]uint8
	FeeRate                    uint16
	ProtocolFeeRate            uint16
	Liquidity                  bin.Uint128
	SqrtPrice                  bin.Uint128
	TickCurrentIndex           int32
	ProtocolFeeOwedA           uint64
	ProtocolFeeOwedB           uint64
	TokenMintA                 solanago.PublicKey
	TokenVaultA                solanago.PublicKey
	FeeGrowthGlobalA           bin.Uint128
	TokenMintB                 solanago.PublicKey
	TokenVaultB                solanago.PublicKey
	FeeGrowthGlobalB           bin.Uint128
	RewardLastUpdatedTimestamp uint64
	RewardInfos                [NumRewards]WhirlpoolRewardInfo
}

// Position is the on-chain liquidity position account.
type Position struct {
	Whirlpool            solanago.PublicKey
	PositionMint         solanago.PublicKey
	Liquidity            bin.Uint128
	TickLowerIndex       int32
	TickUpperIndex       int32
	FeeGrowthCheckpointA bin.Uint128
	FeeOwedA             uint64
	FeeGrowthCheckpointB bin.Uint128
	FeeOwedB             uint64
	RewardInfos          [NumRewards]PositionRewardInfo
}

// TickArray holds a contiguous run of ticks for one pool.
type TickArray struct {
	StartTickIndex int32
	Ticks          [TickArraySize]Tick
	Whirlpool      solanago.PublicKey
}

// FeeTier maps a tick spacing to its default fee rate under a config.
type FeeTier struct {
	WhirlpoolsConfig solanago.PublicKey
	TickSpacing      uint16
	DefaultFeeRate   uint16
}

// WhirlpoolsConfig is the protocol-level configuration account.
type WhirlpoolsConfig struct {
	FeeAuthority                  solanago.PublicKey
	CollectProtocolFeesAuthority  solanago.PublicKey
	RewardEmissionsSuperAuthority solanago.PublicKey
	DefaultProtocolFeeRate        uint16
}

// WhirlpoolsConfigExtension carries the token badge authority for a config.
type WhirlpoolsConfigExtension struct {
	WhirlpoolsConfig         solanago.PublicKey
	ConfigExtensionAuthority solanago.PublicKey
	TokenBadgeAuthority      solanago.PublicKey
}

// TokenBadge marks a token-2022 mint as permitted for pool creation.
type TokenBadge struct {
	WhirlpoolsConfig solanago.PublicKey
	TokenMint        solanago.PublicKey
}

// PositionBundle packs up to 256 bundled positions under one mint.
type PositionBundle struct {
	PositionBundleMint solanago.PublicKey
	PositionBitmap     [PositionBundleSize / 8]uint8
}

// ParseAnyAccount decodes raw account data into one of the program's account
// types, dispatching on the 8-byte discriminator prefix.
func ParseAnyAccount(data []byte) (any, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("account data too short: %d bytes", len(data))
	}
	var v any
	switch {
	case bytes.Equal(data[:8], AccountDiscriminator("Whirlpool")):
		v = new(Whirlpool)
	case bytes.Equal(data[:8], AccountDiscriminator("Position")):
		v = new(Position)
	case bytes.Equal(data[:8], AccountDiscriminator("TickArray")):
		v = new(TickArray)
	case bytes.Equal(data[:8], AccountDiscriminator("FeeTier")):
		v = new(FeeTier)
	case bytes.Equal(data[:8], AccountDiscriminator("WhirlpoolsConfig")):
		v = new(WhirlpoolsConfig)
	case bytes.Equal(data[:8], AccountDiscriminator("WhirlpoolsConfigExtension")):
		v = new(WhirlpoolsConfigExtension)
	case bytes.Equal(data[:8], AccountDiscriminator("TokenBadge")):
		v = new(TokenBadge)
	case bytes.Equal(data[:8], AccountDiscriminator("PositionBundle")):
		v = new(PositionBundle)
	default:
		return nil, fmt.Errorf("unknown account discriminator: %x", data[:8])
	}
	if err := bin.NewBorshDecoder(data[8:]).Decode(v); err != nil {
		return nil, err
	}
	return v, nil
}
