package whirlpool

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeAccount(t *testing.T, name string, v any) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	buf.Write(AccountDiscriminator(name))
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(v))
	return buf.Bytes()
}

func TestParseAnyAccountWhirlpool(t *testing.T) {
	src := Whirlpool{
		WhirlpoolsConfig: solanago.NewWallet().PublicKey(),
		TickSpacing:      64,
		FeeRate:          3000,
		Liquidity:        bin.Uint128{Lo: 123456789},
		SqrtPrice:        bin.Uint128{Hi: 1},
		TickCurrentIndex: -42,
		TokenMintA:       solanago.NewWallet().PublicKey(),
		TokenMintB:       solanago.NewWallet().PublicKey(),
	}

	parsed, err := ParseAnyAccount(encodeAccount(t, "Whirlpool", src))
	require.NoError(t, err)

	pool, ok := parsed.(*Whirlpool)
	require.True(t, ok)
	assert.Equal(t, src.WhirlpoolsConfig, pool.WhirlpoolsConfig)
	assert.Equal(t, uint16(64), pool.TickSpacing)
	assert.Equal(t, uint16(3000), pool.FeeRate)
	assert.Equal(t, uint64(123456789), pool.Liquidity.Lo)
	assert.Equal(t, uint64(1), pool.SqrtPrice.Hi)
	assert.Equal(t, int32(-42), pool.TickCurrentIndex)
	assert.Equal(t, src.TokenMintA, pool.TokenMintA)
	assert.Equal(t, src.TokenMintB, pool.TokenMintB)
}

func TestParseAnyAccountPosition(t *testing.T) {
	src := Position{
		Whirlpool:      solanago.NewWallet().PublicKey(),
		PositionMint:   solanago.NewWallet().PublicKey(),
		Liquidity:      bin.Uint128{Lo: 7777},
		TickLowerIndex: -128,
		TickUpperIndex: 128,
		FeeOwedA:       11,
		FeeOwedB:       22,
	}

	parsed, err := ParseAnyAccount(encodeAccount(t, "Position", src))
	require.NoError(t, err)

	position, ok := parsed.(*Position)
	require.True(t, ok)
	assert.Equal(t, src.Whirlpool, position.Whirlpool)
	assert.Equal(t, int32(-128), position.TickLowerIndex)
	assert.Equal(t, int32(128), position.TickUpperIndex)
	assert.Equal(t, uint64(11), position.FeeOwedA)
	assert.Equal(t, uint64(22), position.FeeOwedB)
}

func TestParseAnyAccountFeeTier(t *testing.T) {
	src := FeeTier{
		WhirlpoolsConfig: solanago.NewWallet().PublicKey(),
		TickSpacing:      8,
		DefaultFeeRate:   500,
	}

	parsed, err := ParseAnyAccount(encodeAccount(t, "FeeTier", src))
	require.NoError(t, err)

	feeTier, ok := parsed.(*FeeTier)
	require.True(t, ok)
	assert.Equal(t, src.WhirlpoolsConfig, feeTier.WhirlpoolsConfig)
	assert.Equal(t, uint16(8), feeTier.TickSpacing)
	assert.Equal(t, uint16(500), feeTier.DefaultFeeRate)
}

func TestParseAnyAccountTickArray(t *testing.T) {
	src := TickArray{
		StartTickIndex: -5632,
		Whirlpool:      solanago.NewWallet().PublicKey(),
	}
	src.Ticks[0].Initialized = true
	src.Ticks[0].LiquidityGross = bin.Uint128{Lo: 999}

	parsed, err := ParseAnyAccount(encodeAccount(t, "TickArray", src))
	require.NoError(t, err)

	tickArray, ok := parsed.(*TickArray)
	require.True(t, ok)
	assert.Equal(t, int32(-5632), tickArray.StartTickIndex)
	assert.True(t, tickArray.Ticks[0].Initialized)
	assert.Equal(t, uint64(999), tickArray.Ticks[0].LiquidityGross.Lo)
	assert.Equal(t, src.Whirlpool, tickArray.Whirlpool)
}

func TestParseAnyAccountRejectsUnknown(t *testing.T) {
	_, err := ParseAnyAccount([]byte{1, 2, 3})
	assert.ErrorContains(t, err, "too short")

	_, err = ParseAnyAccount([]byte{9, 9, 9, 9, 9, 9, 9, 9, 0})
	assert.ErrorContains(t, err, "unknown account discriminator")
}
