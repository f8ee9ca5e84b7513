package whirlpool

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	whirlpoolgen "github.com/krazyTry/whirlpool-go/gen/whirlpool"
)

func programAccount(t *testing.T, name string, v any) *rpc.Account {
	t.Helper()
	buf := new(bytes.Buffer)
	buf.Write(whirlpoolgen.AccountDiscriminator(name))
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(v))
	return &rpc.Account{
		Owner: whirlpoolgen.ProgramID,
		Data:  rpc.DataBytesOrJSONFromBytes(buf.Bytes()),
	}
}

// poolFixture seeds the SOL/USDC tick spacing 64 pool and its supporting
// accounts into a stub reader.
type poolFixture struct {
	reader  *stubReader
	pool    solanago.PublicKey
	feeTier solanago.PublicKey
}

func newPoolFixture(t *testing.T, includePool bool) poolFixture {
	t.Helper()
	pool, err := DeriveWhirlpoolAddress(testConfig, testSolMint, testUsdcMint, 64)
	require.NoError(t, err)
	feeTier, err := DeriveFeeTierAddress(testConfig, 64)
	require.NoError(t, err)

	reader := &stubReader{accounts: map[solanago.PublicKey]*rpc.Account{
		testSolMint:  mintAccount(t, 9),
		testUsdcMint: mintAccount(t, 6),
		testConfig: programAccount(t, "WhirlpoolsConfig", whirlpoolgen.WhirlpoolsConfig{
			FeeAuthority:           solanago.NewWallet().PublicKey(),
			DefaultProtocolFeeRate: 300,
		}),
		feeTier: programAccount(t, "FeeTier", whirlpoolgen.FeeTier{
			WhirlpoolsConfig: testConfig,
			TickSpacing:      64,
			DefaultFeeRate:   3000,
		}),
	}}
	if includePool {
		reader.accounts[pool] = programAccount(t, "Whirlpool", whirlpoolgen.Whirlpool{
			WhirlpoolsConfig: testConfig,
			TickSpacing:      64,
			FeeRate:          400,
			ProtocolFeeRate:  200,
			SqrtPrice:        bin.Uint128{Hi: 1},
			TokenMintA:       testSolMint,
			TokenMintB:       testUsdcMint,
		})
	}
	return poolFixture{reader: reader, pool: pool, feeTier: feeTier}
}

func TestFetchPoolInitialized(t *testing.T) {
	fx := newPoolFixture(t, true)
	pc := newTestClient(t, fx.reader, solanago.NewWallet().PublicKey(), WrappingNone)

	// mint order does not matter
	info, err := pc.FetchPool(context.Background(), testUsdcMint, testSolMint, 64)
	require.NoError(t, err)

	assert.Equal(t, fx.pool, info.Address)
	assert.True(t, info.Initialized)
	require.NotNil(t, info.State)
	assert.Equal(t, uint16(400), info.FeeRate)
	assert.Equal(t, uint16(200), info.ProtocolFeeRate)
	assert.Equal(t, testSolMint, info.TokenMintA)
	assert.Equal(t, testUsdcMint, info.TokenMintB)

	// sqrt price of one at a 9/6 decimal gap reads as 1000 USDC per SOL
	assert.True(t, info.Price.Equal(decimal.NewFromInt(1000)), "got %s", info.Price)
}

func TestFetchPoolUninitialized(t *testing.T) {
	fx := newPoolFixture(t, false)
	pc := newTestClient(t, fx.reader, solanago.NewWallet().PublicKey(), WrappingNone)

	info, err := pc.FetchPool(context.Background(), testSolMint, testUsdcMint, 64)
	require.NoError(t, err)

	assert.Equal(t, fx.pool, info.Address)
	assert.False(t, info.Initialized)
	assert.Nil(t, info.State)

	// synthesized from the fee tier and config defaults
	assert.Equal(t, uint16(3000), info.FeeRate)
	assert.Equal(t, uint16(300), info.ProtocolFeeRate)
	assert.Equal(t, uint16(64), info.TickSpacing)
}

func TestFetchPoolMissingMint(t *testing.T) {
	fx := newPoolFixture(t, false)
	delete(fx.reader.accounts, testUsdcMint)
	pc := newTestClient(t, fx.reader, solanago.NewWallet().PublicKey(), WrappingNone)

	_, err := pc.FetchPool(context.Background(), testSolMint, testUsdcMint, 64)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestIsPoolExist(t *testing.T) {
	fx := newPoolFixture(t, true)
	pc := newTestClient(t, fx.reader, solanago.NewWallet().PublicKey(), WrappingNone)

	exists, err := pc.IsPoolExist(context.Background(), fx.pool)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = pc.IsPoolExist(context.Background(), solanago.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFetchWhirlpoolState(t *testing.T) {
	fx := newPoolFixture(t, true)
	pc := newTestClient(t, fx.reader, solanago.NewWallet().PublicKey(), WrappingNone)

	state, err := pc.FetchWhirlpoolState(context.Background(), fx.pool)
	require.NoError(t, err)
	assert.Equal(t, testSolMint, state.TokenMintA)
	assert.Equal(t, uint16(64), state.TickSpacing)

	_, err = pc.FetchWhirlpoolState(context.Background(), solanago.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrPoolNotFound)

	// an existing account of the wrong type is a decode failure, not a miss
	_, err = pc.FetchWhirlpoolState(context.Background(), fx.feeTier)
	assert.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestFetchFeeTierState(t *testing.T) {
	fx := newPoolFixture(t, false)
	pc := newTestClient(t, fx.reader, solanago.NewWallet().PublicKey(), WrappingNone)

	tier, err := pc.FetchFeeTierState(context.Background(), fx.feeTier)
	require.NoError(t, err)
	assert.Equal(t, uint16(3000), tier.DefaultFeeRate)
}
