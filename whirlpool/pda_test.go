package whirlpool

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testConfig   = solanago.MustPublicKeyFromBase58("2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ")
	testSolMint  = solanago.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	testUsdcMint = solanago.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

func TestOrderMints(t *testing.T) {
	a, b := OrderMints(testSolMint, testUsdcMint)
	assert.Equal(t, testSolMint, a)
	assert.Equal(t, testUsdcMint, b)

	a, b = OrderMints(testUsdcMint, testSolMint)
	assert.Equal(t, testSolMint, a)
	assert.Equal(t, testUsdcMint, b)
}

func TestMintsInCanonicalOrder(t *testing.T) {
	assert.True(t, MintsInCanonicalOrder(testSolMint, testUsdcMint))
	assert.False(t, MintsInCanonicalOrder(testUsdcMint, testSolMint))
	assert.False(t, MintsInCanonicalOrder(testSolMint, testSolMint))
}

func TestDeriveWhirlpoolAddress(t *testing.T) {
	// the mainnet SOL/USDC pool at tick spacing 64
	pool, err := DeriveWhirlpoolAddress(testConfig, testSolMint, testUsdcMint, 64)
	require.NoError(t, err)
	assert.Equal(t, "HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ", pool.String())
}

func TestDeriveFeeTierAddress(t *testing.T) {
	feeTier, err := DeriveFeeTierAddress(testConfig, 64)
	require.NoError(t, err)
	assert.Equal(t, "HT55NVGVTjWmWLjV7BrSMPVZ7ppU8T2xE5nCAZ6YaGad", feeTier.String())
}

func TestDeriveTickArrayAddress(t *testing.T) {
	pool := solanago.MustPublicKeyFromBase58("HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ")
	tickArray, err := DeriveTickArrayAddress(pool, -443584)
	require.NoError(t, err)
	assert.Equal(t, "HawRxYzq11YWNbNZJSB2J7ouSjutzaWWsHszi8xJxHmh", tickArray.String())
}

func TestDeriveOracleAddress(t *testing.T) {
	pool := solanago.MustPublicKeyFromBase58("HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ")
	oracle, err := DeriveOracleAddress(pool)
	require.NoError(t, err)
	assert.Equal(t, "4GkRbcYg1VKsZropgai4dMf2Nj2PkXNLf43knFpavrSi", oracle.String())
}

func TestDeriveConfigExtensionAddress(t *testing.T) {
	extension, err := DeriveConfigExtensionAddress(testConfig)
	require.NoError(t, err)
	assert.Equal(t, "777H5H3Tp9U11uRVRzFwM8BinfiakbaLT8vQpeuhvEiH", extension.String())
}

func TestDerivePositionAddress(t *testing.T) {
	mint := solanago.MustPublicKeyFromBase58("8z6qRbnqxcAYzXcznDM3ywMvm4ZwPsFTVc4LL4BR7Ses")
	position, err := DerivePositionAddress(mint)
	require.NoError(t, err)
	assert.Equal(t, "3oVfT3r3y5tNhfZHTiw4j77r2tXR72gQATY1wAAkJStS", position.String())
}

func TestDerivePositionBundleAddress(t *testing.T) {
	mint := solanago.MustPublicKeyFromBase58("8z6qRbnqxcAYzXcznDM3ywMvm4ZwPsFTVc4LL4BR7Ses")
	bundle, err := DerivePositionBundleAddress(mint)
	require.NoError(t, err)
	assert.Equal(t, "BiUErfkb31gL67Lwfeh1dJ4tHXfJAs1KMCbqJvF1pY1M", bundle.String())
}

func TestDeriveTokenBadgeAddress(t *testing.T) {
	extension, err := DeriveConfigExtensionAddress(testConfig)
	require.NoError(t, err)
	badge, err := DeriveTokenBadgeAddress(extension, testSolMint)
	require.NoError(t, err)
	assert.Equal(t, "FiFJrSkNJtqS2XRTgPdZxWD9MLnKnc2rh7ipMLCcVmAJ", badge.String())
}
