package helpers

import (
	"context"
	"encoding/binary"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendTLV(data []byte, typ uint16, value []byte) []byte {
	header := make([]byte, 4)
	binary.LittleEndian.PutUint16(header[0:2], typ)
	binary.LittleEndian.PutUint16(header[2:4], uint16(len(value)))
	return append(append(data, header...), value...)
}

func transferFeeConfigValue(authority solanago.PublicKey, withheld uint64, older, newer TransferFee) []byte {
	value := make([]byte, transferFeeConfigLen)
	copy(value[0:32], authority.Bytes())
	// withdraw withheld authority stays all-zero, meaning none
	binary.LittleEndian.PutUint64(value[64:72], withheld)
	putTransferFee(value[72:90], older)
	putTransferFee(value[90:108], newer)
	return value
}

func putTransferFee(b []byte, fee TransferFee) {
	binary.LittleEndian.PutUint64(b[0:8], fee.Epoch)
	binary.LittleEndian.PutUint64(b[8:16], fee.MaxFee)
	binary.LittleEndian.PutUint16(b[16:18], fee.FeeBps)
}

func token2022MintData(t *testing.T, decimals uint8, extensions func([]byte) []byte) []byte {
	t.Helper()
	data := mintData(t, decimals)
	data = append(data, make([]byte, accountTypeOffset-len(data))...)
	data = append(data, accountTypeMint)
	return extensions(data)
}

func TestParseTransferFeeConfigExtension(t *testing.T) {
	authority := solanago.NewWallet().PublicKey()
	older := TransferFee{Epoch: 0, MaxFee: 5000, FeeBps: 100}
	newer := TransferFee{Epoch: 5, MaxFee: 9000, FeeBps: 300}

	data := token2022MintData(t, 6, func(data []byte) []byte {
		return appendTLV(data, ExtTransferFeeConfig, transferFeeConfigValue(authority, 777, older, newer))
	})

	ext, err := parseToken2022Extensions(data)
	require.NoError(t, err)
	require.NotNil(t, ext.TransferFeeConfig)

	cfg := ext.TransferFeeConfig
	require.NotNil(t, cfg.TransferFeeConfigAuthority)
	assert.Equal(t, authority, *cfg.TransferFeeConfigAuthority)
	assert.Nil(t, cfg.WithdrawWithheldAuthority)
	assert.Equal(t, uint64(777), cfg.WithheldAmount)
	assert.Equal(t, older, cfg.Older)
	assert.Equal(t, newer, cfg.Newer)

	assert.Equal(t, older, cfg.FeeForEpoch(4))
	assert.Equal(t, newer, cfg.FeeForEpoch(5))
	assert.Equal(t, newer, cfg.FeeForEpoch(6))
}

func TestParseTransferFeeConfigTruncated(t *testing.T) {
	data := token2022MintData(t, 6, func(data []byte) []byte {
		return appendTLV(data, ExtTransferFeeConfig, make([]byte, 40))
	})

	_, err := parseToken2022Extensions(data)
	assert.Error(t, err)
}

func TestParseTransferHookExtension(t *testing.T) {
	data := token2022MintData(t, 6, func(data []byte) []byte {
		return appendTLV(data, ExtTransferHook, make([]byte, 64))
	})

	ext, err := parseToken2022Extensions(data)
	require.NoError(t, err)
	assert.True(t, ext.HasTransferHook)
	assert.Nil(t, ext.TransferFeeConfig)
}

func TestGetMultipleTokenInfoToken2022TransferFee(t *testing.T) {
	authority := solanago.NewWallet().PublicKey()
	older := TransferFee{Epoch: 0, MaxFee: 5000, FeeBps: 100}
	newer := TransferFee{Epoch: 5, MaxFee: 9000, FeeBps: 300}

	mint := solanago.NewWallet().PublicKey()
	data := token2022MintData(t, 6, func(data []byte) []byte {
		data = appendTLV(data, ExtTransferFeeConfig, transferFeeConfigValue(authority, 0, older, newer))
		return appendTLV(data, ExtTransferHook, make([]byte, 64))
	})

	reader := &stubReader{
		accounts: map[solanago.PublicKey]*rpc.Account{
			mint: {
				Owner: solanago.Token2022ProgramID,
				Data:  rpc.DataBytesOrJSONFromBytes(data),
			},
		},
		epoch: 5,
	}

	infos, err := GetMultipleTokenInfo(context.Background(), reader, []solanago.PublicKey{mint}, rpc.CommitmentFinalized)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, uint8(6), info.Decimals)
	assert.True(t, info.HasTransferFee)
	assert.True(t, info.HasTransferHook)
	assert.Equal(t, uint16(300), info.BasisPoints)
	assert.Equal(t, uint64(9000), info.MaximumFee.Uint64())
}
