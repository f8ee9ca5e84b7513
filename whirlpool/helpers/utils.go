package helpers

import (
	"bytes"
	"crypto/sha256"
	"reflect"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Filter narrows a program account scan by a pubkey at a struct offset.
type Filter struct {
	Key    solana.PublicKey
	Offset uint64
}

func discriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}

// ComputeStructOffset gets the offset position of a field in a borsh
// encoded account, discriminator included.
func ComputeStructOffset(x any, o string) uint64 {
	t := reflect.TypeOf(x).Elem()
	fields := make([]reflect.StructField, 0)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == o {
			break
		}
		fields = append(fields, f)
	}

	newType := reflect.StructOf(fields)
	newValue := reflect.New(newType).Elem()

	buf := new(bytes.Buffer)
	enc := binary.NewBorshEncoder(buf)
	enc.Encode(newValue.Interface())

	return uint64(buf.Len()) + 8
}

// CreateProgramAccountFilter builds the memcmp filter set for scanning
// one account type, optionally narrowed by a pubkey field.
func CreateProgramAccountFilter(key string, extra ...Filter) []rpc.RPCFilter {
	filters := []rpc.RPCFilter{{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: 0,
			Bytes:  discriminator(key),
		},
	}}
	for _, f := range extra {
		filters = append(filters, rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: f.Offset,
				Bytes:  f.Key[:],
			},
		})
	}
	return filters
}
