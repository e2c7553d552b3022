package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
)

// RandBytes fills data with bytes from the CSPRNG
func RandBytes(data []byte) {
	if _, err := io.ReadFull(rand.Reader, data); err != nil {
		panic(err)
	}
}

// RandUint32 returns a uniformly distributed uint32 from the CSPRNG
func RandUint32() uint32 {
	var b [4]byte
	RandBytes(b[:])
	return binary.BigEndian.Uint32(b[:])
}

// RandRange returns a uniformly distributed integer in [min, max].
func RandRange(min, max uint32) uint32 {
	if max <= min {
		return min
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min)+1))
	if err != nil {
		panic(err)
	}
	return min + uint32(n.Uint64())
}
