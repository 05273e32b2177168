// +build !amd64

package packed

import "encoding/binary"

// loadWord64 is the portable counterpart of the amd64 unaligned-load path:
// it composes 8 bytes via encoding/binary instead of an unsafe pointer cast.
// See the amd64 file for the shared contract.
func loadWord64(data []byte, byteIndex int) uint64 {
	return binary.LittleEndian.Uint64(data[byteIndex : byteIndex+8])
}

// storeWord64 is the portable counterpart of the amd64 unaligned-store path.
func storeWord64(data []byte, byteIndex int, v uint64) {
	binary.LittleEndian.PutUint64(data[byteIndex:byteIndex+8], v)
}
