// +build amd64

package packed

import "unsafe"

// loadWord64 reads 8 bytes starting at data[byteIndex] as a little-endian
// uint64, via an unaligned word load. The caller guarantees
// byteIndex+8 <= len(data); Matrix and AlignedMatrix reserve 8 bytes of
// padding at the end of every buffer so this is always safe even when the
// logical row data ends mid-word.
func loadWord64(data []byte, byteIndex int) uint64 {
	return *(*uint64)(unsafe.Pointer(&data[byteIndex]))
}

// storeWord64 writes v as a little-endian uint64 starting at
// data[byteIndex], via an unaligned word store. Same padding guarantee as
// loadWord64.
func storeWord64(data []byte, byteIndex int, v uint64) {
	*(*uint64)(unsafe.Pointer(&data[byteIndex])) = v
}
