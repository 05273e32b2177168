// Package posset implements a small farm-hashed linear-probing set of
// uint64 values, used by move.Build to detect duplicate π values in
// expected O(r). Gaps, overlaps and out-of-range values are caught
// separately, by the sorted walk in move's sortIndicesByPermutation.
//
// This is a much-simplified relative of fusion.kmerIndex (which shards a
// farm-hashed table 256 ways and outlines overflow entries): since a
// move structure's row count r is always small relative to the sequencing
// workloads kmerIndex targets, one unsharded table with open addressing is
// enough, and slots hold plain uint64 keys rather than an unsafe-pointer
// arena.
package posset

import farm "github.com/dgryski/go-farm"

const emptySlot = ^uint64(0)

// Set is a fixed-capacity hash set of non-sentinel uint64 values. The zero
// Set is not usable; construct with New.
type Set struct {
	slots []uint64
	mask  uint64
}

// New returns a Set sized to hold at least n elements without excessive
// collision chains.
func New(n int) *Set {
	size := uint64(1)
	for size < uint64(n)*2+1 {
		size <<= 1
	}
	s := &Set{slots: make([]uint64, size), mask: size - 1}
	for i := range s.slots {
		s.slots[i] = emptySlot
	}
	return s
}

func hash(v uint64) uint64 {
	var buf [8]byte
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	buf[4] = byte(v >> 32)
	buf[5] = byte(v >> 40)
	buf[6] = byte(v >> 48)
	buf[7] = byte(v >> 56)
	return farm.Hash64(buf[:])
}

// Insert adds v to the set and reports whether v was already present.
func (s *Set) Insert(v uint64) (alreadyPresent bool) {
	if v == emptySlot {
		panic("posset: reserved sentinel value inserted")
	}
	idx := hash(v) & s.mask
	for {
		cur := s.slots[idx]
		if cur == emptySlot {
			s.slots[idx] = v
			return false
		}
		if cur == v {
			return true
		}
		idx = (idx + 1) & s.mask
	}
}

// Len reports how many distinct values have been inserted.
func (s *Set) Len() int {
	n := 0
	for _, v := range s.slots {
		if v != emptySlot {
			n++
		}
	}
	return n
}
