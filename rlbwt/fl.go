package rlbwt

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/alphabet"
)

// FL builds the FL permutation (spec §4.5), the inverse of LF in the
// sense that, given a position in F, FL returns the corresponding
// position in L. Unlike LF, this path never clamps character codes
// (spec §9: "FL path untouched").
func FL(heads []byte, lengths []uint64, alph alphabet.Alphabet, opts ...Option) *Sequence {
	if len(heads) != len(lengths) {
		log.Panicf("rlbwt.FL: len(heads)=%d != len(lengths)=%d", len(heads), len(lengths))
	}
	if len(heads) == 0 {
		log.Panicf("rlbwt.FL: at least one run is required")
	}
	r := len(lengths)
	sigma := alph.Size()

	mapped := make([]uint64, r)
	origin := make([]uint64, r)
	var cum uint64
	for i := 0; i < r; i++ {
		mapped[i] = alph.Map(heads[i])
		origin[i] = cum
		cum += lengths[i]
	}
	n := cum

	type bucketEntry struct{ length, origin uint64 }
	buckets := make([][]bucketEntry, sigma)
	for i := 0; i < r; i++ {
		buckets[mapped[i]] = append(buckets[mapped[i]], bucketEntry{lengths[i], origin[i]})
	}

	fLengths := make([]uint64, 0, r)
	fIntervalPerm := make([]uint64, 0, r)
	fHeads := make([]uint64, 0, r)
	for code := 0; code < sigma; code++ {
		for _, e := range buckets[code] {
			fLengths = append(fLengths, e.length)
			fIntervalPerm = append(fIntervalPerm, e.origin)
			fHeads = append(fHeads, uint64(code))
		}
	}

	o := makeOptions(opts...)
	ms := buildSequence(fLengths, fIntervalPerm, fHeads, sigma, n, o)
	return &Sequence{MoveStructure: ms, alph: alph}
}
