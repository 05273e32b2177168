package rlbwt

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/alphabet"
)

// clampCode applies the LF-only clamp rule of spec §9: codes at or below
// termCode collapse to termCode, and codes above termCode but at or below
// sepCode collapse to sepCode.
func clampCode(code, termCode, sepCode uint64) uint64 {
	switch {
	case code <= termCode:
		return termCode
	case code <= sepCode:
		return sepCode
	default:
		return code
	}
}

// terminatedAlphabet is implemented by alphabets that designate a
// terminator and separator code (currently alphabet.Nucleotide); LF's
// clamp rule only applies when the alphabet in use has this concept.
type terminatedAlphabet interface {
	TerminatorCode() uint64
	SeparatorCode() uint64
}

// LF builds the LF permutation (spec §4.5): given the RLBWT's run
// heads and run lengths, LF(i) maps a position in the L column (the BWT)
// to its corresponding position in F (sorted(L)).
func LF(heads []byte, lengths []uint64, alph alphabet.Alphabet, opts ...Option) *Sequence {
	if len(heads) != len(lengths) {
		log.Panicf("rlbwt.LF: len(heads)=%d != len(lengths)=%d", len(heads), len(lengths))
	}
	if len(heads) == 0 {
		log.Panicf("rlbwt.LF: at least one run is required")
	}
	r := len(lengths)
	sigma := alph.Size()

	mapped := make([]uint64, r)
	ta, clamps := alph.(terminatedAlphabet)
	for i, h := range heads {
		code := alph.Map(h)
		if clamps {
			code = clampCode(code, ta.TerminatorCode(), ta.SeparatorCode())
		}
		mapped[i] = code
	}

	// Step 1: C[c] = count of BWT characters strictly less than c.
	counts := make([]uint64, sigma)
	for i := 0; i < r; i++ {
		counts[mapped[i]] += lengths[i]
	}
	C := make([]uint64, sigma)
	var running uint64
	for c := 0; c < sigma; c++ {
		C[c] = running
		running += counts[c]
	}

	// Step 2: head_rank[i] = earlier occurrences of h_i, counted in
	// run-lengths, in original run order.
	headRank := make([]uint64, r)
	seen := make([]uint64, sigma)
	for i := 0; i < r; i++ {
		headRank[i] = seen[mapped[i]]
		seen[mapped[i]] += lengths[i]
	}

	// Step 3.
	intervalPerm := make([]uint64, r)
	for i := 0; i < r; i++ {
		intervalPerm[i] = C[mapped[i]] + headRank[i]
	}

	n := sumUint64(lengths)
	o := makeOptions(opts...)
	ms := buildSequence(lengths, intervalPerm, mapped, sigma, n, o)
	return &Sequence{MoveStructure: ms, alph: alph}
}
