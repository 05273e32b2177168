package rlbwt

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/alphabet"
	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movetable"
)

// RLBWTToInvPhi computes the run partition of Φ⁻¹ (spec §4.5 steps 1-4)
// from an RLBWT given as run heads and run lengths: Φ⁻¹(i) = SA[SA⁻¹(i)+1],
// sampled at BWT run boundaries. It walks an internal LF structure once
// over the whole text.
func RLBWTToInvPhi(heads []byte, lengths []uint64, alph alphabet.Alphabet) (invPhiLengths, invPhiIntervalPerm []uint64, n uint64) {
	lf := LF(heads, lengths, alph)
	tbl := lf.Table()
	m := lf.Runs()
	n = lf.Size()

	runHeadSaSamples := make([]uint64, m)
	moveRunToInvPhi := make([]int, m)
	invPhiLengths = make([]uint64, m)

	sa := n - 1
	lastSample := n
	curr := m - 1
	pos := lf.First()
	for i := uint64(0); i < n; i++ {
		interval, offset := pos.Interval, pos.Offset
		length := tbl.GetLength(interval)
		isTail := offset == length-1 &&
			(interval == tbl.Rows()-1 || tbl.GetCharacter(interval) != tbl.GetCharacter(interval+1))
		isHead := offset == 0 &&
			(interval == 0 || tbl.GetCharacter(interval-1) != tbl.GetCharacter(interval))
		if isTail {
			invPhiLengths[curr] = lastSample - sa
			moveRunToInvPhi[interval] = curr
			lastSample = sa
			curr--
		}
		if isHead {
			runHeadSaSamples[interval] = sa
		}
		sa--
		pos = lf.Step(pos)
	}

	invPhiIntervalPerm = make([]uint64, m)
	for i := 0; i < m; i++ {
		invPhiIntervalPerm[moveRunToInvPhi[(i-1+m)%m]] = runHeadSaSamples[i]
	}
	return invPhiLengths, invPhiIntervalPerm, n
}

// RLBWTToPhi computes the run partition of Φ (spec §4.5 steps 1-4),
// Φ(i) = SA[SA⁻¹(i)-1], mirroring RLBWTToInvPhi with run heads/tails
// swapped. As there, samples arrive in descending SA order, so curr fills
// the partition from the last interval backward.
func RLBWTToPhi(heads []byte, lengths []uint64, alph alphabet.Alphabet) (phiLengths, phiIntervalPerm []uint64, n uint64) {
	lf := LF(heads, lengths, alph)
	tbl := lf.Table()
	m := lf.Runs()
	n = lf.Size()

	runTailSaSamples := make([]uint64, m)
	moveRunToPhi := make([]int, m)
	phiLengths = make([]uint64, m)

	sa := n - 1
	lastSample := n
	curr := m - 1
	pos := lf.First()
	for i := uint64(0); i < n; i++ {
		interval, offset := pos.Interval, pos.Offset
		length := tbl.GetLength(interval)
		isTail := offset == length-1 &&
			(interval == tbl.Rows()-1 || tbl.GetCharacter(interval) != tbl.GetCharacter(interval+1))
		isHead := offset == 0 &&
			(interval == 0 || tbl.GetCharacter(interval-1) != tbl.GetCharacter(interval))
		if isHead {
			phiLengths[curr] = lastSample - sa
			moveRunToPhi[interval] = curr
			lastSample = sa
			curr--
		}
		if isTail {
			runTailSaSamples[interval] = sa
		}
		sa--
		pos = lf.Step(pos)
	}

	phiIntervalPerm = make([]uint64, m)
	for i := 0; i < m; i++ {
		phiIntervalPerm[moveRunToPhi[(i+1)%m]] = runTailSaSamples[i]
	}
	return phiLengths, phiIntervalPerm, n
}

func moveOptionsFrom(o options) []move.Option {
	opts := []move.Option{move.WithMode(movetable.Absolute)}
	if o.splitCap != 0 {
		opts = append(opts, move.WithSplitCap(o.splitCap))
	}
	if o.aligned {
		opts = append(opts, move.WithAligned())
	}
	return opts
}

// BuildInvPhi builds Φ⁻¹ as an absolute-mode move.MoveStructure from an
// already-computed run partition (the "Φ/Φ⁻¹" entry of spec §6's
// constructor table). SA(pos) = pos.Idx (spec §4.5 step 5).
func BuildInvPhi(lengths, intervalPerm []uint64, n uint64, opts ...Option) *move.MoveStructure {
	return move.Build(lengths, intervalPerm, n, moveOptionsFrom(makeOptions(opts...))...)
}

// BuildPhi builds Φ as an absolute-mode move.MoveStructure from an
// already-computed run partition.
func BuildPhi(lengths, intervalPerm []uint64, n uint64, opts ...Option) *move.MoveStructure {
	return move.Build(lengths, intervalPerm, n, moveOptionsFrom(makeOptions(opts...))...)
}

// InvPhi builds Φ⁻¹ directly from an RLBWT (bwt_heads, bwt_run_lengths),
// combining RLBWTToInvPhi and BuildInvPhi.
func InvPhi(heads []byte, lengths []uint64, alph alphabet.Alphabet, opts ...Option) *move.MoveStructure {
	if len(heads) != len(lengths) {
		log.Panicf("rlbwt.InvPhi: len(heads)=%d != len(lengths)=%d", len(heads), len(lengths))
	}
	invPhiLengths, invPhiIntervalPerm, n := RLBWTToInvPhi(heads, lengths, alph)
	return BuildInvPhi(invPhiLengths, invPhiIntervalPerm, n, opts...)
}

// Phi builds Φ directly from an RLBWT, combining RLBWTToPhi and BuildPhi.
func Phi(heads []byte, lengths []uint64, alph alphabet.Alphabet, opts ...Option) *move.MoveStructure {
	if len(heads) != len(lengths) {
		log.Panicf("rlbwt.Phi: len(heads)=%d != len(lengths)=%d", len(heads), len(lengths))
	}
	phiLengths, phiIntervalPerm, n := RLBWTToPhi(heads, lengths, alph)
	return BuildPhi(phiLengths, phiIntervalPerm, n, opts...)
}
