package movesplit

import "github.com/grailbio/base/log"

// SplitCallback recomputes user run-data for a sub-run produced by Split.
// origInterval is the index of the original (pre-split) run; origLength is
// its length; newOffset is the sub-run's offset within the original run;
// newLength is the sub-run's length. The signature matches the reference
// implementation's stable callback contract (spec §9).
type SplitCallback func(origInterval int, origLength, newOffset, newLength uint64) []uint64

// Split rewrites (lengths, permutation) so that no run exceeds cap,
// preserving the permutation the runs describe (spec §4.4). cap must be
// positive; a zero cap is a precondition violation, not silently ignored.
//
// BalancingFactor, a second splitting knob declared in the reference
// implementation, is not accepted here: per spec §9 its behavior there was
// a no-op stub, so this package specifies length-capping only.
func Split(lengths, permutation []uint64, cap uint64) (newLengths, newPermutation []uint64, maxLength uint64) {
	if cap == 0 {
		log.Panicf("movesplit.Split: cap must be positive")
	}
	if len(lengths) != len(permutation) {
		log.Panicf("movesplit.Split: len(lengths)=%d != len(permutation)=%d", len(lengths), len(permutation))
	}
	n := 0
	for _, l := range lengths {
		n += int((l + cap - 1) / cap)
	}
	newLengths = make([]uint64, 0, n)
	newPermutation = make([]uint64, 0, n)
	for i, l := range lengths {
		v := permutation[i]
		remaining := l
		off := uint64(0)
		for remaining > 0 {
			sub := cap
			if remaining < sub {
				sub = remaining
			}
			newLengths = append(newLengths, sub)
			newPermutation = append(newPermutation, v+off)
			if sub > maxLength {
				maxLength = sub
			}
			off += sub
			remaining -= sub
		}
	}
	if maxLength == 0 {
		// No runs at all is a degenerate but not fatal input; callers that
		// feed an empty structure through move.Build will fail its own Σ
		// lengths = n check instead.
		for _, l := range lengths {
			if l > maxLength {
				maxLength = l
			}
		}
	}
	return newLengths, newPermutation, maxLength
}

// SplitRunData is Split plus per-run user-data propagation: cb is invoked
// once per emitted sub-run to compute its run-data row. If cb is nil, the
// original run's row is duplicated across all of its sub-runs, which is the
// cheaper default spec §4.4 allows when per-run data doesn't depend on the
// sub-run's offset or length.
func SplitRunData(lengths, permutation []uint64, cap uint64, runData [][]uint64, cb SplitCallback) (newLengths, newPermutation []uint64, newRunData [][]uint64, maxLength uint64) {
	if len(runData) != len(lengths) {
		log.Panicf("movesplit.SplitRunData: len(runData)=%d != len(lengths)=%d", len(runData), len(lengths))
	}
	if cap == 0 {
		log.Panicf("movesplit.SplitRunData: cap must be positive")
	}
	for i, l := range lengths {
		remaining := l
		off := uint64(0)
		for remaining > 0 {
			sub := cap
			if remaining < sub {
				sub = remaining
			}
			newLengths = append(newLengths, sub)
			newPermutation = append(newPermutation, permutation[i]+off)
			if cb != nil {
				newRunData = append(newRunData, cb(i, l, off, sub))
			} else {
				row := append([]uint64(nil), runData[i]...)
				newRunData = append(newRunData, row)
			}
			if sub > maxLength {
				maxLength = sub
			}
			off += sub
			remaining -= sub
		}
	}
	return newLengths, newPermutation, newRunData, maxLength
}
