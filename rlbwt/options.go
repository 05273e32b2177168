package rlbwt

import "github.com/grailbio/runperm/movetable"

// ClampLF documents, as a named constant rather than inferred behavior,
// that LF's build clamps character codes c <= Terminator to Terminator and
// Terminator < c <= Separator to Separator, while FL's build does not
// (spec §9: "specify one rule... clamp only the LF-build path, leave the
// FL path untouched, and document both").
const ClampLF = true

type options struct {
	mode     movetable.Mode
	splitCap uint64
	aligned  bool
}

// Option configures LF/FL/Phi/InvPhi construction.
type Option func(*options)

// WithMode selects the representation mode (spec §3). LF/FL default to
// Relative; Phi/InvPhi always build in Absolute mode regardless of this
// option, since SA(pos) = pos.Idx requires it (spec §4.5 step 5).
func WithMode(mode movetable.Mode) Option { return func(o *options) { o.mode = mode } }

// WithSplitCap applies the length-capping splitter (spec §4.4) before
// building.
func WithSplitCap(cap uint64) Option { return func(o *options) { o.splitCap = cap } }

// WithAligned selects packed.AlignedMatrix as the backing store.
func WithAligned() Option { return func(o *options) { o.aligned = true } }

func makeOptions(opts ...Option) options {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func bitWidthForCount(n uint64) int {
	if n <= 1 {
		return 1
	}
	w := 0
	for c := n - 1; c > 0; c >>= 1 {
		w++
	}
	return w
}

func bitWidthForMax(maxVal uint64) int {
	if maxVal == 0 {
		return 1
	}
	w := 0
	for v := maxVal; v > 0; v >>= 1 {
		w++
	}
	return w
}

func maxUint64(vs []uint64) uint64 {
	var m uint64
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}

func sumUint64(vs []uint64) uint64 {
	var s uint64
	for _, v := range vs {
		s += v
	}
	return s
}
