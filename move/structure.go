// Package move implements the Move Structure (spec §4.3, component C3): a
// run-compressed permutation over domain [0, n), stored as a
// movetable.Table, supporting O(1)-amortized forward stepping with
// fast-forward normalization.
package move

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/movesplit"
	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/packed"
)

// options configures Build. See Option constructors below.
type options struct {
	mode     movetable.Mode
	splitCap uint64 // 0 means "no splitting"
	aligned  bool
}

// Option configures MoveStructure construction.
type Option func(*options)

// WithMode selects the representation mode (spec §3). The default is
// Relative.
func WithMode(mode movetable.Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithSplitCap applies the length-capping splitter (spec §4.4) with the
// given cap before building. A zero cap (the default) disables splitting.
func WithSplitCap(cap uint64) Option {
	return func(o *options) { o.splitCap = cap }
}

// WithAligned selects packed.AlignedMatrix as the backing store instead of
// the default bit-packed packed.Matrix (spec §4.1).
func WithAligned() Option {
	return func(o *options) { o.aligned = true }
}

func makeOptions(opts ...Option) options {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// MoveStructure is a built, query-ready run-compressed permutation.
type MoveStructure struct {
	table           *movetable.Table
	n               uint64
	permutationRuns int // r, the run count before splitting
	aligned         bool
}

// Build validates (lengths, permutation) against domain n, optionally
// splits it, and constructs a MoveStructure (spec §4.3's Build). It panics
// on any structural invariant violation: Σlengths != n, mismatched
// slice lengths, or a permutation with duplicate/missing/overlapping
// values (spec §7).
func Build(lengths, permutation []uint64, n uint64, opts ...Option) *MoveStructure {
	if len(lengths) != len(permutation) {
		log.Panicf("move.Build: len(lengths)=%d != len(permutation)=%d", len(lengths), len(permutation))
	}
	if len(lengths) == 0 {
		log.Panicf("move.Build: at least one run is required")
	}
	var sum uint64
	for _, l := range lengths {
		sum += l
	}
	if sum != n {
		log.Panicf("move.Build: sum of lengths %d != domain size %d", sum, n)
	}
	o := makeOptions(opts...)
	r := len(lengths)

	splitLengths, splitPermutation := lengths, permutation
	maxLength := maxUint64(lengths)
	if o.splitCap != 0 {
		splitLengths, splitPermutation, maxLength = movesplit.Split(lengths, permutation, o.splitCap)
	}
	m := len(splitLengths)

	wPointer := bitWidthForCount(uint64(m))
	wOffset := bitWidthForMax(maxLength)
	var wPrimary int
	if o.mode == movetable.Absolute {
		wPrimary = bitWidthForCount(n)
	} else {
		wPrimary = bitWidthForMax(maxLength)
	}
	widths := []int{wPrimary, wPointer, wOffset}

	var mat packed.Table
	if o.aligned {
		mat = packed.NewAligned(m, widths)
	} else {
		mat = packed.New(m, widths)
	}
	PopulateBase(mat, o.mode, splitLengths, splitPermutation, n)

	tbl := movetable.New(mat, o.mode, n, false, 0)
	return &MoveStructure{table: tbl, n: n, permutationRuns: r, aligned: o.aligned}
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

// FromTable wraps an already-built movetable.Table (e.g. one produced by
// runperm or rlbwt, which allocate extra columns) as a MoveStructure.
// aligned records which packed.Table variant backs tbl, so Serialize can
// round-trip it.
func FromTable(tbl *movetable.Table, n uint64, permutationRuns int, aligned bool) *MoveStructure {
	return &MoveStructure{table: tbl, n: n, permutationRuns: permutationRuns, aligned: aligned}
}

// Table returns the backing movetable.Table view, for use by layers (e.g.
// runperm) that wrap additional columns around the same packed matrix.
func (s *MoveStructure) Table() *movetable.Table { return s.table }

// Aligned reports whether the backing packed matrix is the aligned
// (byte-rounded) variant rather than the default bit-packed one.
func (s *MoveStructure) Aligned() bool { return s.aligned }

// Mode returns the representation mode (spec §3) this structure was built
// with.
func (s *MoveStructure) Mode() movetable.Mode { return s.table.Mode() }

// Size returns the domain size n.
func (s *MoveStructure) Size() uint64 { return s.n }

// Runs returns m, the row count after any splitting.
func (s *MoveStructure) Runs() int { return s.table.Rows() }

// PermutationRuns returns r, the run count before splitting.
func (s *MoveStructure) PermutationRuns() int { return s.permutationRuns }

// First returns the position at the start of the domain.
func (s *MoveStructure) First() Position {
	p := Position{Interval: 0, Offset: 0}
	if s.table.Mode() == movetable.Absolute {
		p.Idx = 0
	}
	return p
}

// Last returns the position at the end of the domain.
func (s *MoveStructure) Last() Position {
	last := s.table.Rows() - 1
	p := Position{Interval: last, Offset: s.table.GetLength(last) - 1}
	if s.table.Mode() == movetable.Absolute {
		p.Idx = s.n - 1
	}
	return p
}

// GetLength returns the length of interval i.
func (s *MoveStructure) GetLength(interval int) uint64 { return s.table.GetLength(interval) }

// GetStart returns the absolute start index of interval i (absolute mode
// only); GetStart(Runs()) returns n.
func (s *MoveStructure) GetStart(interval int) uint64 { return s.table.GetStart(interval) }

// GetPointer returns the pointer column of interval i.
func (s *MoveStructure) GetPointer(interval int) uint64 { return s.table.GetPointer(interval) }

// GetOffset returns the offset column of interval i.
func (s *MoveStructure) GetOffset(interval int) uint64 { return s.table.GetOffset(interval) }

// Step advances pos by one under π (spec §4.3). It is the composition of a
// raw step (pointer/offset lookup) and fast-forward normalization.
func (s *MoveStructure) Step(pos Position) Position {
	return s.fastForward(s.rawStep(pos))
}

func (s *MoveStructure) rawStep(pos Position) Position {
	t := s.table
	if pos.Interval < 0 || pos.Interval >= t.Rows() {
		log.Panicf("move.Step: interval %d out of range [0, %d)", pos.Interval, t.Rows())
	}
	pointer := int(t.GetPointer(pos.Interval))
	offset := t.GetOffset(pos.Interval)
	if t.Mode() == movetable.Relative {
		return Position{Interval: pointer, Offset: offset + pos.Offset}
	}
	delta := offset + pos.Offset
	return Position{Interval: pointer, Offset: delta, Idx: t.GetStart(pointer) + delta}
}

// fastForward walks the cursor forward over subsequent intervals until
// offset < length(interval) holds again (spec §4.3). In absolute mode it
// uses the strict idx >= next-start comparison mandated by spec §9 (an
// earlier, rejected revision used <=).
func (s *MoveStructure) fastForward(pos Position) Position {
	t := s.table
	if t.Mode() == movetable.Relative {
		for pos.Offset >= t.GetLength(pos.Interval) {
			pos.Offset -= t.GetLength(pos.Interval)
			pos.Interval++
		}
		return pos
	}
	for pos.Idx >= t.GetStart(pos.Interval+1) {
		pos.Interval++
		pos.Offset = pos.Idx - t.GetStart(pos.Interval)
	}
	return pos
}
