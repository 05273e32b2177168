package runperm

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movesplit"
	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/packed"
)

// StorageMode selects where user-column data lives (spec §4.5).
type StorageMode int

const (
	// Integrated widens the Move Structure's own packed rows with user
	// columns: better cache locality when every step reads user data.
	Integrated StorageMode = iota
	// Separated holds user columns in a second, parallel packed table
	// aligned row-for-row with the Move Structure. Better when user data
	// is rarely read.
	Separated
)

type options struct {
	mode     movetable.Mode
	splitCap uint64
	aligned  bool
	storage  StorageMode
	splitCB  movesplit.SplitCallback
}

// Option configures RunPerm construction.
type Option func(*options)

// WithMode selects the representation mode (spec §3). Default Relative.
func WithMode(mode movetable.Mode) Option { return func(o *options) { o.mode = mode } }

// WithSplitCap applies the length-capping splitter (spec §4.4) before
// building. A zero cap (the default) disables splitting.
func WithSplitCap(cap uint64) Option { return func(o *options) { o.splitCap = cap } }

// WithSplitCallback supplies the per-sub-run user-data recomputation
// callback movesplit.SplitRunData accepts. If unset, sub-run data is
// duplicated from the original run (spec §4.4).
func WithSplitCallback(cb movesplit.SplitCallback) Option {
	return func(o *options) { o.splitCB = cb }
}

// WithAligned selects packed.AlignedMatrix as the backing store.
func WithAligned() Option { return func(o *options) { o.aligned = true } }

// WithStorage selects Integrated or Separated user-column storage.
// Default Integrated.
func WithStorage(storage StorageMode) Option { return func(o *options) { o.storage = storage } }

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

// RunPerm is a Move Structure with caller-defined per-run data columns
// attached (spec §4.5, C5's generic half).
type RunPerm struct {
	ms         *move.MoveStructure
	storage    StorageMode
	userWidths []int
	userTable  packed.Table // non-nil only when storage == Separated
}

// Build validates and constructs a RunPerm over (lengths, permutation, n),
// attaching one run-data row per original run. runData[i] holds the per-run
// user values for original run i; every row must have the same length. Each
// user column's bit width is chosen as the bit width of the maximum value
// observed in that column across all rows (spec §3), the same way
// move.Build derives its own base-column widths from observed maxima. Build
// panics (as move.Build does) on any structural invariant violation.
func Build(lengths, permutation []uint64, n uint64, runData [][]uint64, opts ...Option) *RunPerm {
	if len(lengths) != len(permutation) {
		log.Panicf("runperm.Build: len(lengths)=%d != len(permutation)=%d", len(lengths), len(permutation))
	}
	if len(runData) != len(lengths) {
		log.Panicf("runperm.Build: len(runData)=%d != len(lengths)=%d", len(runData), len(lengths))
	}
	k := 0
	if len(runData) > 0 {
		k = len(runData[0])
	}
	for i, row := range runData {
		if len(row) != k {
			log.Panicf("runperm.Build: run %d has %d user values, want %d", i, len(row), k)
		}
	}
	userWidths := make([]int, k)
	for j := range userWidths {
		var maxVal uint64
		for _, row := range runData {
			if row[j] > maxVal {
				maxVal = row[j]
			}
		}
		userWidths[j] = bitWidthForMax(maxVal)
	}
	o := makeOptions(opts...)
	r := len(lengths)

	splitLengths, splitPermutation, splitRunData := lengths, permutation, runData
	maxLength := maxUint64(lengths)
	if o.splitCap != 0 {
		splitLengths, splitPermutation, splitRunData, maxLength =
			movesplit.SplitRunData(lengths, permutation, o.splitCap, runData, o.splitCB)
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

	rp := &RunPerm{storage: o.storage, userWidths: append([]int(nil), userWidths...)}

	baseWidths := []int{wPrimary, wPointer, wOffset}
	allocate := func(widths []int) packed.Table {
		if o.aligned {
			return packed.NewAligned(m, widths)
		}
		return packed.New(m, widths)
	}

	var tbl *movetable.Table
	switch o.storage {
	case Integrated:
		widths := append(append([]int(nil), baseWidths...), userWidths...)
		mat := allocate(widths)
		move.PopulateBase(mat, o.mode, splitLengths, splitPermutation, n)
		for row, data := range splitRunData {
			for j, v := range data {
				mat.Set(row, len(baseWidths)+j, v)
			}
		}
		tbl = movetable.New(mat, o.mode, n, false, len(userWidths))
	case Separated:
		mat := allocate(baseWidths)
		move.PopulateBase(mat, o.mode, splitLengths, splitPermutation, n)
		tbl = movetable.New(mat, o.mode, n, false, 0)
		userMat := allocate(userWidths)
		for row, data := range splitRunData {
			userMat.SetRow(row, data)
		}
		rp.userTable = userMat
	default:
		log.Panicf("runperm.Build: unknown storage mode %d", o.storage)
	}

	rp.ms = move.FromTable(tbl, n, r, o.aligned)
	return rp
}
