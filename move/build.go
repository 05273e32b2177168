package move

import (
	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/internal/posset"
	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/packed"
)

// bitWidthForCount returns the number of bits needed to represent any value
// in [0, n), i.e. ceil(log2(n)), with a floor of 1 (packed.MaxWidth caps the
// other end).
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

// bitWidthForMax returns the number of bits needed to represent any value
// in [0, maxVal] inclusive.
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

// permEntry is the llrb.Comparable wrapper used to compute the sorting
// permutation σ of spec §4.3 build step 1. Using an ordered tree rather
// than sort.Slice mirrors how cmd/bio-bam-sort/sorter orders records via
// biogo/store/llrb.
type permEntry struct {
	value uint64
	idx   int
}

// Compare implements llrb.Comparable.
func (e *permEntry) Compare(other llrb.Comparable) int {
	o := other.(*permEntry)
	switch {
	case e.value < o.value:
		return -1
	case e.value > o.value:
		return 1
	default:
		return 0
	}
}

// sortIndicesByPermutation returns σ such that permutation[σ(0)] <
// permutation[σ(1)] < ... It also validates, in the same walk, that the
// values are distinct and that the runs they address (given their
// lengths) tile [0, n) exactly with no gap or overlap — spec §7's
// "duplicate or missing π values" structural invariant.
func sortIndicesByPermutation(lengths, permutation []uint64, n uint64) []int {
	m := len(permutation)
	dup := posset.New(m)
	tree := &llrb.Tree{}
	for i, v := range permutation {
		if dup.Insert(v) {
			log.Panicf("move.Build: duplicate permutation value %d (row %d)", v, i)
		}
		tree.Insert(&permEntry{value: v, idx: i})
	}
	sigma := make([]int, 0, m)
	var expected uint64
	first := true
	tree.Do(func(c llrb.Comparable) bool {
		e := c.(*permEntry)
		if !first && e.value != expected {
			log.Panicf("move.Build: permutation has a gap or overlap at value %d, expected %d", e.value, expected)
		}
		first = false
		expected = e.value + lengths[e.idx]
		sigma = append(sigma, e.idx)
		return false
	})
	if !first && expected != n {
		log.Panicf("move.Build: permutation covers [0,%d) but domain is [0,%d)", expected, n)
	}
	return sigma
}

// PopulateBase executes spec §4.3's build algorithm, writing the
// primary/pointer/offset columns of mat (columns movetable.ColPrimary,
// ColPointer, ColOffset) for the run partition (lengths, permutation) of
// domain size n. mat must already be allocated with at least those three
// columns; mode selects whether the primary column stores length or start.
//
// Callers that need extra columns (RLBWT CHARACTER, RunPerm user columns)
// allocate a wider matrix and call PopulateBase before filling the rest,
// so the same build pass serves move.Build, runperm.RunPerm, and the RLBWT
// specializations.
func PopulateBase(mat packed.Table, mode movetable.Mode, lengths, permutation []uint64, n uint64) {
	m := len(lengths)
	if len(permutation) != m {
		log.Panicf("move.PopulateBase: len(lengths)=%d != len(permutation)=%d", m, len(permutation))
	}
	if mat.Rows() != m {
		log.Panicf("move.PopulateBase: matrix has %d rows, want %d", mat.Rows(), m)
	}
	sigma := sortIndicesByPermutation(lengths, permutation, n)

	startVal := uint64(0)
	sortItr := 0
	for k := 0; k < m; k++ {
		tblIdx := k
		if mode == movetable.Relative {
			mat.Set(tblIdx, movetable.ColPrimary, lengths[k])
		} else {
			mat.Set(tblIdx, movetable.ColPrimary, startVal)
		}
		for sortItr < m && permutation[sigma[sortItr]] < startVal+lengths[k] {
			row := sigma[sortItr]
			mat.Set(row, movetable.ColPointer, uint64(tblIdx))
			mat.Set(row, movetable.ColOffset, permutation[sigma[sortItr]]-startVal)
			sortItr++
		}
		startVal += lengths[k]
	}
}
