package rlbwt

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/alphabet"
	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movesplit"
	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/packed"
)

// Sequence is a Move Structure carrying a CHARACTER column: the common
// shape of both LF and FL (spec §4.5).
type Sequence struct {
	*move.MoveStructure
	alph alphabet.Alphabet
}

// Character returns the alphabet-unmapped character stored for pos's
// interval.
func (s *Sequence) Character(pos move.Position) byte {
	return s.alph.Unmap(s.Table().GetCharacter(pos.Interval))
}

// Alphabet returns the alphabet this sequence's characters are mapped
// through.
func (s *Sequence) Alphabet() alphabet.Alphabet { return s.alph }

// buildSequence populates a CHARACTER-bearing move structure over
// (lengths, intervalPerm, headCodes), duplicating headCodes[i] across any
// sub-runs (lengths, intervalPerm) split into (spec §4.5 build step 5,
// "feed to the move structure").
func buildSequence(lengths, intervalPerm, headCodes []uint64, sigma int, n uint64, o options) *move.MoveStructure {
	r := len(lengths)
	splitLengths, splitIntervalPerm, splitHeads := lengths, intervalPerm, headCodes
	maxLength := maxUint64(lengths)
	if o.splitCap != 0 {
		runData := make([][]uint64, r)
		for i, h := range headCodes {
			runData[i] = []uint64{h}
		}
		sl, sp, srd, ml := movesplit.SplitRunData(lengths, intervalPerm, o.splitCap, runData, nil)
		splitLengths, splitIntervalPerm = sl, sp
		splitHeads = make([]uint64, len(srd))
		for i, row := range srd {
			splitHeads[i] = row[0]
		}
		maxLength = ml
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
	wCharacter := bitWidthForCount(uint64(sigma))
	widths := []int{wPrimary, wPointer, wOffset, wCharacter}

	var mat packed.Table
	if o.aligned {
		mat = packed.NewAligned(m, widths)
	} else {
		mat = packed.New(m, widths)
	}
	move.PopulateBase(mat, o.mode, splitLengths, splitIntervalPerm, n)
	tbl := movetable.New(mat, o.mode, n, true, 0)
	if tbl.Rows() != m {
		log.Panicf("rlbwt: internal inconsistency, table has %d rows, want %d", tbl.Rows(), m)
	}
	for i, h := range splitHeads {
		tbl.SetCharacter(i, h)
	}
	return move.FromTable(tbl, n, r, o.aligned)
}
