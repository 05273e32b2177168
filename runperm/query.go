package runperm

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movetable"
)

// MoveStructure returns the underlying Move Structure, exposing First,
// Last, Step, Size, Runs, PermutationRuns and the base column getters.
func (rp *RunPerm) MoveStructure() *move.MoveStructure { return rp.ms }

// Storage reports whether user columns are Integrated or Separated.
func (rp *RunPerm) Storage() StorageMode { return rp.storage }

// NumUserCols returns the number of per-run user columns.
func (rp *RunPerm) NumUserCols() int { return len(rp.userWidths) }

func (rp *RunPerm) checkUserCol(idx int) {
	if idx < 0 || idx >= len(rp.userWidths) {
		log.Panicf("runperm: user column %d out of range [0, %d)", idx, len(rp.userWidths))
	}
}

// GetUser returns user column idx's value at interval.
func (rp *RunPerm) GetUser(interval, idx int) uint64 {
	rp.checkUserCol(idx)
	if rp.storage == Integrated {
		return rp.ms.Table().GetUser(interval, idx)
	}
	return rp.userTable.Get(interval, idx)
}

// SetUser sets user column idx's value at interval.
func (rp *RunPerm) SetUser(interval, idx int, v uint64) {
	rp.checkUserCol(idx)
	if rp.storage == Integrated {
		rp.ms.Table().SetUser(interval, idx, v)
		return
	}
	rp.userTable.Set(interval, idx, v)
}

// Up moves pos to the previous interval's last element: offset to
// length-1, idx to that interval's last absolute index. It returns
// false, unmodified, if pos is already at interval 0 (spec §4.5).
func (rp *RunPerm) Up(pos move.Position) (move.Position, bool) {
	if pos.Interval == 0 {
		return pos, false
	}
	prev := pos.Interval - 1
	out := move.Position{Interval: prev, Offset: rp.ms.GetLength(prev) - 1}
	if rp.ms.Mode() == movetable.Absolute {
		out.Idx = rp.ms.GetStart(prev+1) - 1
	}
	return out, true
}

// Down moves pos to the next interval's first element: offset 0, idx to
// that interval's start. It returns false, unmodified, if pos is already
// at the last interval (spec §4.5).
func (rp *RunPerm) Down(pos move.Position) (move.Position, bool) {
	if pos.Interval >= rp.ms.Runs()-1 {
		return pos, false
	}
	next := pos.Interval + 1
	out := move.Position{Interval: next, Offset: 0}
	if rp.ms.Mode() == movetable.Absolute {
		out.Idx = rp.ms.GetStart(next)
	}
	return out, true
}

// Pred walks backwards from pos, one interval at a time, while
// GetUser(interval, idx) != v; on a match it returns the position of that
// interval's last element. It returns ok=false if the walk exhausts
// interval 0 without a match (spec §4.5).
func (rp *RunPerm) Pred(pos move.Position, idx int, v uint64) (result move.Position, ok bool) {
	rp.checkUserCol(idx)
	for interval := pos.Interval; interval >= 0; interval-- {
		if rp.GetUser(interval, idx) == v {
			out := move.Position{Interval: interval, Offset: rp.ms.GetLength(interval) - 1}
			if rp.ms.Mode() == movetable.Absolute {
				out.Idx = rp.ms.GetStart(interval+1) - 1
			}
			return out, true
		}
	}
	return move.Position{}, false
}

// Succ walks forward from pos, one interval at a time, while
// GetUser(interval, idx) != v; on a match it returns the position of that
// interval's first element. It returns ok=false if the walk exhausts the
// last interval without a match (spec §4.5).
func (rp *RunPerm) Succ(pos move.Position, idx int, v uint64) (result move.Position, ok bool) {
	rp.checkUserCol(idx)
	for interval := pos.Interval; interval < rp.ms.Runs(); interval++ {
		if rp.GetUser(interval, idx) == v {
			out := move.Position{Interval: interval, Offset: 0}
			if rp.ms.Mode() == movetable.Absolute {
				out.Idx = rp.ms.GetStart(interval)
			}
			return out, true
		}
	}
	return move.Position{}, false
}
