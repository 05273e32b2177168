package movetable

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/runperm/packed"
)

// Mode selects whether a row stores a run length or an absolute start
// index (spec §3, "Representation modes").
type Mode int

const (
	// Relative rows store (length, pointer, offset).
	Relative Mode = iota
	// Absolute rows store (start, pointer, offset); position gains an idx
	// field and get_length is derived rather than stored.
	Absolute
)

func (m Mode) String() string {
	if m == Absolute {
		return "absolute"
	}
	return "relative"
}

// Column indices shared by both modes. Column 0 is LENGTH in Relative mode
// and START in Absolute mode; both are referred to as "primary" here.
const (
	ColPrimary = 0
	ColPointer = 1
	ColOffset  = 2
	// numBaseCols is the number of columns before the optional CHARACTER
	// column and any RunPerm user columns.
	numBaseCols = 3
)

// Table is a semantic view over a packed.Table laid out per spec §4.2.
type Table struct {
	mat          packed.Table
	mode         Mode
	n            uint64 // domain size; needed to resolve GetLength/GetStart at the row-m boundary.
	hasCharacter bool
	nUserCols    int
}

// New wraps mat as a Table. n is the permutation domain size (used only to
// resolve the virtual boundary start_m = n / length derivation in absolute
// mode). hasCharacter and nUserCols describe which trailing columns, if
// any, mat carries beyond {primary, pointer, offset}.
func New(mat packed.Table, mode Mode, n uint64, hasCharacter bool, nUserCols int) *Table {
	want := numBaseCols
	if hasCharacter {
		want++
	}
	want += nUserCols
	if len(mat.Widths()) != want {
		log.Panicf("movetable.New: backing matrix has %d columns, layout requires %d", len(mat.Widths()), want)
	}
	return &Table{mat: mat, mode: mode, n: n, hasCharacter: hasCharacter, nUserCols: nUserCols}
}

// Mode returns the representation mode this view was constructed with.
func (t *Table) Mode() Mode { return t.mode }

// Rows returns the row count m.
func (t *Table) Rows() int { return t.mat.Rows() }

func (t *Table) checkRow(row int) {
	if row < 0 || row >= t.mat.Rows() {
		log.Panicf("movetable: row %d out of range [0, %d)", row, t.mat.Rows())
	}
}

// GetPrimary returns the raw primary column: length in Relative mode, start
// in Absolute mode.
func (t *Table) GetPrimary(row int) uint64 { return t.mat.Get(row, ColPrimary) }

// SetPrimary sets the raw primary column.
func (t *Table) SetPrimary(row int, v uint64) { t.mat.Set(row, ColPrimary, v) }

// GetPointer returns the pointer column: the row index of the interval
// containing π(start of row).
func (t *Table) GetPointer(row int) uint64 { return t.mat.Get(row, ColPointer) }

// SetPointer sets the pointer column.
func (t *Table) SetPointer(row int, v uint64) { t.mat.Set(row, ColPointer, v) }

// GetOffset returns the offset column: π(start of row) minus the start of
// the interval it points to.
func (t *Table) GetOffset(row int) uint64 { return t.mat.Get(row, ColOffset) }

// SetOffset sets the offset column.
func (t *Table) SetOffset(row int, v uint64) { t.mat.Set(row, ColOffset, v) }

// GetStart returns the absolute start index of row, valid in Absolute mode
// only. GetStart(Rows()) returns n, the virtual end-of-domain boundary
// spec §4.2 calls for.
func (t *Table) GetStart(row int) uint64 {
	if t.mode != Absolute {
		log.Panicf("movetable.GetStart: only valid in absolute mode")
	}
	if row == t.mat.Rows() {
		return t.n
	}
	t.checkRow(row)
	return t.GetPrimary(row)
}

// GetLength returns the run length of row. In Relative mode this is the raw
// primary column; in Absolute mode it is start_{row+1} - start_row.
func (t *Table) GetLength(row int) uint64 {
	t.checkRow(row)
	if t.mode == Relative {
		return t.GetPrimary(row)
	}
	return t.GetStart(row+1) - t.GetStart(row)
}

// HasCharacter reports whether this table carries an RLBWT CHARACTER
// column.
func (t *Table) HasCharacter() bool { return t.hasCharacter }

func (t *Table) characterCol() int {
	if !t.hasCharacter {
		log.Panicf("movetable: table has no CHARACTER column")
	}
	return numBaseCols
}

// GetCharacter returns the alphabet-mapped character stored for row.
func (t *Table) GetCharacter(row int) uint64 { return t.mat.Get(row, t.characterCol()) }

// SetCharacter sets the alphabet-mapped character for row.
func (t *Table) SetCharacter(row int, v uint64) { t.mat.Set(row, t.characterCol(), v) }

// NumUserCols returns the number of RunPerm user columns appended after the
// base (and optional CHARACTER) columns.
func (t *Table) NumUserCols() int { return t.nUserCols }

func (t *Table) userCol(idx int) int {
	if idx < 0 || idx >= t.nUserCols {
		log.Panicf("movetable: user column %d out of range [0, %d)", idx, t.nUserCols)
	}
	base := numBaseCols
	if t.hasCharacter {
		base++
	}
	return base + idx
}

// GetUser returns the value of user column idx for row.
func (t *Table) GetUser(row, idx int) uint64 { return t.mat.Get(row, t.userCol(idx)) }

// SetUser sets the value of user column idx for row.
func (t *Table) SetUser(row, idx int, v uint64) { t.mat.Set(row, t.userCol(idx), v) }

// Matrix returns the backing packed.Table, e.g. for serialization.
func (t *Table) Matrix() packed.Table { return t.mat }
