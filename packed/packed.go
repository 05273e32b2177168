package packed

import (
	"github.com/grailbio/base/log"
)

// MaxWidth is the largest bit width a single column may have. It guarantees
// that any cell fits inside one unaligned 64-bit load, since a cell can then
// start at bit offset 0..7 within a byte and still end within the same
// 8-byte word (7 + 57 = 64 spans at most 8 bytes).
const MaxWidth = 57

// Table is the shared contract between Matrix and AlignedMatrix. Callers
// that don't care which backing layout is in use should depend on this
// interface rather than a concrete type.
type Table interface {
	// Rows returns the row count m.
	Rows() int
	// Widths returns the per-column bit widths, in column order.
	Widths() []int
	// Get returns cell (row, col); 0 <= result < 2^Widths()[col].
	Get(row, col int) uint64
	// Set stores v into cell (row, col). v must be < 2^Widths()[col].
	Set(row, col int, v uint64)
	// GetRow copies row `row` into dst, which must have len(Widths()) entries.
	GetRow(row int, dst []uint64)
	// SetRow stores src into row `row`. src must have len(Widths()) entries.
	SetRow(row int, src []uint64)
}

// Matrix is a bit-packed Table: column j occupies exactly Widths()[j] bits,
// with no padding between columns or rows.
type Matrix struct {
	rows    int
	widths  []int
	offsets []int // bit offset of column j within a row
	masks   []uint64
	rowBits int
	data    []byte
}

// New allocates a zero-initialized Matrix with the given row count and
// per-column bit widths. It panics if any width is outside 1..MaxWidth, if
// rows is negative, or if widths is empty (zero rows are allowed), matching
// the teacher's convention of
// treating malformed construction arguments as a fatal programming error
// (see circular.NewBitmap's rowWidth/power-of-two checks).
func New(rows int, widths []int) *Matrix {
	if rows < 0 {
		log.Panicf("packed.New: negative row count %d", rows)
	}
	if len(widths) == 0 {
		log.Panicf("packed.New: at least one column is required")
	}
	m := &Matrix{
		rows:    rows,
		widths:  append([]int(nil), widths...),
		offsets: make([]int, len(widths)),
		masks:   make([]uint64, len(widths)),
	}
	bitOffset := 0
	for j, w := range widths {
		if w <= 0 || w > MaxWidth {
			log.Panicf("packed.New: column %d width %d out of range (1..%d)", j, w, MaxWidth)
		}
		m.offsets[j] = bitOffset
		m.masks[j] = (uint64(1) << uint(w)) - 1
		bitOffset += w
	}
	m.rowBits = bitOffset
	nBytes := (m.rows*m.rowBits + 7) / 8
	m.data = make([]byte, nBytes+8) // +8: padding so every unaligned load is in-bounds.
	return m
}

// Rows implements Table.
func (m *Matrix) Rows() int { return m.rows }

// Widths implements Table.
func (m *Matrix) Widths() []int { return m.widths }

func (m *Matrix) checkRow(row int) {
	if row < 0 || row >= m.rows {
		log.Panicf("packed.Matrix: row %d out of range [0, %d)", row, m.rows)
	}
}

// Get implements Table.
func (m *Matrix) Get(row, col int) uint64 {
	m.checkRow(row)
	bitPos := row*m.rowBits + m.offsets[col]
	byteIndex := bitPos >> 3
	shift := uint(bitPos & 7)
	word := loadWord64(m.data, byteIndex)
	return (word >> shift) & m.masks[col]
}

// Set implements Table.
func (m *Matrix) Set(row, col int, v uint64) {
	m.checkRow(row)
	if v > m.masks[col] {
		log.Panicf("packed.Matrix.Set: value %d exceeds column %d width %d", v, col, m.widths[col])
	}
	bitPos := row*m.rowBits + m.offsets[col]
	byteIndex := bitPos >> 3
	shift := uint(bitPos & 7)
	word := loadWord64(m.data, byteIndex)
	word = (word &^ (m.masks[col] << shift)) | (v << shift)
	storeWord64(m.data, byteIndex, word)
}

// GetRow implements Table.
func (m *Matrix) GetRow(row int, dst []uint64) {
	for j := range m.widths {
		dst[j] = m.Get(row, j)
	}
}

// SetRow implements Table.
func (m *Matrix) SetRow(row int, src []uint64) {
	for j := range m.widths {
		m.Set(row, j, src[j])
	}
}
