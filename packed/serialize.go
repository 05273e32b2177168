package packed

import (
	"encoding/binary"
	"io"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Serialize writes m's byte stream to w: a little-endian u64 row count, one
// byte per column width, then the raw data buffer (including its 8-byte
// trailing pad), exactly spec §6 item 2's format. The column count is not
// written: a caller loading the stream back already knows its own column
// layout (the same way it already knows which variant -- bit-packed or
// aligned -- it is loading, by calling LoadMatrix or LoadAligned).
func (m *Matrix) Serialize(w io.Writer) error {
	return serializeRaw(w, m.rows, m.widths, m.data)
}

// LoadMatrix reads a Matrix previously written by Serialize. numCols is the
// caller-known column count; the data buffer is sized from (rows, widths)
// via New, which applies the bit-packed row formula.
func LoadMatrix(r io.Reader, numCols int) (*Matrix, error) {
	rows, widths, err := loadHeader(r, numCols)
	if err != nil {
		return nil, err
	}
	m := New(rows, widths)
	if _, err := io.ReadFull(r, m.data); err != nil {
		return nil, errors.Wrap(err, "packed.LoadMatrix: reading packed data")
	}
	return m, nil
}

// Serialize writes m's byte stream in the same format as Matrix.Serialize;
// the data buffer it writes is already byte-aligned per column.
func (m *AlignedMatrix) Serialize(w io.Writer) error {
	return serializeRaw(w, m.rows, m.widths, m.data)
}

// LoadAligned reads an AlignedMatrix previously written by Serialize. The
// data buffer is sized from (rows, widths) via NewAligned, which applies
// the byte-rounded row formula: which formula applies is determined by
// which of LoadMatrix/LoadAligned the caller calls, not by anything in the
// stream itself.
func LoadAligned(r io.Reader, numCols int) (*AlignedMatrix, error) {
	rows, widths, err := loadHeader(r, numCols)
	if err != nil {
		return nil, err
	}
	m := NewAligned(rows, widths)
	if _, err := io.ReadFull(r, m.data); err != nil {
		return nil, errors.Wrap(err, "packed.LoadAligned: reading packed data")
	}
	return m, nil
}

func serializeRaw(w io.Writer, rows int, widths []int, data []byte) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint64(hdr[:], uint64(rows))
	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "packed: writing row count")
	}
	widthBytes := make([]byte, len(widths))
	for j, wd := range widths {
		if wd <= 0 || wd > MaxWidth {
			log.Panicf("packed: column %d width %d out of range", j, wd)
		}
		widthBytes[j] = byte(wd)
	}
	if _, err := w.Write(widthBytes); err != nil {
		return errors.Wrap(err, "packed: writing column widths")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "packed: writing packed data")
	}
	return nil
}

// loadHeader reads the u64 row count and numCols width bytes a Serialize
// call wrote, per spec §6 item 2. numCols comes from the caller's own
// schema knowledge, not from the stream.
func loadHeader(r io.Reader, numCols int) (rows int, widths []int, err error) {
	var hdr [8]byte
	if _, err = io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, errors.Wrap(err, "packed: reading row count")
	}
	rows = int(binary.LittleEndian.Uint64(hdr[:]))

	widthBytes := make([]byte, numCols)
	if _, err = io.ReadFull(r, widthBytes); err != nil {
		return 0, nil, errors.Wrap(err, "packed: reading column widths")
	}
	widths = make([]int, numCols)
	for j, b := range widthBytes {
		widths[j] = int(b)
	}
	return rows, widths, nil
}
