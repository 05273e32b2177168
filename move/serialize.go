package move

import (
	"encoding/binary"
	"io"

	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/packed"
	"github.com/pkg/errors"
)

// Serialize writes s's self-describing byte stream per spec §6: n, r
// (permutation run count before splitting), the representation mode and
// matrix variant, then the backing packed matrix.
func (s *MoveStructure) Serialize(w io.Writer) error {
	var hdr [18]byte
	binary.LittleEndian.PutUint64(hdr[0:8], s.n)
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(s.permutationRuns))
	hdr[16] = byte(s.table.Mode())
	hdr[17] = 0
	if s.aligned {
		hdr[17] = 1
	}
	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "move: writing header")
	}
	if s.aligned {
		return s.table.Matrix().(*packed.AlignedMatrix).Serialize(w)
	}
	return s.table.Matrix().(*packed.Matrix).Serialize(w)
}

// LoadRaw reverses Serialize's header and backing-matrix bytes without
// assuming any particular column layout, returning the raw pieces needed to
// reconstruct a movetable.Table. It is exported so layers that widen the
// matrix with extra columns (runperm's user columns, rlbwt's CHARACTER
// column) can reconstruct their own movetable.Table over the loaded matrix
// instead of going through Load, which assumes the plain 3-column layout.
func LoadRaw(r io.Reader, numCols int) (mat packed.Table, mode movetable.Mode, n uint64, permutationRuns int, aligned bool, err error) {
	var hdr [18]byte
	if _, err = io.ReadFull(r, hdr[:]); err != nil {
		return nil, 0, 0, 0, false, errors.Wrap(err, "move: reading header")
	}
	n = binary.LittleEndian.Uint64(hdr[0:8])
	permutationRuns = int(binary.LittleEndian.Uint64(hdr[8:16]))
	mode = movetable.Mode(hdr[16])
	aligned = hdr[17] != 0

	if aligned {
		m, lErr := packed.LoadAligned(r, numCols)
		if lErr != nil {
			return nil, 0, 0, 0, false, errors.Wrap(lErr, "move: loading aligned matrix")
		}
		mat = m
	} else {
		m, lErr := packed.LoadMatrix(r, numCols)
		if lErr != nil {
			return nil, 0, 0, 0, false, errors.Wrap(lErr, "move: loading matrix")
		}
		mat = m
	}
	return mat, mode, n, permutationRuns, aligned, nil
}

// Load reverses Serialize for a plain MoveStructure built by Build (exactly
// 3 base columns, no CHARACTER or user columns).
func Load(r io.Reader) (*MoveStructure, error) {
	mat, mode, n, permutationRuns, aligned, err := LoadRaw(r, 3)
	if err != nil {
		return nil, err
	}
	tbl := movetable.New(mat, mode, n, false, 0)
	return FromTable(tbl, n, permutationRuns, aligned), nil
}
