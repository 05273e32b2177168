package runperm

import (
	"encoding/binary"
	"io"

	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/packed"
	"github.com/pkg/errors"
)

// Serialize writes rp's byte stream per spec §6: a storage-mode byte and
// user-column count (needed because, in Integrated mode, the user columns
// are baked into the Move Structure's own matrix and move.Load has no way
// to tell them apart from the base columns on its own), then the Move
// Structure, then, in Separated mode, the user-column packed matrix.
func (rp *RunPerm) Serialize(w io.Writer) error {
	var hdr [9]byte
	hdr[0] = byte(rp.storage)
	binary.LittleEndian.PutUint64(hdr[1:9], uint64(len(rp.userWidths)))
	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "runperm: writing header")
	}
	if err := rp.ms.Serialize(w); err != nil {
		return errors.Wrap(err, "runperm: writing move structure")
	}
	if rp.storage != Separated {
		return nil
	}
	if rp.ms.Aligned() {
		return rp.userTable.(*packed.AlignedMatrix).Serialize(w)
	}
	return rp.userTable.(*packed.Matrix).Serialize(w)
}

// Load reverses Serialize.
func Load(r io.Reader) (*RunPerm, error) {
	var hdr [9]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "runperm: reading header")
	}
	storage := StorageMode(hdr[0])
	numUserCols := int(binary.LittleEndian.Uint64(hdr[1:9]))

	numCols := 3
	if storage == Integrated {
		numCols += numUserCols
	}
	mat, mode, n, permutationRuns, aligned, err := move.LoadRaw(r, numCols)
	if err != nil {
		return nil, errors.Wrap(err, "runperm: loading move structure")
	}

	rp := &RunPerm{storage: storage}
	if storage == Integrated {
		tbl := movetable.New(mat, mode, n, false, numUserCols)
		rp.ms = move.FromTable(tbl, n, permutationRuns, aligned)
		widths := mat.Widths()
		rp.userWidths = append([]int(nil), widths[len(widths)-numUserCols:]...)
		return rp, nil
	}

	tbl := movetable.New(mat, mode, n, false, 0)
	rp.ms = move.FromTable(tbl, n, permutationRuns, aligned)

	var userMat packed.Table
	if aligned {
		m, lErr := packed.LoadAligned(r, numUserCols)
		if lErr != nil {
			return nil, errors.Wrap(lErr, "runperm: loading user-column matrix")
		}
		userMat = m
	} else {
		m, lErr := packed.LoadMatrix(r, numUserCols)
		if lErr != nil {
			return nil, errors.Wrap(lErr, "runperm: loading user-column matrix")
		}
		userMat = m
	}
	rp.userTable = userMat
	rp.userWidths = append([]int(nil), userMat.Widths()...)
	return rp, nil
}
