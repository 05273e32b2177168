package rlbwt

import (
	"io"

	"github.com/grailbio/runperm/alphabet"
	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movetable"
	"github.com/pkg/errors"
)

// Serialize writes s's byte stream per spec §6: the Move Structure (whose
// backing matrix carries the CHARACTER column as its trailing column),
// followed by the alphabet map data (spec §6 point 4).
func (s *Sequence) Serialize(w io.Writer) error {
	if err := s.MoveStructure.Serialize(w); err != nil {
		return errors.Wrap(err, "rlbwt: writing move structure")
	}
	return errors.Wrap(alphabet.Serialize(w, s.alph), "rlbwt: writing alphabet")
}

// Load reverses Serialize, reconstructing the movetable.Table with its
// CHARACTER column (move.Load can't be used directly here: it assumes the
// plain 3-column layout, but a Sequence's matrix has 4 columns).
func Load(r io.Reader) (*Sequence, error) {
	mat, mode, n, permutationRuns, aligned, err := move.LoadRaw(r, 4)
	if err != nil {
		return nil, errors.Wrap(err, "rlbwt: loading move structure")
	}
	tbl := movetable.New(mat, mode, n, true, 0)
	ms := move.FromTable(tbl, n, permutationRuns, aligned)

	alph, err := alphabet.Load(r)
	if err != nil {
		return nil, errors.Wrap(err, "rlbwt: loading alphabet")
	}
	return &Sequence{MoveStructure: ms, alph: alph}, nil
}
