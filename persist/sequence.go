package persist

import (
	"context"
	"io"

	"github.com/grailbio/runperm/rlbwt"
)

// SaveSequence writes an LF/FL structure (rlbwt.Sequence, which carries a
// CHARACTER column and an alphabet) to path, wrapped in the same integrity
// checks as SaveMoveStructure. Φ/Φ⁻¹ structures are plain
// *move.MoveStructure values (spec §4.5 step 5) and use SaveMoveStructure
// instead.
func SaveSequence(ctx context.Context, path string, s *rlbwt.Sequence, codec Codec) error {
	data, err := wrap(s, codec)
	if err != nil {
		return err
	}
	return writeFile(ctx, path, data)
}

// LoadSequence reverses SaveSequence.
func LoadSequence(ctx context.Context, path string) (*rlbwt.Sequence, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	v, err := unwrap(data, func(r io.Reader) (interface{}, error) { return rlbwt.Load(r) })
	if err != nil {
		return nil, err
	}
	return v.(*rlbwt.Sequence), nil
}
