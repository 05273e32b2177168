package persist

import (
	"context"
	"io"

	"github.com/grailbio/runperm/move"
)

// SaveMoveStructure writes ms to path (local or any github.com/grailbio/base/file
// scheme, e.g. "s3://...") using codec, wrapped in the integrity checks
// documented in this package's doc comment.
func SaveMoveStructure(ctx context.Context, path string, ms *move.MoveStructure, codec Codec) error {
	data, err := wrap(ms, codec)
	if err != nil {
		return err
	}
	return writeFile(ctx, path, data)
}

// LoadMoveStructure reverses SaveMoveStructure, verifying both integrity
// checks before move.Load ever sees the serialized bytes.
func LoadMoveStructure(ctx context.Context, path string) (*move.MoveStructure, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	v, err := unwrap(data, func(r io.Reader) (interface{}, error) { return move.Load(r) })
	if err != nil {
		return nil, err
	}
	return v.(*move.MoveStructure), nil
}
