package persist

import (
	"context"
	"io"

	"github.com/grailbio/runperm/runperm"
)

// SaveRunPerm writes rp to path, wrapped in the same integrity checks as
// SaveMoveStructure.
func SaveRunPerm(ctx context.Context, path string, rp *runperm.RunPerm, codec Codec) error {
	data, err := wrap(rp, codec)
	if err != nil {
		return err
	}
	return writeFile(ctx, path, data)
}

// LoadRunPerm reverses SaveRunPerm.
func LoadRunPerm(ctx context.Context, path string) (*runperm.RunPerm, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	v, err := unwrap(data, func(r io.Reader) (interface{}, error) { return runperm.Load(r) })
	if err != nil {
		return nil, err
	}
	return v.(*runperm.RunPerm), nil
}
