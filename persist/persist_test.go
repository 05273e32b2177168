package persist_test

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/runperm/alphabet"
	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/persist"
	"github.com/grailbio/runperm/rlbwt"
	"github.com/grailbio/runperm/runperm"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/require"
)

func sampleMoveStructure() *move.MoveStructure {
	lengths := []uint64{2, 3, 1, 2, 2, 1, 1, 1, 3}
	permutation := []uint64{1, 9, 3, 12, 4, 14, 0, 15, 6}
	var n uint64
	for _, l := range lengths {
		n += l
	}
	return move.Build(lengths, permutation, n, move.WithMode(movetable.Absolute))
}

func TestMoveStructureSaveLoadRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	for _, codec := range []persist.Codec{persist.NoCompression, persist.Snappy, persist.Gzip} {
		path := tempDir + "/structure.move"
		ms := sampleMoveStructure()
		require.NoError(t, persist.SaveMoveStructure(ctx, path, ms, codec))

		loaded, err := persist.LoadMoveStructure(ctx, path)
		require.NoError(t, err)
		require.Equal(t, ms.Size(), loaded.Size())
		require.Equal(t, ms.Runs(), loaded.Runs())

		pos := ms.First()
		got := loaded.First()
		for i := uint64(0); i < ms.Size(); i++ {
			require.Equal(t, pos, got)
			pos = ms.Step(pos)
			got = loaded.Step(got)
		}
	}
}

func TestMoveStructureLoadDetectsCorruption(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	path := tempDir + "/structure.move"

	ms := sampleMoveStructure()
	require.NoError(t, persist.SaveMoveStructure(ctx, path, ms, persist.NoCompression))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	data[len(data)/2] ^= 0xff
	require.NoError(t, ioutil.WriteFile(path, data, 0644))

	_, err = persist.LoadMoveStructure(ctx, path)
	require.Error(t, err)
}

func TestRunPermSaveLoadRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	lengths := []uint64{2, 3, 1, 2, 2, 1, 1, 1, 3}
	permutation := []uint64{1, 9, 3, 12, 4, 14, 0, 15, 6}
	var n uint64
	for _, l := range lengths {
		n += l
	}
	runData := make([][]uint64, len(lengths))
	for i := range runData {
		runData[i] = []uint64{uint64(i * 7 % 16)}
	}
	rp := runperm.Build(lengths, permutation, n, runData, runperm.WithMode(movetable.Absolute))

	path := tempDir + "/structure.rperm"
	require.NoError(t, persist.SaveRunPerm(ctx, path, rp, persist.Snappy))

	loaded, err := persist.LoadRunPerm(ctx, path)
	require.NoError(t, err)
	for i, row := range runData {
		require.Equal(t, row[0], loaded.GetUser(i, 0))
	}
}

func TestRunPermSeparatedSaveLoadRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	lengths := []uint64{2, 3, 1, 2, 2, 1, 1, 1, 3}
	permutation := []uint64{1, 9, 3, 12, 4, 14, 0, 15, 6}
	var n uint64
	for _, l := range lengths {
		n += l
	}
	runData := make([][]uint64, len(lengths))
	for i := range runData {
		runData[i] = []uint64{uint64(i * 7 % 16)}
	}
	rp := runperm.Build(lengths, permutation, n, runData,
		runperm.WithMode(movetable.Absolute), runperm.WithStorage(runperm.Separated))

	path := tempDir + "/structure.rperm"
	require.NoError(t, persist.SaveRunPerm(ctx, path, rp, persist.Gzip))

	loaded, err := persist.LoadRunPerm(ctx, path)
	require.NoError(t, err)
	require.Equal(t, runperm.Separated, loaded.Storage())
	for i, row := range runData {
		require.Equal(t, row[0], loaded.GetUser(i, 0))
	}
}

func TestSequenceSaveLoadRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	heads := []byte{'T', 'C', 'G', 'A', 'T', '$', 'A', 'T', 'A'}
	lengths := []uint64{5, 3, 3, 3, 1, 1, 1, 4, 6}
	alph := alphabet.NewDynamic([]byte{'$', 'A', 'C', 'G', 'T'})
	lf := rlbwt.LF(heads, lengths, alph)

	path := tempDir + "/structure.lf"
	require.NoError(t, persist.SaveSequence(ctx, path, lf, persist.NoCompression))

	loaded, err := persist.LoadSequence(ctx, path)
	require.NoError(t, err)
	pos, got := lf.First(), loaded.First()
	for i := 0; i < int(lf.Size()); i++ {
		require.Equal(t, lf.Character(pos), loaded.Character(got))
		pos, got = lf.Step(pos), loaded.Step(got)
	}
}
