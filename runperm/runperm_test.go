package runperm_test

import (
	"bytes"
	"testing"

	"github.com/grailbio/runperm/move"
	"github.com/grailbio/runperm/movetable"
	"github.com/grailbio/runperm/runperm"
	"github.com/stretchr/testify/require"
)

func sampleInput() (lengths, permutation []uint64, n uint64, runData [][]uint64) {
	lengths = []uint64{2, 3, 1, 2, 2, 1, 1, 1, 3}
	permutation = []uint64{1, 9, 3, 12, 4, 14, 0, 15, 6}
	for _, l := range lengths {
		n += l
	}
	runData = make([][]uint64, len(lengths))
	for i := range runData {
		runData[i] = []uint64{uint64(i * 7 % 16)}
	}
	return
}

func TestIntegratedGetUserMatchesInput(t *testing.T) {
	lengths, permutation, n, runData := sampleInput()
	rp := runperm.Build(lengths, permutation, n, runData, runperm.WithMode(movetable.Absolute))
	for i, row := range runData {
		require.Equal(t, row[0], rp.GetUser(i, 0))
	}
}

func TestSeparatedGetUserMatchesInput(t *testing.T) {
	lengths, permutation, n, runData := sampleInput()
	rp := runperm.Build(lengths, permutation, n, runData,
		runperm.WithMode(movetable.Absolute), runperm.WithStorage(runperm.Separated))
	for i, row := range runData {
		require.Equal(t, row[0], rp.GetUser(i, 0))
	}
}

func TestUpDownInverses(t *testing.T) {
	lengths, permutation, n, runData := sampleInput()
	rp := runperm.Build(lengths, permutation, n, runData, runperm.WithMode(movetable.Absolute))
	ms := rp.MoveStructure()
	for interval := 0; interval < ms.Runs(); interval++ {
		pos := move.Position{Interval: interval, Offset: 0, Idx: ms.GetStart(interval)}
		if interval > 0 {
			up, ok := rp.Up(pos)
			require.True(t, ok)
			down, ok := rp.Down(up)
			require.True(t, ok)
			require.Equal(t, interval, down.Interval)
		}
	}
	_, ok := rp.Up(move.Position{Interval: 0})
	require.False(t, ok)
	_, ok = rp.Down(move.Position{Interval: ms.Runs() - 1})
	require.False(t, ok)
}

func TestSuccPredRoundTrip(t *testing.T) {
	lengths, permutation, n, runData := sampleInput()
	rp := runperm.Build(lengths, permutation, n, runData, runperm.WithMode(movetable.Absolute))
	target := rp.GetUser(5, 0)
	found, ok := rp.Succ(move.Position{Interval: 0}, 0, target)
	require.True(t, ok)
	require.Equal(t, target, rp.GetUser(found.Interval, 0))

	back, ok := rp.Pred(move.Position{Interval: rp.MoveStructure().Runs() - 1}, 0, target)
	require.True(t, ok)
	require.Equal(t, target, rp.GetUser(back.Interval, 0))
}

func TestSplitDuplicatesUserData(t *testing.T) {
	lengths := []uint64{2, 1, 8}
	permutation := []uint64{9, 0, 1}
	n := uint64(11)
	runData := [][]uint64{{1}, {2}, {3}}
	rp := runperm.Build(lengths, permutation, n, runData,
		runperm.WithMode(movetable.Absolute), runperm.WithSplitCap(4))
	// original run 2 (length 8, value 3) splits into two sub-runs; both
	// must carry the duplicated value absent an explicit split callback.
	require.Equal(t, 4, rp.MoveStructure().Runs())
	for i := 0; i < rp.MoveStructure().Runs(); i++ {
		require.Contains(t, []uint64{1, 2, 3}, rp.GetUser(i, 0))
	}
	require.Equal(t, uint64(3), rp.GetUser(2, 0))
	require.Equal(t, uint64(3), rp.GetUser(3, 0))
}

func TestSerializeLoadIdentityIntegrated(t *testing.T) {
	lengths, permutation, n, runData := sampleInput()
	rp := runperm.Build(lengths, permutation, n, runData, runperm.WithMode(movetable.Absolute))

	var buf bytes.Buffer
	require.NoError(t, rp.Serialize(&buf))
	loaded, err := runperm.Load(&buf)
	require.NoError(t, err)
	for i := range runData {
		require.Equal(t, rp.GetUser(i, 0), loaded.GetUser(i, 0))
	}
}

func TestSerializeLoadIdentitySeparated(t *testing.T) {
	lengths, permutation, n, runData := sampleInput()
	rp := runperm.Build(lengths, permutation, n, runData,
		runperm.WithMode(movetable.Absolute), runperm.WithStorage(runperm.Separated))

	var buf bytes.Buffer
	require.NoError(t, rp.Serialize(&buf))
	loaded, err := runperm.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, runperm.Separated, loaded.Storage())
	for i := range runData {
		require.Equal(t, rp.GetUser(i, 0), loaded.GetUser(i, 0))
	}
}
