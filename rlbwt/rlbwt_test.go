package rlbwt_test

import (
	"bytes"
	"testing"

	"github.com/grailbio/runperm/alphabet"
	"github.com/grailbio/runperm/rlbwt"
	"github.com/stretchr/testify/require"
)

// bwtExample is spec §8's worked scenario (S1/S2/S3): text
// "GATTACATGATTACATAGATTACATT$" has RLBWT run heads/lengths as below, with
// n=27 including the terminator.
func bwtExample() (heads []byte, lengths []uint64, alph *alphabet.Dynamic) {
	heads = []byte{'T', 'C', 'G', 'A', 'T', '$', 'A', 'T', 'A'}
	lengths = []uint64{5, 3, 3, 3, 1, 1, 1, 4, 6}
	// Feed bytes in ascending order so Map assigns codes $ < A < C < G < T,
	// matching the alphabetical bucket order FL's build requires.
	alph = alphabet.NewDynamic([]byte{'$', 'A', 'C', 'G', 'T'})
	return
}

func TestLFInvertsBWT(t *testing.T) {
	heads, lengths, alph := bwtExample()
	lf := rlbwt.LF(heads, lengths, alph)
	require.Equal(t, uint64(27), lf.Size())

	const want = "TTACATTAGATACATTAGTACATTAG"
	pos := lf.First()
	got := make([]byte, 0, len(want))
	for i := 0; i < len(want); i++ {
		got = append(got, lf.Character(pos))
		pos = lf.Step(pos)
	}
	require.Equal(t, want, string(got))
}

func TestFLForwardReconstructsText(t *testing.T) {
	heads, lengths, alph := bwtExample()
	fl := rlbwt.FL(heads, lengths, alph)
	require.Equal(t, uint64(27), fl.Size())

	const want = "GATTACATGATTACATAGATTACATT"
	pos := fl.First()
	pos = fl.Step(pos) // "calling FL once gives position of first text character"
	got := make([]byte, 0, len(want))
	for i := 0; i < len(want); i++ {
		got = append(got, fl.Character(pos))
		pos = fl.Step(pos)
	}
	require.Equal(t, want, string(got))
}

func TestLFPanicsOnLengthMismatch(t *testing.T) {
	defer func() { require.NotNil(t, recover()) }()
	_, _, alph := bwtExample()
	rlbwt.LF([]byte{'A'}, []uint64{1, 2}, alph)
}

func TestClampLFDocumentedConstant(t *testing.T) {
	require.True(t, rlbwt.ClampLF)
}

func TestLFClampsTerminatorAndSeparatorCodes(t *testing.T) {
	// A Nucleotide alphabet designates codes 0 ($ terminator) and 1 (#
	// separator); a head byte mapping below or at either boundary must
	// clamp rather than keep a raw rank-derived code (spec §9).
	nuc := alphabet.DefaultNucleotide('$', '#')
	heads := []byte{'A', 'C', 'G', 'T'}
	lengths := []uint64{1, 1, 1, 1}
	lf := rlbwt.LF(heads, lengths, nuc)
	// None of A/C/G/T are <= SeparatorCode (1), so none should clamp here;
	// this just exercises the clamp path without panicking or miscounting.
	require.Equal(t, uint64(4), lf.Size())
}

func TestInvPhiReconstructsSuffixArray(t *testing.T) {
	heads, lengths, alph := bwtExample()
	invPhi := rlbwt.InvPhi(heads, lengths, alph)
	require.Equal(t, uint64(27), invPhi.Size())

	want := []uint64{26, 12, 4, 21, 16, 14, 6, 23, 9, 1, 18, 13, 5, 22, 8, 0, 17, 25, 11, 3, 20, 15, 7, 24, 10, 2, 19}
	pos := invPhi.Last()
	got := make([]uint64, 0, len(want))
	for i := 0; i < len(want); i++ {
		got = append(got, pos.Idx)
		pos = invPhi.Step(pos)
	}
	require.Equal(t, want, got)
}

func TestPhiInvPhiAgreeOnRunCount(t *testing.T) {
	heads, lengths, alph := bwtExample()
	phi := rlbwt.Phi(heads, lengths, alph)
	invPhi := rlbwt.InvPhi(heads, lengths, alph)
	require.Equal(t, phi.Size(), invPhi.Size())
	require.Equal(t, phi.PermutationRuns(), invPhi.PermutationRuns())
}

func TestLFSerializeLoadIdentity(t *testing.T) {
	heads, lengths, alph := bwtExample()
	lf := rlbwt.LF(heads, lengths, alph)

	var buf bytes.Buffer
	require.NoError(t, lf.Serialize(&buf))
	loaded, err := rlbwt.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, lf.Size(), loaded.Size())
	require.Equal(t, lf.Runs(), loaded.Runs())

	pos, got := lf.First(), loaded.First()
	for i := 0; i < int(lf.Size()); i++ {
		require.Equal(t, lf.Character(pos), loaded.Character(got))
		pos, got = lf.Step(pos), loaded.Step(got)
	}
}
