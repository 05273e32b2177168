package alphabet_test

import (
	"bytes"
	"testing"

	"github.com/grailbio/runperm/alphabet"
	"github.com/stretchr/testify/require"
)

func TestDynamicRoundTrip(t *testing.T) {
	a := alphabet.NewDynamic([]byte("GATTACA"))
	require.Equal(t, 4, a.Size()) // G, A, T, C
	for _, c := range []byte("GATTACA") {
		require.Equal(t, c, a.Unmap(a.Map(c)))
	}
}

func TestDynamicFirstSeenOrder(t *testing.T) {
	a := alphabet.NewDynamic([]byte("GATC"))
	require.Equal(t, uint64(0), a.Map('G'))
	require.Equal(t, uint64(1), a.Map('A'))
	require.Equal(t, uint64(2), a.Map('T'))
	require.Equal(t, uint64(3), a.Map('C'))
}

func TestDynamicMapPanicsOnUnknownByte(t *testing.T) {
	a := alphabet.NewDynamic([]byte("GATC"))
	defer func() { require.NotNil(t, recover()) }()
	a.Map('N')
}

func TestDynamicWidth(t *testing.T) {
	require.Equal(t, 1, alphabet.NewDynamic([]byte("A")).Width())
	require.Equal(t, 3, alphabet.NewDynamic([]byte("ABCDEFG")).Width())
}

func TestNucleotideDefaultCodes(t *testing.T) {
	a := alphabet.DefaultNucleotide('$', '#')
	require.Equal(t, uint64(0), a.TerminatorCode())
	require.Equal(t, uint64(1), a.SeparatorCode())
	require.Equal(t, byte('$'), a.Unmap(0))
	require.Equal(t, byte('#'), a.Unmap(1))
	require.Equal(t, 7, a.Size())
	require.Equal(t, 3, a.Width())

	seen := make(map[uint64]byte)
	for _, c := range []byte{'$', '#', 'A', 'C', 'G', 'T', 'N'} {
		code := a.Map(c)
		seen[code] = c
		require.Equal(t, c, a.Unmap(code))
	}
	require.Len(t, seen, 7)
}

func TestNucleotideAlternateCodes(t *testing.T) {
	// spec §9's other reading: TERM/SEP occupy {1,2} instead of {0,1}.
	a := alphabet.NewNucleotide('$', '#', 1, 2)
	require.Equal(t, uint64(1), a.TerminatorCode())
	require.Equal(t, uint64(2), a.SeparatorCode())
	require.Equal(t, uint64(0), a.Map('A'))

	seen := make(map[uint64]bool)
	for _, c := range []byte{'$', '#', 'A', 'C', 'G', 'T', 'N'} {
		code := a.Map(c)
		require.False(t, seen[code], "code %d reused", code)
		seen[code] = true
	}
}

func TestNucleotidePanicsOnColliding(t *testing.T) {
	defer func() { require.NotNil(t, recover()) }()
	alphabet.NewNucleotide('$', '#', 0, 0)
}

func TestDynamicSerializeLoadIdentity(t *testing.T) {
	a := alphabet.NewDynamic([]byte("GATTACAN"))
	var buf bytes.Buffer
	require.NoError(t, a.Serialize(&buf))

	loaded, err := alphabet.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, a.Size(), loaded.Size())
	require.Equal(t, a.Width(), loaded.Width())
	for _, c := range []byte("GATTACAN") {
		require.Equal(t, a.Map(c), loaded.Map(c))
		require.Equal(t, c, loaded.Unmap(loaded.Map(c)))
	}
}

func TestNucleotideSerializeLoadIdentity(t *testing.T) {
	a := alphabet.NewNucleotide('$', '#', 1, 2)
	var buf bytes.Buffer
	require.NoError(t, a.Serialize(&buf))

	loaded, err := alphabet.Load(&buf)
	require.NoError(t, err)
	nuc, ok := loaded.(*alphabet.Nucleotide)
	require.True(t, ok)
	require.Equal(t, a.TerminatorCode(), nuc.TerminatorCode())
	require.Equal(t, a.SeparatorCode(), nuc.SeparatorCode())
	for _, c := range []byte{'$', '#', 'A', 'C', 'G', 'T', 'N'} {
		require.Equal(t, a.Map(c), nuc.Map(c))
	}
}
