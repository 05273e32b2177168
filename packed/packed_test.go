package packed_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/grailbio/runperm/packed"
	"github.com/stretchr/testify/require"
)

func randWidths(r *rand.Rand, k int) []int {
	widths := make([]int, k)
	for i := range widths {
		widths[i] = 1 + r.Intn(packed.MaxWidth)
	}
	return widths
}

func TestMatrixRoundTripCells(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	widths := randWidths(r, 5)
	rows := 2000
	m := packed.New(rows, widths)
	want := make([][]uint64, rows)
	for i := 0; i < rows; i++ {
		want[i] = make([]uint64, len(widths))
		for j, w := range widths {
			v := uint64(r.Int63()) & ((uint64(1) << uint(w)) - 1)
			want[i][j] = v
			m.Set(i, j, v)
		}
	}
	for i := 0; i < rows; i++ {
		for j := range widths {
			if got := m.Get(i, j); got != want[i][j] {
				t.Fatalf("row %d col %d: got %d, want %d", i, j, got, want[i][j])
			}
		}
	}
}

func TestMatrixSetDoesNotClobberOtherCells(t *testing.T) {
	widths := []int{12, 24, 12}
	m := packed.New(4, widths)
	for i := 0; i < 4; i++ {
		m.Set(i, 0, 1)
		m.Set(i, 1, 2)
		m.Set(i, 2, 3)
	}
	m.Set(2, 1, 0xABCDEF)
	for i := 0; i < 4; i++ {
		require.EqualValues(t, 1, m.Get(i, 0))
		require.EqualValues(t, 3, m.Get(i, 2))
	}
	require.EqualValues(t, 0xABCDEF, m.Get(2, 1))
	require.EqualValues(t, 2, m.Get(0, 1))
}

func TestMatrixSerializeLoadIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	widths := []int{12, 24, 12}
	rows := 10000
	m := packed.New(rows, widths)
	for i := 0; i < rows; i++ {
		for j, w := range widths {
			m.Set(i, j, uint64(r.Int63())&((uint64(1)<<uint(w))-1))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, m.Serialize(&buf))
	// header(8) + widths(3) + ceil(10000*48/8)+8
	wantLen := 8 + 3 + (rows*48+7)/8 + 8
	require.Equal(t, wantLen, buf.Len())

	loaded, err := packed.LoadMatrix(&buf, len(widths))
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		for j := range widths {
			require.Equal(t, m.Get(i, j), loaded.Get(i, j))
		}
	}
}

func TestAlignedMatrixSerializeLoadIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	widths := []int{7, 19, 3, 40}
	rows := 500
	m := packed.NewAligned(rows, widths)
	for i := 0; i < rows; i++ {
		for j, w := range widths {
			m.Set(i, j, uint64(r.Int63())&((uint64(1)<<uint(w))-1))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, m.Serialize(&buf))

	loaded, err := packed.LoadAligned(&buf, len(widths))
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		for j := range widths {
			require.Equal(t, m.Get(i, j), loaded.Get(i, j))
		}
	}
}

func TestAlignedMatrixMatchesMatrix(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	widths := []int{7, 19, 3, 40}
	rows := 500
	bm := packed.New(rows, widths)
	am := packed.NewAligned(rows, widths)
	for i := 0; i < rows; i++ {
		for j, w := range widths {
			v := uint64(r.Int63()) & ((uint64(1) << uint(w)) - 1)
			bm.Set(i, j, v)
			am.Set(i, j, v)
		}
	}
	for i := 0; i < rows; i++ {
		for j := range widths {
			require.Equal(t, bm.Get(i, j), am.Get(i, j))
		}
	}
}

func TestMatrixPanicsOnOversizeWidth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for width > MaxWidth")
		}
	}()
	packed.New(1, []int{packed.MaxWidth + 1})
}
