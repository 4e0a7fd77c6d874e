package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertCounts recomputes every cell's neighboring mine count by brute
// force and compares it with the precomputed value.
func assertCounts(t *testing.T, b *Board) {
	t.Helper()
	for i := range b.counts {
		want := 0
		for _, j := range b.neighbors(i) {
			if b.mined[j] {
				want++
			}
		}
		assert.Equal(t, want, int(b.counts[i]), "count mismatch at cell %d", i)
	}
}

func countMines(b *Board) int {
	n := 0
	for _, mined := range b.mined {
		if mined {
			n++
		}
	}
	return n
}

func TestFirstOpenKeepsSafetyZoneClear(t *testing.T) {
	b, err := New(10, 10, 10, newRand())
	require.NoError(t, err)

	b.OpenCell(5, 5)

	// depending on the layout the first open may already clear the board,
	// but it can never detonate
	require.NotEqual(t, GameOver, b.Status())
	assert.Equal(t, 10, countMines(b))
	for row := 4; row <= 6; row++ {
		for col := 4; col <= 6; col++ {
			info := b.Cell(row, col)
			assert.False(t, info.Mined, "mine inside safety zone at %d:%d", row, col)
			assert.Equal(t, Opened, info.Status)
		}
	}
	assertCounts(t, b)
}

func TestGeneratedCountsMatchNeighbors(t *testing.T) {
	tests := []struct {
		name              string
		rows, cols, mines int
	}{
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"16x30(99)", 16, 30, 99},
		{"5x5(16)", 5, 5, 16},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := New(test.rows, test.cols, test.mines, newRand())
			require.NoError(t, err)
			b.OpenCell(test.rows/2, test.cols/2)
			assert.Equal(t, test.mines, countMines(b))
			assertCounts(t, b)
		})
	}
}

func TestDenseBoardExcludesOnlyOpenedCell(t *testing.T) {
	// 8 mines on 3x3 leaves fewer than 9 free cells, so only the opened
	// cell itself stays clear
	b, err := New(3, 3, 8, newRand())
	require.NoError(t, err)

	b.OpenCell(1, 1)

	// the opened cell was the only non-mine cell, so this is an instant win
	require.Equal(t, Victory, b.Status())
	center := b.Cell(1, 1)
	assert.False(t, center.Mined)
	assert.Equal(t, Opened, center.Status)
	assert.Equal(t, 8, center.MineCount)
	assert.Equal(t, 8, countMines(b))
	assertCounts(t, b)
}

func TestSaturatedBoardDetonatesFirstOpen(t *testing.T) {
	b, err := New(2, 2, 4, newRand())
	require.NoError(t, err)

	status := b.OpenCell(0, 1)

	assert.Equal(t, GameOver, status)
	assert.Equal(t, 4, countMines(b))
	losing, over := b.LosingCell()
	require.True(t, over)
	assert.Equal(t, Point{Row: 0, Col: 1}, losing)
}

func TestSingleCellSingleMine(t *testing.T) {
	b, err := New(1, 1, 1, newRand())
	require.NoError(t, err)

	status := b.OpenCell(0, 0)

	assert.Equal(t, GameOver, status)
	losing, over := b.LosingCell()
	require.True(t, over)
	assert.Equal(t, Point{Row: 0, Col: 0}, losing)
	assert.Equal(t, Opened, b.Cell(0, 0).Status)
}
