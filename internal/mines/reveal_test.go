package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloodFillOpensZeroRegionToBoundary(t *testing.T) {
	// single mine in the rightmost column; the zero region covers the two
	// left columns and stops at the numbered cells around the mine
	b := testBoard(t, 3, 4, Point{1, 3})

	b.OpenCell(0, 0)

	opened := map[Point]bool{}
	for row := range 3 {
		for col := range 4 {
			if b.Cell(row, col).Status == Opened {
				opened[Point{row, col}] = true
			}
		}
	}
	assert.Len(t, opened, 9)
	for _, p := range []Point{{0, 3}, {2, 3}, {1, 3}} {
		assert.False(t, opened[p], "cell %v must stay closed", p)
	}
	assert.Equal(t, 2, b.toOpen)
	assert.Equal(t, Running, b.Status())
}

func TestFloodFillWholeBoardIsVictory(t *testing.T) {
	b, err := New(3, 3, 0, newRand())
	require.NoError(t, err)

	status := b.OpenCell(0, 0)

	assert.Equal(t, Victory, status)
	assert.Equal(t, 0, b.toOpen, "all nine cells opened in one command")
	assert.Equal(t, 0, b.MinesLeft())
}

func TestOpenFlaggedCellIsNoop(t *testing.T) {
	b := testBoard(t, 2, 2, Point{0, 0})
	b.ToggleFlag(0, 0)

	status := b.OpenCell(0, 0)

	assert.Equal(t, Running, status)
	assert.Equal(t, Flagged, b.Cell(0, 0).Status)
}

func TestOpenMineEndsGame(t *testing.T) {
	b := testBoard(t, 2, 2, Point{0, 0})

	status := b.OpenCell(0, 0)

	assert.Equal(t, GameOver, status)
	losing, over := b.LosingCell()
	require.True(t, over)
	assert.Equal(t, Point{Row: 0, Col: 0}, losing)
	assert.Equal(t, Opened, b.Cell(0, 0).Status)
	assert.Equal(t, ExplodedMine, b.View()[0])
}

func TestOpenOpenedZeroCellIsNoop(t *testing.T) {
	b := testBoard(t, 3, 4, Point{1, 3})
	b.OpenCell(0, 0)
	require.Equal(t, 2, b.toOpen)

	status := b.OpenCell(0, 0)

	assert.Equal(t, Running, status)
	assert.Equal(t, 2, b.toOpen)
}

func TestChordOpensRemainingNeighbors(t *testing.T) {
	// top row mined, center reads 3; flag all three mines and chord
	b := testBoard(t, 3, 3, Point{0, 0}, Point{0, 1}, Point{0, 2})

	b.OpenCell(1, 1)
	require.Equal(t, Opened, b.Cell(1, 1).Status)
	require.Equal(t, 3, b.Cell(1, 1).MineCount)

	b.ToggleFlag(0, 0)
	b.ToggleFlag(0, 1)
	b.ToggleFlag(0, 2)

	status := b.OpenCell(1, 1)

	assert.Equal(t, Victory, status)
	for _, p := range []Point{{1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}} {
		assert.Equal(t, Opened, b.Cell(p.Row, p.Col).Status, "cell %v", p)
	}
}

func TestChordRequiresExactFlagCount(t *testing.T) {
	b := testBoard(t, 3, 3, Point{0, 0}, Point{0, 1}, Point{0, 2})
	b.OpenCell(1, 1)
	b.ToggleFlag(0, 0)
	b.ToggleFlag(0, 1)

	status := b.OpenCell(1, 1)

	assert.Equal(t, Running, status)
	assert.Equal(t, Closed, b.Cell(2, 1).Status)
}

func TestChordDetonationReportsFirstMineInOrder(t *testing.T) {
	// two mines around the center, both unflagged; the flags sit on safe
	// cells, so the chord walks into both mines and must report the one
	// that comes first in neighbor enumeration order (up before down)
	b := testBoard(t, 3, 3, Point{0, 1}, Point{2, 1})

	b.OpenCell(1, 1)
	require.Equal(t, 2, b.Cell(1, 1).MineCount)

	b.ToggleFlag(0, 0)
	b.ToggleFlag(2, 2)

	status := b.OpenCell(1, 1)

	assert.Equal(t, GameOver, status)
	losing, over := b.LosingCell()
	require.True(t, over)
	assert.Equal(t, Point{Row: 0, Col: 1}, losing)
	assert.Equal(t, Closed, b.Cell(2, 1).Status, "later mine stays closed")
}

func TestFloodFillSkipsFlaggedCells(t *testing.T) {
	b, err := New(3, 3, 0, newRand())
	require.NoError(t, err)

	b.ToggleFlag(2, 2)
	status := b.OpenCell(0, 0)

	assert.Equal(t, Running, status, "flagged cell blocks victory")
	assert.Equal(t, Flagged, b.Cell(2, 2).Status)
	assert.Equal(t, 1, b.toOpen)

	b.ToggleFlag(2, 2)
	status = b.OpenCell(2, 2)

	assert.Equal(t, Victory, status)
}

func TestVictoryFlagsEveryMine(t *testing.T) {
	b := testBoard(t, 3, 3, Point{0, 0}, Point{2, 2})

	// the two zero-count corners flood the seven safe cells between them
	b.OpenCell(0, 2)
	status := b.OpenCell(2, 0)

	require.Equal(t, Victory, status)
	assert.Equal(t, 0, b.MinesLeft())
	assert.Equal(t, Flagged, b.Cell(0, 0).Status)
	assert.Equal(t, Flagged, b.Cell(2, 2).Status)
	view := b.View()
	assert.Equal(t, Flag, view[b.index(0, 0)])
	assert.Equal(t, Flag, view[b.index(2, 2)])
}

func TestGameOverView(t *testing.T) {
	b := testBoard(t, 2, 2, Point{0, 0}, Point{0, 1})
	b.ToggleFlag(0, 0) // correct flag
	b.ToggleFlag(1, 0) // wrong flag
	b.OpenCell(0, 1)   // detonate

	require.Equal(t, GameOver, b.Status())
	view := b.View()
	assert.Equal(t, Flag, view[b.index(0, 0)])
	assert.Equal(t, ExplodedMine, view[b.index(0, 1)])
	assert.Equal(t, WrongFlag, view[b.index(1, 0)])
	assert.Equal(t, Covered, view[b.index(1, 1)])
}
