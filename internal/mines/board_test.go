package mines

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// testBoard builds a Running board with mines planted at the given points,
// bypassing the lazy generator so reveal behavior can be tested against a
// known layout.
func testBoard(t *testing.T, rows, cols int, mined ...Point) *Board {
	t.Helper()
	b, err := New(rows, cols, len(mined), newRand())
	require.NoError(t, err)
	for _, p := range mined {
		b.plantMine(b.index(p.Row, p.Col))
	}
	b.startedAt = b.now()
	b.status = Running
	return b
}

func TestNewValidatesParams(t *testing.T) {
	tests := []struct {
		name             string
		rows, cols, mines int
		wantErr          bool
	}{
		{"classic beginner", 9, 9, 10, false},
		{"zero mines", 3, 3, 0, false},
		{"every cell mined", 2, 2, 4, false},
		{"single cell single mine", 1, 1, 1, false},
		{"too many mines", 3, 3, 10, true},
		{"negative mines", 3, 3, -1, true},
		{"zero rows", 0, 3, 1, true},
		{"zero cols", 3, 0, 1, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := New(test.rows, test.cols, test.mines, newRand())
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, BeforeStart, b.Status())
			assert.Equal(t, test.mines, b.MinesLeft())
			assert.Equal(t, test.rows*test.cols-test.mines, b.toOpen)
		})
	}
}

func TestToggleFlagIsItsOwnInverse(t *testing.T) {
	b := testBoard(t, 3, 3, Point{0, 0})

	before := b.Cell(2, 2)
	left := b.MinesLeft()

	b.ToggleFlag(2, 2)
	assert.Equal(t, Flagged, b.Cell(2, 2).Status)
	assert.Equal(t, left-1, b.MinesLeft())

	b.ToggleFlag(2, 2)
	assert.Equal(t, before.Status, b.Cell(2, 2).Status)
	assert.Equal(t, left, b.MinesLeft())
}

func TestMinesLeftDriftsNegative(t *testing.T) {
	b := testBoard(t, 3, 3, Point{0, 0})
	b.ToggleFlag(0, 0)
	b.ToggleFlag(1, 1)
	b.ToggleFlag(2, 2)
	assert.Equal(t, -2, b.MinesLeft())
}

func TestToggleFlagIgnoresOpenedCell(t *testing.T) {
	b := testBoard(t, 2, 2, Point{0, 0})
	b.OpenCell(1, 1)
	require.Equal(t, Opened, b.Cell(1, 1).Status)

	left := b.MinesLeft()
	b.ToggleFlag(1, 1)
	assert.Equal(t, Opened, b.Cell(1, 1).Status)
	assert.Equal(t, left, b.MinesLeft())
}

func TestCommandsIgnoredAfterGameOver(t *testing.T) {
	b := testBoard(t, 2, 2, Point{0, 0})
	require.Equal(t, GameOver, b.OpenCell(0, 0))

	b.ToggleFlag(1, 1)
	assert.Equal(t, Closed, b.Cell(1, 1).Status)

	assert.Equal(t, GameOver, b.OpenCell(1, 1))
	assert.Equal(t, Closed, b.Cell(1, 1).Status)
}

func TestResetReturnsToBeforeStart(t *testing.T) {
	var statuses []Status
	b := testBoard(t, 2, 2, Point{0, 0})
	b.OnStatusChange(func(s Status) { statuses = append(statuses, s) })

	b.OpenCell(0, 0)
	require.Equal(t, GameOver, b.Status())

	require.NoError(t, b.Reset(4, 5, 6))

	assert.Equal(t, BeforeStart, b.Status())
	assert.Equal(t, 4, b.Rows())
	assert.Equal(t, 5, b.Cols())
	assert.Equal(t, 6, b.MineCount())
	assert.Equal(t, 6, b.MinesLeft())
	assert.Equal(t, 14, b.toOpen)
	_, over := b.LosingCell()
	assert.False(t, over)
	assert.Equal(t, time.Duration(0), b.Elapsed())
	for row := range 4 {
		for col := range 5 {
			info := b.Cell(row, col)
			assert.Equal(t, Closed, info.Status)
			assert.False(t, info.Mined)
		}
	}
	assert.Equal(t, []Status{GameOver, BeforeStart}, statuses)
}

func TestResetValidatesParams(t *testing.T) {
	b := testBoard(t, 2, 2, Point{0, 0})
	assert.Error(t, b.Reset(2, 2, 5))
	assert.Error(t, b.Reset(0, 2, 1))
}

func TestElapsed(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1700000000, 0)}

	b, err := New(2, 2, 1, newRand())
	require.NoError(t, err)
	b.SetClock(clk.Now)

	assert.Equal(t, time.Duration(0), b.Elapsed(), "zero before start")

	b.OpenCell(0, 0)
	require.Equal(t, Running, b.Status())

	clk.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, b.Elapsed(), "live while running")

	// detonate whichever cell got the mine
	for row := range 2 {
		for col := range 2 {
			if b.Cell(row, col).Mined {
				b.OpenCell(row, col)
			}
		}
	}
	require.Equal(t, GameOver, b.Status())

	clk.Advance(10 * time.Second)
	assert.Equal(t, 3*time.Second, b.Elapsed(), "frozen after game over")
}

func TestBoardBinaryRoundTrip(t *testing.T) {
	b := testBoard(t, 3, 3, Point{0, 0}, Point{2, 2})
	b.OpenCell(0, 2)
	b.ToggleFlag(0, 0)

	buf, err := b.MarshalBinary()
	require.NoError(t, err)

	decoded, err := DecodeBoard(buf, newRand())
	require.NoError(t, err)

	assert.Equal(t, b.Status(), decoded.Status())
	assert.Equal(t, b.MinesLeft(), decoded.MinesLeft())
	assert.Equal(t, b.toOpen, decoded.toOpen)
	assert.Equal(t, b.View(), decoded.View())

	// the decoded board must remain playable
	decoded.OpenCell(2, 2)
	assert.Equal(t, GameOver, decoded.Status())
	losing, over := decoded.LosingCell()
	require.True(t, over)
	assert.Equal(t, Point{Row: 2, Col: 2}, losing)
}
