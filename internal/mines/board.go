package mines

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Board is a single minesweeper game. It owns the grid, the mine layout and
// the lifecycle state, and runs every command to completion before the next
// one is accepted. Callers are expected to pass coordinates already checked
// with [Board.InBounds]; commands do not bounds-check on their own.
//
// Mines are not placed at construction time. The first OpenCell plants them
// around the opened cell, so the opening move lands on a cleared region
// whenever the mine density allows one.
type Board struct {
	rows, cols int
	mineCount  int

	mined  []bool
	counts []uint8
	cells  []CellStatus

	minesLeft int // display counter, may drift negative
	toOpen    int // non-mine cells still closed, 0 means victory
	losing    int // flat index of the detonated mine, -1 until game over

	status    Status
	startedAt time.Time
	elapsed   time.Duration

	rnd      *rand.Rand
	now      func() time.Time
	onStatus func(Status)
}

// New creates a board with all cells closed and no mines placed. The mine
// count may equal rows*cols (a board that cannot be won) but never exceed
// it.
func New(rows, cols, mineCount int, rnd *rand.Rand) (*Board, error) {
	if err := validateParams(rows, cols, mineCount); err != nil {
		return nil, err
	}
	b := &Board{
		rows:      rows,
		cols:      cols,
		mineCount: mineCount,
		rnd:       rnd,
		now:       time.Now,
	}
	b.init()
	return b, nil
}

func validateParams(rows, cols, mineCount int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", rows, cols)
	}
	if mineCount < 0 || mineCount > rows*cols {
		return fmt.Errorf(
			"mine count must be between 0 and %d, got %d", rows*cols, mineCount,
		)
	}
	return nil
}

func (b *Board) init() {
	n := b.rows * b.cols
	b.mined = make([]bool, n)
	b.counts = make([]uint8, n)
	b.cells = make([]CellStatus, n)
	b.minesLeft = b.mineCount
	b.toOpen = n - b.mineCount
	b.losing = -1
	b.startedAt = time.Time{}
	b.elapsed = 0
	b.status = BeforeStart
}

// Reset discards the game and returns to BeforeStart with the given
// parameters, notifying the status listener.
func (b *Board) Reset(rows, cols, mineCount int) error {
	if err := validateParams(rows, cols, mineCount); err != nil {
		return err
	}
	b.rows, b.cols, b.mineCount = rows, cols, mineCount
	b.init()
	b.setStatus(BeforeStart)
	return nil
}

// SetClock replaces the time source used for elapsed-time accounting.
func (b *Board) SetClock(now func() time.Time) {
	b.now = now
}

// OpenCell is the primary (left-click) command and returns the resulting
// board status.
//
// Opening a closed cell plants the mines first if none are placed yet, then
// reveals the cell and, when its mine count is zero, the whole connected
// zero-count region up to its numbered boundary. Opening a mine ends the
// game. Opening an already open numbered cell whose flagged neighbors match
// its count opens the remaining closed neighbors (a chord). Flagged cells
// and finished games ignore the command.
func (b *Board) OpenCell(row, col int) Status {
	if b.status.Terminal() {
		return b.status
	}
	i := b.index(row, col)
	switch b.cells[i] {
	case Flagged:
		return b.status

	case Closed:
		if b.status == BeforeStart {
			b.placeMines(row, col)
			b.startedAt = b.now()
			b.setStatus(Running)
		}
		if b.mined[i] {
			b.detonate(i)
			return b.status
		}
		b.floodFill(i)

	case Opened:
		if b.counts[i] > 0 {
			b.chord(i)
		}
	}
	return b.status
}

// ToggleFlag is the secondary (right-click) command. It flags a closed cell
// or unflags a flagged one, adjusting the mines-left counter either way.
// The counter is a display hint and is deliberately not clamped: flagging
// more cells than there are mines drives it negative.
func (b *Board) ToggleFlag(row, col int) {
	if b.status.Terminal() {
		return
	}
	i := b.index(row, col)
	switch b.cells[i] {
	case Closed:
		b.cells[i] = Flagged
		b.minesLeft--
	case Flagged:
		b.cells[i] = Closed
		b.minesLeft++
	}
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Cols() int      { return b.cols }
func (b *Board) MineCount() int { return b.mineCount }

// MinesLeft returns the mine count minus the number of placed flags.
func (b *Board) MinesLeft() int { return b.minesLeft }

func (b *Board) Status() Status { return b.status }

// Elapsed returns the time played. It is zero before the first open, live
// while the game runs and frozen at its final value afterwards.
func (b *Board) Elapsed() time.Duration {
	if b.status == Running {
		return b.now().Sub(b.startedAt)
	}
	return b.elapsed
}

// LosingCell identifies the mine that ended the game, if it is over.
func (b *Board) LosingCell() (Point, bool) {
	if b.losing < 0 {
		return Point{}, false
	}
	return b.point(b.losing), true
}

// Cell queries a single cell.
func (b *Board) Cell(row, col int) CellInfo {
	i := b.index(row, col)
	return CellInfo{
		Status:    b.cells[i],
		MineCount: int(b.counts[i]),
		Mined:     b.mined[i],
	}
}

// InBounds reports whether (row, col) addresses a cell of this board.
func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}

func (b *Board) point(i int) Point {
	return Point{Row: i / b.cols, Col: i % b.cols}
}

// neighbors returns the flat indices of the up-to-8 cells adjacent to i in
// a fixed enumeration order: up, up-left, up-right, left, right, down,
// down-left, down-right. Chord detonation reports the first mined neighbor
// in this order, so the order is part of the contract.
func (b *Board) neighbors(i int) []int {
	row, col := i/b.cols, i%b.cols
	out := make([]int, 0, 8)
	if row > 0 {
		out = append(out, i-b.cols)
		if col > 0 {
			out = append(out, i-b.cols-1)
		}
		if col < b.cols-1 {
			out = append(out, i-b.cols+1)
		}
	}
	if col > 0 {
		out = append(out, i-1)
	}
	if col < b.cols-1 {
		out = append(out, i+1)
	}
	if row < b.rows-1 {
		out = append(out, i+b.cols)
		if col > 0 {
			out = append(out, i+b.cols-1)
		}
		if col < b.cols-1 {
			out = append(out, i+b.cols+1)
		}
	}
	return out
}
