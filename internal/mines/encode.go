package mines

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"time"
)

// boardState is the gob image of a [Board]. Only plain data crosses the
// boundary; the rand source, the clock and the status listener are
// reattached on decode.
type boardState struct {
	Rows, Cols, MineCount int
	Mined                 []bool
	Counts                []uint8
	Cells                 []CellStatus
	MinesLeft             int
	ToOpen                int
	Losing                int
	Status                Status
	StartedAt             time.Time
	Elapsed               time.Duration
}

// [Board] implements [encoding.BinaryMarshaler]
func (b *Board) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardState{
		Rows:      b.rows,
		Cols:      b.cols,
		MineCount: b.mineCount,
		Mined:     b.mined,
		Counts:    b.counts,
		Cells:     b.cells,
		MinesLeft: b.minesLeft,
		ToOpen:    b.toOpen,
		Losing:    b.losing,
		Status:    b.status,
		StartedAt: b.startedAt,
		Elapsed:   b.elapsed,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Board] implements [encoding.BinaryUnmarshaler]
func (b *Board) UnmarshalBinary(data []byte) error {
	var s boardState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	b.rows, b.cols, b.mineCount = s.Rows, s.Cols, s.MineCount
	b.mined, b.counts, b.cells = s.Mined, s.Counts, s.Cells
	b.minesLeft, b.toOpen, b.losing = s.MinesLeft, s.ToOpen, s.Losing
	b.status = s.Status
	b.startedAt, b.elapsed = s.StartedAt, s.Elapsed
	b.now = time.Now
	return nil
}

// DecodeBoard restores a playable board from its binary form. The rand
// source is only consulted if the board has not had its mines placed yet.
func DecodeBoard(data []byte, rnd *rand.Rand) (*Board, error) {
	b := &Board{}
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	b.rnd = rnd
	return b, nil
}
