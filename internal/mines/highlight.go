package mines

// Highlight computes the cells that should render as pressed while the
// primary pointer button is held over (row, col). It never mutates the
// board:
//
//   - a position outside the grid highlights nothing;
//   - a closed cell highlights itself;
//   - a flagged cell and an open zero-count cell highlight nothing;
//   - an open numbered cell highlights its closed neighbors, the set a
//     chord would open.
func (b *Board) Highlight(row, col int) []Point {
	if !b.InBounds(row, col) {
		return nil
	}
	i := b.index(row, col)
	switch b.cells[i] {
	case Closed:
		return []Point{{Row: row, Col: col}}
	case Flagged:
		return nil
	}
	if b.counts[i] == 0 {
		return nil
	}
	var pts []Point
	for _, j := range b.neighbors(i) {
		if b.cells[j] == Closed {
			pts = append(pts, b.point(j))
		}
	}
	return pts
}
