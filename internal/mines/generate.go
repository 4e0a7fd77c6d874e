package mines

// placeMines samples mineCount positions uniformly, without replacement,
// from the cells allowed around the first-opened cell, then precomputes
// every cell's neighboring mine count.
//
// A cell is allowed if any of the following holds:
//
//  1. it lies outside the 3x3 neighborhood of the first-opened cell;
//  2. the board is too dense to keep that whole neighborhood clear
//     (mineCount > rows*cols-9), in which case only the opened cell itself
//     is excluded;
//  3. every cell must carry a mine (mineCount == rows*cols).
//
// Rule 1 guarantees the opening move reveals a region on sparse boards;
// rules 2 and 3 keep dense and saturated boards constructible.
func (b *Board) placeMines(firstRow, firstCol int) {
	total := b.rows * b.cols
	first := b.index(firstRow, firstCol)

	allowed := make([]int, 0, total)
	for i := range total {
		row, col := i/b.cols, i%b.cols
		switch {
		case abs(row-firstRow) > 1 || abs(col-firstCol) > 1:
			allowed = append(allowed, i)
		case b.mineCount > total-9 && i != first:
			allowed = append(allowed, i)
		case b.mineCount == total:
			allowed = append(allowed, i)
		}
	}

	b.rnd.Shuffle(len(allowed), func(x, y int) {
		allowed[x], allowed[y] = allowed[y], allowed[x]
	})
	for _, i := range allowed[:b.mineCount] {
		b.plantMine(i)
	}
}

func (b *Board) plantMine(i int) {
	b.mined[i] = true
	for _, j := range b.neighbors(i) {
		b.counts[j]++
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
