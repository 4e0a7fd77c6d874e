package mines

// floodFill opens the cell at flat index i and, breadth-first, every closed
// cell reachable through zero-count cells. Cells with a positive count are
// opened but not expanded, so the fill stops at the numbered boundary of
// the region. Each cell is opened at most once.
func (b *Board) floodFill(i int) {
	queue := make([]int, 0, b.toOpen)
	b.cells[i] = Opened
	b.toOpen--
	queue = append(queue, i)

	for len(queue) > 0 {
		i, queue = queue[0], queue[1:]
		if b.counts[i] > 0 {
			continue
		}
		for _, j := range b.neighbors(i) {
			if b.cells[j] == Closed {
				b.cells[j] = Opened
				b.toOpen--
				queue = append(queue, j)
			}
		}
	}

	if b.toOpen == 0 {
		b.win()
	}
}

// chord opens all closed neighbors of an open numbered cell once the
// player has flagged exactly as many of its neighbors as its count. A mined
// neighbor ends the game immediately; it is reported as the losing cell
// even when a later neighbor is mined too.
func (b *Board) chord(i int) {
	ns := b.neighbors(i)

	flagged := 0
	for _, j := range ns {
		if b.cells[j] == Flagged {
			flagged++
		}
	}
	if flagged != int(b.counts[i]) {
		return
	}

	for _, j := range ns {
		if b.cells[j] != Closed {
			continue
		}
		if b.mined[j] {
			b.detonate(j)
			return
		}
		b.floodFill(j)
	}
}

func (b *Board) detonate(i int) {
	b.losing = i
	b.cells[i] = Opened
	b.elapsed = b.now().Sub(b.startedAt)
	b.setStatus(GameOver)
}

// win flags every mine for display and freezes the clock. The flags placed
// here do not go through ToggleFlag bookkeeping; the mines-left counter is
// simply zeroed.
func (b *Board) win() {
	b.minesLeft = 0
	for i, mined := range b.mined {
		if mined {
			b.cells[i] = Flagged
		}
	}
	b.elapsed = b.now().Sub(b.startedAt)
	b.setStatus(Victory)
}
