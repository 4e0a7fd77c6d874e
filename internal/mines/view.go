package mines

// View projects the board into renderable cell states. While the game is
// on, covered cells give nothing away. Once it is lost every mine is shown:
// the detonated one on its own value, flags that missed crossed out. After
// a victory the mines show up flagged because win marked them so.
func (b *Board) View() GridView {
	g := make(GridView, len(b.cells))
	for i := range b.cells {
		g[i] = b.viewCell(i)
	}
	return g
}

func (b *Board) viewCell(i int) CellState {
	if b.status == GameOver {
		switch {
		case i == b.losing:
			return ExplodedMine
		case b.mined[i] && b.cells[i] != Flagged:
			return UnflaggedMine
		case !b.mined[i] && b.cells[i] == Flagged:
			return WrongFlag
		}
	}
	switch b.cells[i] {
	case Flagged:
		return Flag
	case Opened:
		return CellState(b.counts[i])
	default:
		return Covered
	}
}
