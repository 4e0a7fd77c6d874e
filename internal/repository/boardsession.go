package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/avolkov/minefield-server/internal/mines"
)

type BoardSession struct {
	BoardSessionId int64
	PlayerId       *int64
	NRows          int
	NCols          int
	NMines         int
	Status         string
	State          []byte
	StartedAt      pgtype.Timestamptz
	EndedAt        pgtype.Timestamptz
	PlaytimeMs     *float64
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

// CreateBoardSession stores a freshly created board. playerId may be nil
// for anonymous play.
func (q Queries) CreateBoardSession(
	ctx context.Context, playerId *int64, board *mines.Board,
) (*BoardSession, error) {
	state, err := board.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("unable to serialize board: %w", err)
	}
	args := pgx.NamedArgs{
		"player_id": playerId,
		"n_rows":    board.Rows(),
		"n_cols":    board.Cols(),
		"n_mines":   board.MineCount(),
		"status":    board.Status().String(),
		"state":     state,
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO board_session (
			player_id, n_rows, n_cols, n_mines, status, state
		)
		VALUES (
			@player_id, @n_rows, @n_cols, @n_mines, @status, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[BoardSession],
	)
}

func (q Queries) FetchBoardSession(
	ctx context.Context, boardSessionId int64,
) (*BoardSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM board_session WHERE board_session_id = $1;",
		boardSessionId,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[BoardSession],
	)
}

type UpdateBoardSessionParams struct {
	NRows      int
	NCols      int
	NMines     int
	Status     string
	State      []byte
	EndedAt    *time.Time
	PlaytimeMs *float64
}

func (q Queries) UpdateBoardSession(
	ctx context.Context, boardSessionId int64, params UpdateBoardSessionParams,
) error {
	args := pgx.NamedArgs{
		"board_session_id": boardSessionId,
		"n_rows":           params.NRows,
		"n_cols":           params.NCols,
		"n_mines":          params.NMines,
		"status":           params.Status,
		"state":            params.State,
		"ended_at":         params.EndedAt,
		"playtime_ms":      params.PlaytimeMs,
	}
	_, err := q.db.Exec(
		ctx,
		`UPDATE board_session SET
			n_rows = @n_rows,
			n_cols = @n_cols,
			n_mines = @n_mines,
			status = @status,
			state = @state,
			ended_at = @ended_at,
			playtime_ms = @playtime_ms,
			updated_at = now()
		WHERE board_session_id = @board_session_id;`,
		args,
	)
	return err
}
