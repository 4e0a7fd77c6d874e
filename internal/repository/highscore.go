package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	BoardSessionId int64   `json:"board_session_id"`
	Username       *string `json:"username"`
	NRows          int     `json:"rows"`
	NCols          int     `json:"cols"`
	NMines         int     `json:"mine_count"`
	PlaytimeMs     float64 `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username *string
	NRows    *int
	NCols    *int
	NMines   *int
	Limit    int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.NRows != nil {
		clauses = append(clauses, "n_rows = @n_rows")
		args["n_rows"] = *f.NRows
	}
	if f.NCols != nil {
		clauses = append(clauses, "n_cols = @n_cols")
		args["n_cols"] = *f.NCols
	}
	if f.NMines != nil {
		clauses = append(clauses, "n_mines = @n_mines")
		args["n_mines"] = *f.NMines
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) FetchHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		board_session_id,
		username,
		n_rows,
		n_cols,
		n_mines,
		playtime_ms
	FROM board_session
		LEFT OUTER JOIN player USING (player_id)
	WHERE
		status = 'victory'
		AND playtime_ms IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms"

	if filter.Limit > 0 {
		query += " LIMIT @row_limit"
		args["row_limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query+";", args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
