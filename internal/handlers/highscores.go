package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/minefield-server/internal/repository"
)

type HighscoreHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewHighscoreHandler(logger *slog.Logger, db *pgxpool.Pool) *HighscoreHandler {
	return &HighscoreHandler{
		logger: logger,
		repo:   repository.New(db),
	}
}

type highscoreFilterDTO struct {
	Username  *string `schema:"username"`
	Rows      *int    `schema:"rows"`
	Cols      *int    `schema:"cols"`
	MineCount *int    `schema:"mine_count"`
	Limit     int     `schema:"limit"`
}

func (h HighscoreHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var dto highscoreFilterDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	filter := repository.HighscoreFilter{
		Username: dto.Username,
		NRows:    dto.Rows,
		NCols:    dto.Cols,
		NMines:   dto.MineCount,
		Limit:    dto.Limit,
	}

	highscores, err := h.repo.FetchHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, map[string][]repository.Highscore{
		"highscores": highscores,
	})
}
