package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/minefield-server/internal/config"
	"github.com/avolkov/minefield-server/internal/middleware"
	"github.com/avolkov/minefield-server/internal/mines"
	"github.com/avolkov/minefield-server/internal/repository"
)

type BoardHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewBoardHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *BoardHandler {
	return &BoardHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

func (h BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseBoardParamsDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	board, err := mines.New(dto.Rows, dto.Cols, dto.MineCount, h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		playerId = &claims.PlayerId
	}

	session, err := h.repo.CreateBoardSession(r.Context(), playerId, board)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create board session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewBoardSessionDTO(session, board))
}

func (h BoardHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, board, ok := h.fetchBoard(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewBoardSessionDTO(session, board))
}

var errUnknownMove = fmt.Errorf(`move must be "open" or "flag"`)

func (h BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pos, err := ParsePositionDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, board, ok := h.fetchBoard(w, r)
	if !ok {
		return
	}

	if !board.InBounds(pos.Row, pos.Col) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	switch query.Get("move") {
	case "open":
		board.OpenCell(pos.Row, pos.Col)
	case "flag":
		board.ToggleFlag(pos.Row, pos.Col)
	default:
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(errUnknownMove))
		return
	}

	h.saveAndReply(w, r, session, board)
}

func (h BoardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseBoardParamsDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, board, ok := h.fetchBoard(w, r)
	if !ok {
		return
	}

	if err := board.Reset(dto.Rows, dto.Cols, dto.MineCount); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	h.saveAndReply(w, r, session, board)
}

// Highlight is a pure query used by renderers for pressed-cell feedback;
// it never touches stored state.
func (h BoardHandler) Highlight(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	_, board, ok := h.fetchBoard(w, r)
	if !ok {
		return
	}

	cells := board.Highlight(pos.Row, pos.Col)
	if cells == nil {
		cells = []mines.Point{}
	}
	sendJSONOrLog(w, h.logger, map[string][]mines.Point{"cells": cells})
}

func (h BoardHandler) fetchBoard(
	w http.ResponseWriter, r *http.Request,
) (*repository.BoardSession, *mines.Board, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := h.repo.FetchBoardSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch board session", "error", err)
		return nil, nil, false
	}

	board, err := mines.DecodeBoard(session.State, h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid board_session.state", "error", err)
		return nil, nil, false
	}

	board.OnStatusChange(func(s mines.Status) {
		h.logger.Debug(
			"board status changed",
			slog.Int64("boardSessionId", session.BoardSessionId),
			slog.String("status", s.String()),
		)
	})

	return session, board, true
}

// terminalParams derives the session update for the board's current
// state, stamping ended_at and the winning playtime once the game
// finishes and clearing them after a reset.
func (h BoardHandler) terminalParams(
	session *repository.BoardSession, board *mines.Board,
) repository.UpdateBoardSessionParams {
	params := repository.UpdateBoardSessionParams{
		NRows:  board.Rows(),
		NCols:  board.Cols(),
		NMines: board.MineCount(),
		Status: board.Status().String(),
	}
	if !board.Status().Terminal() {
		session.EndedAt.Valid = false
		return params
	}
	if !session.EndedAt.Valid {
		session.EndedAt.Time = time.Now().UTC()
		session.EndedAt.Valid = true
	}
	params.EndedAt = &session.EndedAt.Time
	if board.Status() == mines.Victory {
		playtime := float64(board.Elapsed().Milliseconds())
		params.PlaytimeMs = &playtime
	}
	return params
}

func (h BoardHandler) saveAndReply(
	w http.ResponseWriter,
	r *http.Request,
	session *repository.BoardSession,
	board *mines.Board,
) {
	params := h.terminalParams(session, board)

	state, err := board.MarshalBinary()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to serialize board", "error", err)
		return
	}
	params.State = state

	err = h.repo.UpdateBoardSession(r.Context(), session.BoardSessionId, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to update board session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewBoardSessionDTO(session, board))
}
