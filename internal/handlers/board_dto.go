package handlers

import (
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/avolkov/minefield-server/internal/mines"
	"github.com/avolkov/minefield-server/internal/repository"
)

type BoardParamsDTO struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseBoardParamsDTO(query url.Values) (BoardParamsDTO, error) {
	var dto BoardParamsDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, query)
	return dto, err
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePositionDTO(query url.Values) (PositionDTO, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, query)
	return dto, err
}

type BoardSessionDTO struct {
	BoardSessionId string         `json:"board_session_id"`
	Grid           mines.GridView `json:"grid"`
	Rows           int            `json:"rows"`
	Cols           int            `json:"cols"`
	MineCount      int            `json:"mine_count"`
	MinesLeft      int            `json:"mines_left"`
	Status         mines.Status   `json:"status"`
	ElapsedMs      int64          `json:"elapsed_ms"`
	LosingCell     *mines.Point   `json:"losing_cell,omitempty"`
	StartedAt      int64          `json:"started_at"`
	EndedAt        *int64         `json:"ended_at,omitempty"`
}

func NewBoardSessionDTO(
	session *repository.BoardSession, board *mines.Board,
) *BoardSessionDTO {
	dto := &BoardSessionDTO{
		BoardSessionId: strconv.FormatInt(session.BoardSessionId, 10),
		Grid:           board.View(),
		Rows:           board.Rows(),
		Cols:           board.Cols(),
		MineCount:      board.MineCount(),
		MinesLeft:      board.MinesLeft(),
		Status:         board.Status(),
		ElapsedMs:      board.Elapsed().Milliseconds(),
		StartedAt:      session.StartedAt.Time.UnixMilli(),
	}
	if losing, over := board.LosingCell(); over {
		dto.LosingCell = &losing
	}
	if session.EndedAt.Valid {
		endedAt := session.EndedAt.Time.UnixMilli()
		dto.EndedAt = &endedAt
	}
	return dto
}
