package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/avolkov/minefield-server/internal/mines"
)

// The live-play protocol is a text frame of newline-separated commands:
//
//	o ROW COL          open a cell (flood fill / chord included)
//	f ROW COL          toggle a flag
//	h ROW COL          query the pressed-cell highlight
//	r ROWS COLS MINES  reset the board
//	g                  no-op, just fetch the current state
//
// Every frame is answered with the updated session DTO; `h` additionally
// sends the highlight set first.
type wsCommand string

const (
	wsFetch     wsCommand = "g"
	wsOpen      wsCommand = "o"
	wsFlag      wsCommand = "f"
	wsHighlight wsCommand = "h"
	wsReset     wsCommand = "r"
)

func parseInts(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d arguments, got %d", want, len(args))
	}
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		out[i] = n
	}
	return out, nil
}

type boardExecutor struct {
	board *mines.Board
	conn  *websocket.Conn
}

func (e boardExecutor) position(args []string) (row, col int, err error) {
	pos, err := parseInts(args, 2)
	if err != nil {
		return 0, 0, err
	}
	if !e.board.InBounds(pos[0], pos[1]) {
		return 0, 0, fmt.Errorf("invalid cell position")
	}
	return pos[0], pos[1], nil
}

func (e boardExecutor) execute(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsFetch:
		return nil
	case wsOpen:
		row, col, err := e.position(args)
		if err != nil {
			return err
		}
		e.board.OpenCell(row, col)
		return nil
	case wsFlag:
		row, col, err := e.position(args)
		if err != nil {
			return err
		}
		e.board.ToggleFlag(row, col)
		return nil
	case wsHighlight:
		pos, err := parseInts(args, 2)
		if err != nil {
			return err
		}
		cells := e.board.Highlight(pos[0], pos[1])
		if cells == nil {
			cells = []mines.Point{}
		}
		return e.conn.WriteJSON(map[string][]mines.Point{"cells": cells})
	case wsReset:
		params, err := parseInts(args, 3)
		if err != nil {
			return err
		}
		return e.board.Reset(params[0], params[1], params[2])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (h BoardHandler) Connect(w http.ResponseWriter, r *http.Request) {
	session, board, ok := h.fetchBoard(w, r)
	if !ok {
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	exec := boardExecutor{board: board, conn: conn}

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		for _, line := range strings.Split(string(buf), "\n") {
			if err := exec.execute(strings.TrimSpace(line)); err != nil {
				h.logger.Debug("rejected ws command", slog.Any("error", err))
				if err := conn.WriteJSON(wrapError(err)); err != nil {
					return
				}
			}
		}

		params := h.terminalParams(session, board)
		state, err := board.MarshalBinary()
		if err != nil {
			h.logger.Error("unable to serialize board", slog.Any("error", err))
			return
		}
		params.State = state

		err = h.repo.UpdateBoardSession(r.Context(), session.BoardSessionId, params)
		if err != nil {
			h.logger.Error("unable to update board session", slog.Any("error", err))
			return
		}

		if err := conn.WriteJSON(NewBoardSessionDTO(session, board)); err != nil {
			h.logger.Error("unable to write json", slog.Any("error", err))
			return
		}
	}
}
