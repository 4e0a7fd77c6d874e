package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/avolkov/minefield-server/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	board := handlers.NewBoardHandler(a.logger, a.db, a.ws, createRand())
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	highscores := handlers.NewHighscoreHandler(a.logger, a.db)

	a.router.HandleFunc("POST /board", board.Create)
	a.router.HandleFunc("GET /board/{id}", board.Fetch)
	a.router.HandleFunc("POST /board/{id}/move", board.Move)
	a.router.HandleFunc("POST /board/{id}/reset", board.Reset)
	a.router.HandleFunc("GET /board/{id}/highlight", board.Highlight)
	a.router.HandleFunc("GET /board/{id}/connect", board.Connect)

	a.router.HandleFunc("GET /highscores", highscores.Fetch)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)
}
