package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	var repo *repository.Queries
	if a.db != nil {
		repo = repository.New(a.db)
	}

	game := handlers.NewGameHandler(
		a.logger, a.sessions, repo, a.ws, createRand(), a.maxCells,
	)
	limited := func(h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(a.logger, a.redis, a.rateLimit)(h)
	}

	a.router.Handle("POST /game", limited(game.NewGame))
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.Handle("POST /game/{id}/move", limited(game.MakeAMove))
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /highscores", game.Highscores)
	a.router.Handle("GET /metrics", promhttp.Handler())
}
