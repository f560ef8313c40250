package app

import (
	"net/http"

	"github.com/vancomm/shieldsweeper/internal/config"
	"github.com/vancomm/shieldsweeper/internal/handlers"
	"github.com/vancomm/shieldsweeper/internal/middleware"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.registry, a.tokens, a.cfg.Cookies, config.NewUpgrader(),
	)
	records := handlers.NewRecordsHandler(a.log, recordStore{a})
	owner := middleware.RequireSession(a.log, a.tokens)

	a.router.HandleFunc("GET /v1/layout", game.Layout)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.Handle("POST /v1/game/{id}/reveal", owner(http.HandlerFunc(game.Reveal)))
	a.router.Handle("POST /v1/game/{id}/flag", owner(http.HandlerFunc(game.Flag)))
	a.router.Handle("POST /v1/game/{id}/reset", owner(http.HandlerFunc(game.Reset)))
	a.router.Handle("DELETE /v1/game/{id}", owner(http.HandlerFunc(game.Close)))
	a.router.Handle("GET /v1/game/{id}/connect", owner(http.HandlerFunc(game.Connect)))

	a.router.HandleFunc("GET /v1/records", records.List)
	a.router.HandleFunc("GET /v1/highscores", records.Highscores)
}
