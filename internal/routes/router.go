package routes

import (
	"log/slog"

	"games_api/internal/controllers"
	mwLogger "games_api/internal/middleware"
	"games_api/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRouter wires the /games resource. chi tries static segments before
// parameters at every level, so /games/count and friends always win over
// /games/{id} whatever the registration order.
func SetupRouter(log *slog.Logger, storage services.GameStorage, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mwLogger.NewLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	gameService := services.NewGameService(storage, log)
	gameController := controllers.NewGameController(gameService, log)

	r.Route("/games", func(r chi.Router) {
		r.Get("/", gameController.GetAll)
		r.Post("/", gameController.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", gameController.GetByID)
			r.Put("/", gameController.Update)
			r.Delete("/", gameController.Delete)
		})

		r.Get("/count", gameController.Count)
		r.Get("/first", gameController.First)
		r.Get("/last", gameController.Last)
		r.Get("/statistics", gameController.Statistics)
		r.Get("/filter", gameController.Filter)
	})

	return r
}
