package routes

import (
	"time"

	"github.com/Dosada05/poule-tournament/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes регистрирует все маршруты API на router.
func SetupRoutes(
	router chi.Router,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.Post("/", tournamentHandler.CreateHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetByIDHandler)
				r.Delete("/", tournamentHandler.DeleteHandler)
				r.Post("/players", tournamentHandler.RegisterPlayersHandler)
				r.Post("/groups", tournamentHandler.DrawGroupsHandler)
				r.Put("/groups/{groupIndex}/matches/{matchIndex}", tournamentHandler.RecordGroupResultHandler)
				r.Post("/qualification", tournamentHandler.CompleteGroupStageHandler)
				r.Get("/qualification", tournamentHandler.GetQualificationHandler)
				r.Post("/knockout", tournamentHandler.StartKnockoutHandler)
				r.Put("/knockout/rounds/{roundIndex}/matches/{matchIndex}", tournamentHandler.RecordKnockoutResultHandler)
				r.Delete("/knockout/rounds/{roundIndex}/matches/{matchIndex}", tournamentHandler.ReopenKnockoutMatchHandler)
				r.Post("/reset", tournamentHandler.ResetHandler)
				r.Post("/export", tournamentHandler.ExportHandler)
			})
		})
	})
}
