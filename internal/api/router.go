package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/vishalsx/tubstudio-sub001/internal/api/handlers"
	"github.com/vishalsx/tubstudio-sub001/internal/api/middleware"
	"github.com/vishalsx/tubstudio-sub001/internal/auth"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/session"
)

func NewRouter(sessions *session.Manager, jwtService *auth.JWTService, corsOrigins []string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	h := handlers.NewSessionHandler(sessions, log)

	r.Get("/api/health", handlers.Health)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.State)
			r.Delete("/", h.Delete)
			r.Post("/languages", h.SelectLanguage)
			r.Delete("/languages/{lang}", h.DeselectLanguage)
			r.Put("/active-tab", h.SetActiveTab)
			r.Put("/mode", h.SetMode)
			r.Post("/image", h.AttachImage)
			r.Post("/identify", h.Identify)
			r.Patch("/translations/{lang}", h.UpdateTranslation)
			r.Post("/translations/{lang}/toggle-edit", h.ToggleEdit)
			r.Patch("/common", h.UpdateCommon)
			r.Post("/save", h.Save)
			r.Post("/skip", h.Skip)
			r.Post("/worklist/refresh", h.RefreshWorklist)
		})
	})

	return r
}
