package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/emovoice/backend/internal/handler/voice"
	middlewarePkg "github.com/zhouzirui/emovoice/backend/internal/middleware"
)

// NewRouter wires HTTP routes to the voice conversation handler.
func NewRouter(voiceHandler *voice.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", voiceHandler.HandleRoot)
	r.Get("/health", voiceHandler.HandleHealth)

	r.Route("/api", func(api chi.Router) {
		voiceHandler.RegisterRoutes(api)
	})

	return r
}
