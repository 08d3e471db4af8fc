package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// unauthenticated probes
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
	})

	// interactive dashboard surface: session cookie required
	router.Group(func(r chi.Router) {
		r.Use(h.sessionAuth)

		r.Get("/api/keys", h.listKeys)
		r.Post("/api/keys", h.createKey)
		r.Get("/api/keys/{keyID}", h.getMaskedKey)
		r.Patch("/api/keys/{keyID}", h.updateKey)
		r.Delete("/api/keys/{keyID}", h.deleteKey)

		r.Get("/api/projects", h.listProjects)
		r.Post("/api/projects", h.createProject)
		r.Delete("/api/projects/{projectID}", h.deleteProject)

		r.Get("/api/projects/{projectID}/keys", h.listProjectKeys)
		r.Post("/api/projects/{projectID}/keys", h.createProjectKey)
		r.Delete("/api/projects/{projectID}/keys/{keyID}", h.deleteKey)
	})

	// trusted-server surface: shared secret, never cookies
	router.Group(func(r chi.Router) {
		r.Use(h.serverSecretAuth)

		r.Post("/api/keys/fetch", h.fetchKey)
	})

	// cron scheduler surface
	router.Group(func(r chi.Router) {
		r.Use(h.cronAuth)

		r.Get("/api/cron/agents", h.runAgents)
		r.Get("/api/cron/usage-fetcher", h.fetchUsage)
		r.Get("/api/cron/runs", h.listAgentRuns)
	})

	return router
}
