package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the application's router: global middleware first, then the
// public authentication and health routes, then the token-protected API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	router.Use(withGzipRequest)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/health", h.health)
	})

	// routes that require a valid token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/reset-password", h.resetPassword)
		r.Post("/api/auth/token-refresh", h.refreshToken)
		r.Get("/api/auth/me", h.me)

		r.Post("/api/sync/account", h.syncAccounts)
		r.Post("/api/sync/categories", h.syncCategories)
		r.Post("/api/sync/reminders", h.syncReminders)
		r.Post("/api/sync/events", h.syncEvents)

		r.Get("/api/account", h.listAccounts)
		r.Get("/api/categories", h.listCategories)
		r.Get("/api/reminders", h.listReminders)
		r.Get("/api/events", h.listEvents)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// CheckHTTPMethod overrides chi's default 405 handler: when a request path
// matches a registered route but the method is not handled, respond with 404
// instead, hiding the route from callers probing with unsupported methods.
// Requests whose method IS registered are forwarded to the normal pipeline.
//
// Only exact pattern matches are considered; parameterised segments are not
// expanded during the lookup.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		allRoutes := router.Routes()
		var foundRoute chi.Route
		for _, route := range allRoutes {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
