package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/collecta/internal/http/agent"
	"github.com/MrJamesThe3rd/collecta/internal/http/auth"
	"github.com/MrJamesThe3rd/collecta/internal/http/export"
	"github.com/MrJamesThe3rd/collecta/internal/http/importsheet"
	"github.com/MrJamesThe3rd/collecta/internal/http/loan"
	"github.com/MrJamesThe3rd/collecta/internal/http/report"
	"github.com/MrJamesThe3rd/collecta/internal/http/session"
)

type Options struct {
	Timeout     time.Duration
	CORSOrigins []string
	Tokens      *auth.Tokens
	Lookup      auth.Lookup
}

type Handlers struct {
	Session *session.Handler
	Loans   *loan.Handler
	Agents  *agent.Handler
	Import  *importsheet.Handler
	Reports *report.Handler
	Export  *export.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	authenticate := auth.Middleware(opts.Tokens, opts.Lookup)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Session.Routes(r, authenticate)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/loans", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Loans.Routes(r)
			})

			r.Route("/import", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				h.Import.Routes(r)
			})

			r.Route("/agents", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Use(middleware.AllowContentType("application/json"))
				h.Agents.Routes(r)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				h.Reports.Routes(r)
			})

			r.Route("/export", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				h.Export.Routes(r)
			})
		})
	})

	return router
}
