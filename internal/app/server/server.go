// Package server wires the HTTP handlers and middleware into a chi router.
package server

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/app/handler"
	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/middleware"
	"github.com/shorturlproject/shorturl/internal/models"
)

// Options tune the router.
type Options struct {
	// TrustedSubnet, when set, restricts the admin endpoints to clients inside it.
	TrustedSubnet *net.IPNet
	// CORSOrigins lists browser origins allowed to call the API; empty allows any.
	CORSOrigins []string
}

func Init(links service.LinkServiceIface, auth service.AuthIface, opts Options, logger *zap.Logger) *chi.Mux {
	public := handler.NewPublic(links, logger)
	accounts := handler.NewAuth(auth, logger)
	owned := handler.NewLinks(links, logger)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithCORS(opts.CORSOrigins))

	r.Get("/", public.Root)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.WithGzip)
		r.Use(middleware.WithBearer(auth))

		r.Get("/health", public.Health)
		r.Post("/auth/register", accounts.Register)
		r.Post("/auth/login", accounts.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/me", accounts.Me)
			r.Post("/shorten", owned.Shorten)
			r.Get("/user/links", owned.List)
			r.Put("/user/links/{code}", owned.Update)
			r.Delete("/user/links/{code}", owned.Delete)
			r.Get("/stats/{code}", owned.Stats)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.WithTrustedSubnet(opts.TrustedSubnet))
			r.Use(middleware.RequireAdmin)

			r.Get("/admin/dashboard", owned.Dashboard)
		})
	})

	r.Get("/{code}", public.Redirect)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	return r
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
