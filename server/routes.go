package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	if s.opts.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.opts.RateLimit, time.Minute))
	}
	r.Use(middleware.Heartbeat("/health"))
	r.Use(middleware.GetHead)
	r.Use(s.cacheControl)

	r.Mount("/static", http.FileServer(s.assets))
	r.Get("/media/*", s.serveMedia)

	r.Handle("/robots.txt", s.serveFile("static/robots.txt", "text/plain; charset=utf-8"))
	r.Handle("/favicon.ico", s.serveFile("static/images/logo.svg", "image/svg+xml"))

	r.Get("/", s.HandleIndex)
	r.Get("/project", s.HandleProject)

	r.Route("/api", func(r chi.Router) {
		if c := s.corsHandler(); c != nil {
			r.Use(c)
		}
		r.NotFound(s.apiNotFound)
		r.MethodNotAllowed(s.apiMethodNotAllowed)

		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
			r.MethodFunc(method, "/", s.HandleAPI)
		}
		r.Get("/projects", s.HandleProjectList)
		r.Get("/projects/{id:[0-9]+}", s.HandleProjectDetail)
		r.Get("/projects/{id:[0-9]+}/", s.HandleProjectDetail)
	})

	// Any other page path falls back to the home page.
	r.NotFound(s.handleFallback)

	return r
}

func (s *Server) corsHandler() func(http.Handler) http.Handler {
	var origins []string
	switch {
	case s.opts.CORSAllowAll:
		origins = []string{"*"}
	case len(s.opts.CORSAllowedOrigins) > 0:
		origins = s.opts.CORSAllowedOrigins
	default:
		return nil
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-CSRFToken"},
		MaxAge:         86400,
	})
}
