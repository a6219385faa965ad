// Package httpapi exposes the analytics report over a JSON HTTP API.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/skupulse/skupulse-manager/internal/dependency"
)

// Config is the configuration for the http server.
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server.
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server.
func New(c *Config) *Server {
	return &Server{
		c:    c,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(reporter dependency.Reporter, auth *jwtauth.JWTAuth) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{http.MethodHead, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// The report fans out three upstream API calls; keep callers honest.
	r.Use(httprate.Limit(
		10,
		15*time.Second,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(jwtauth.Verifier(auth))
		r.Use(jwtauth.Authenticator(auth))
		r.Get("/sku-metrics", handleSkuMetrics(reporter))
	})

	return r
}

// Start begins serving the analytics API.
func (s *Server) Start(ctx context.Context, reporter dependency.Reporter, auth *jwtauth.JWTAuth) error {
	addr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    addr,
		Handler: s.router(reporter, auth),
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("skupulse listener on: http://%v", addr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else if err != nil {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("error", err.Error()))
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) {
	if s.hs == nil {
		return
	}
	if err := s.hs.Shutdown(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "http server shutdown",
			slog.String("error", err.Error()))
	}
}
