// Package web serves the JSON API over HTTP.
package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/album"
	"github.com/musicwheel/music-wheel/internal/social"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr         string
	Albums       *album.Service
	Social       *social.Service
	TempDir      string
	StoreTimeout time.Duration
	Logger       *zap.Logger
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	log      *zap.Logger
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) *Server {
	handlers := NewHandlers(cfg.Albums, cfg.Social, cfg.TempDir, cfg.StoreTimeout, cfg.Logger)

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: handlers,
		log:      cfg.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Minute, // uploads can be large
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
}

// setupRoutes configures routes for the API.
func (s *Server) setupRoutes() {
	s.router.Get("/api/albums/list", s.handlers.ListAlbums)
	s.router.Get("/api/album/load", s.handlers.LoadAlbum)
	s.router.Post("/api/album/init", s.handlers.InitAlbum)
	s.router.Post("/api/album/delete", s.handlers.DeleteAlbum)

	s.router.Post("/api/upload/track", s.handlers.UploadTrack)

	s.router.Post("/api/social/like", s.handlers.ToggleLike)
	s.router.Post("/api/social/comment", s.handlers.AddComment)
	s.router.Get("/api/social/comments", s.handlers.GetComments)

	s.router.Get("/api/proxy/audio", s.handlers.ProxyAudio)
}

// Router returns the configured router, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return err
	}

	s.log.Info("server stopped")
	return nil
}
