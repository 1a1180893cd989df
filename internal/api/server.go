package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"flupp/internal/config"
	"flupp/internal/flupp"
	"flupp/internal/logbook"
	"flupp/internal/logging"
)

// maxDecodeBody bounds the size of a posted export.
const maxDecodeBody = 32 << 20

// Server exposes the logbook store over HTTP.
type Server struct {
	bind   string
	store  *logbook.Store
	cache  *lru.Cache[string, *flupp.Document]
	logger *slog.Logger

	server   *http.Server
	listener net.Listener
}

// New constructs a Server. The store may be nil, in which case only the
// health and decode endpoints are functional.
func New(cfg *config.Config, store *logbook.Store, logger *slog.Logger) (*Server, error) {
	size := cfg.API.CacheEntries
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, *flupp.Document](size)
	if err != nil {
		return nil, fmt.Errorf("create decode cache: %w", err)
	}
	s := &Server{
		bind:   cfg.API.Bind,
		store:  store,
		cache:  cache,
		logger: logging.NewComponentLogger(logger, "api"),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Listen binds the configured address. It is separate from Serve so callers
// can learn the chosen port before serving.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}

// Serve handles requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(s.listener)
	}()
	s.logger.Info("api server listening", logging.String("address", s.Addr()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}
