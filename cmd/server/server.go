package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/ecopoint/internal/config"
	"github.com/JaimeStill/ecopoint/internal/infrastructure"
)

// Server owns the shared infrastructure and the HTTP listener in front of
// the mounted modules.
type Server struct {
	infra  *infrastructure.Infrastructure
	http   *httpServer
	logger *slog.Logger
}

// NewServer connects the infrastructure and mounts every module. Nothing
// listens until Start.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("infrastructure: %w", err)
	}

	handler, err := buildHandler(infra, cfg)
	if err != nil {
		return nil, err
	}

	logger := infra.Logger.With("version", cfg.Version, "env", cfg.Env())
	logger.Info("server initialized", "addr", cfg.Server.Addr())

	return &Server{
		infra:  infra,
		http:   newHTTPServer(&cfg.Server, cfg.ShutdownTimeoutDuration(), handler, infra.Logger),
		logger: logger,
	}, nil
}

// buildHandler mounts the modules onto the health router.
func buildHandler(infra *infrastructure.Infrastructure, cfg *config.Config) (http.Handler, error) {
	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("modules: %w", err)
	}
	router := buildRouter(infra)
	modules.Mount(router)
	return router, nil
}

// Start launches the infrastructure and then the listener. Readiness flips
// in the background once every startup hook has returned.
func (s *Server) Start() error {
	s.logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return fmt.Errorf("start infrastructure: %w", err)
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return fmt.Errorf("start http: %w", err)
	}

	lc := s.infra.Lifecycle
	go func() {
		lc.WaitForStartup()
		s.logger.Info("all subsystems ready")
	}()
	return nil
}

// Shutdown cancels the lifecycle and waits up to timeout for every
// subsystem to drain.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("initiating shutdown", "timeout", timeout)
	if err := s.infra.Lifecycle.Shutdown(timeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
