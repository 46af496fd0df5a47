// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/logging"
	"github.com/recipebook/recipebook/pkg/serializer"
)

// Server represents the HTTP server
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported by the root route.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds routes served behind the middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithSiteDir serves the built site in dir at "/".
func WithSiteDir(dir string) Option {
	return func(s *Server) {
		s.config.SiteDir = dir
	}
}

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// New creates a server from defaults and opts.
func New(opts ...Option) *Server {
	s := &Server{
		config: parseConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.config.Handlers == nil {
		s.config.Handlers = make(map[string]http.HandlerFunc)
	}
	if _, ok := s.config.Handlers["/"]; !ok {
		if s.config.SiteDir != "" {
			s.config.Handlers["/"] = http.FileServer(http.Dir(s.config.SiteDir)).ServeHTTP
		} else {
			s.config.Handlers["/"] = s.handleDefault
		}
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}

	return s
}

// Handler returns the root handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// Application routes, including "/"
	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(handler))
	}

	return mux
}

// handleDefault describes the server at "/" when no site is being served.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, rberrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, rberrors.ErrCodeNotFound,
			"Not found", false, map[string]any{"path": r.URL.Path})
		return
	}

	routes := []string{"/health", "/ready", "/metrics"}
	for path := range s.config.Handlers {
		if path != "/" {
			routes = append(routes, path)
		}
	}
	sort.Strings(routes)

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    routes,
	}

	s.mu.RLock()
	resp.Ready = s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.config.SiteDir != "" {
		info, err := os.Stat(s.config.SiteDir)
		if err != nil {
			return rberrors.WrapWithContext(rberrors.ErrCodeNotFound, "site directory not found", err,
				map[string]any{"dir": s.config.SiteDir})
		}
		if !info.IsDir() {
			return rberrors.NewWithContext(rberrors.ErrCodeInvalidRequest, "site path is not a directory",
				map[string]any{"dir": s.config.SiteDir})
		}
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return rberrors.WrapWithContext(rberrors.ErrCodeUnavailable, "failed to listen", err,
			map[string]any{"address": s.httpServer.Addr})
	}

	s.setReady(true)
	slog.Info("server listening", "address", ln.Addr().String(), "site", s.config.SiteDir)

	errChan := make(chan error, 1)
	go func() {
		if serveErr := s.httpServer.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case serveErr := <-errChan:
		s.setReady(false)
		return serveErr
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.setReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout)
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run serves until ctx is canceled or the process receives SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("server config",
		slog.String("name", s.config.Name),
		slog.String("version", s.config.Version),
		slog.String("address", s.httpServer.Addr),
		slog.Any("rateLimit", s.config.RateLimit),
		slog.Int("rateLimitBurst", s.config.RateLimitBurst),
		slog.Duration("readTimeout", s.config.ReadTimeout),
		slog.Duration("writeTimeout", s.config.WriteTimeout),
		slog.Duration("idleTimeout", s.config.IdleTimeout),
		slog.Duration("shutdownTimeout", s.config.ShutdownTimeout),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
