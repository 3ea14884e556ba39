package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gbfs-validator/internal/config"
	"github.com/usestring/gbfs-validator/internal/logging"
	"github.com/usestring/gbfs-validator/internal/mcp"
	"github.com/usestring/gbfs-validator/internal/mcp/tools"
	"github.com/usestring/gbfs-validator/internal/metrics"
	"github.com/usestring/gbfs-validator/internal/query"
	"github.com/usestring/gbfs-validator/internal/registry"
	"github.com/usestring/gbfs-validator/internal/validator"
)

// Server is the GBFS validator MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin validation tools.
//
// Configuration is loaded from the environment; use functional options to
// override it, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Setup logging
	logCfg := cfg.config.Logging()
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	reg, err := newRegistry(cfg)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}

	if len(cfg.config.PreloadVersions) > 0 {
		if err := reg.Warm(context.Background(), cfg.config.PreloadVersions...); err != nil {
			_ = logCleanup()
			return nil, fmt.Errorf("failed to preload schemas: %w", err)
		}
		slog.Info("preloaded GBFS schemas", slog.Any("versions", cfg.config.PreloadVersions))
	}

	queryEngine := query.NewEngine()
	v := validator.New(reg,
		validator.WithMaxDocumentBytes(cfg.config.MaxDocumentBytes),
		validator.WithQueryEngine(queryEngine),
	)

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Registry:  reg,
		Validator: v,
		Query:     queryEngine,
		Config:    cfg.config,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Registry:  reg,
		Validator: v,
		Query:     queryEngine,
		Config:    cfg.config,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	// Add custom extension registration callbacks
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

func newRegistry(cfg *serverConfig) (*registry.Registry, error) {
	var fsys fs.FS
	switch {
	case cfg.schemaFS != nil:
		fsys = cfg.schemaFS
	case cfg.config.SchemaDir != "":
		fsys = os.DirFS(cfg.config.SchemaDir)
		slog.Info("serving schemas from directory", slog.String("dir", cfg.config.SchemaDir))
	}

	var (
		reg *registry.Registry
		err error
	)
	if fsys != nil {
		reg, err = registry.New(registry.NewFSLoader(fsys), cfg.config.SchemaCacheMaxVersions)
	} else {
		reg, err = registry.NewEmbedded(cfg.config.SchemaCacheMaxVersions)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create schema registry: %w", err)
	}
	return reg, nil
}

// Run starts the MCP server with stdio transport.
// When a metrics address is configured, the metrics endpoint is served for
// the lifetime of the call. The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if addr := s.deps.Config.MetricsAddr; addr != "" {
		metricsServer := metrics.SetupMetricsEndpoint(addr)
		slog.Info("serving metrics", slog.String("addr", addr))
		defer s.shutdownMetrics(metricsServer)
	}
	return s.internal.Run(ctx)
}

func (s *Server) shutdownMetrics(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), s.deps.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Warn("metrics endpoint shutdown failed", slog.String("error", err.Error()))
	}
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
