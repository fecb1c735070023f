// Package server hosts a local demo backend exposing the same HTTP
// surface as a production NL2SQL service, backed by SQLite or Postgres.
// Translation is a naive keyword match; real translation is owned by the
// production backend.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	// Database drivers for the demo backend.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const defaultMaxRows = 500

// Config holds demo server settings.
type Config struct {
	Port     int
	Database string // SQLite path; empty for an in-memory sample database
	DSN      string // Postgres DSN; takes precedence over Database
	MaxRows  int
	Logger   *slog.Logger
}

// Server is the demo backend.
type Server struct {
	db      *sql.DB
	driver  string
	port    int
	maxRows int
	logger  *slog.Logger
}

// New opens the backing database and prepares the server. An in-memory
// SQLite database is seeded with sample data.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	var (
		db     *sql.DB
		driver string
		err    error
	)
	switch {
	case cfg.DSN != "":
		driver = "pgx"
		db, err = sql.Open("pgx", cfg.DSN)
	case cfg.Database != "":
		driver = "sqlite"
		db, err = sql.Open("sqlite", cfg.Database)
	default:
		driver = "sqlite"
		db, err = sql.Open("sqlite", ":memory:")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Server{db: db, driver: driver, port: cfg.Port, maxRows: maxRows, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.bootstrap(ctx, cfg.DSN == "" && cfg.Database == ""); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the backing database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Handler builds the chi router for the API surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Post("/api/query", s.handleQuery)
	r.Post("/api/execute-sql", s.handleExecuteSQL)
	r.Get("/api/schema", s.handleSchema)
	r.Get("/api/examples", s.handleExamples)
	r.Get("/api/health", s.handleHealth)

	return r
}

// Serve starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting demo server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down demo server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// bootstrap creates the query log table and seeds the sample dataset for
// in-memory databases.
func (s *Server) bootstrap(ctx context.Context, seed bool) error {
	if s.driver == "sqlite" {
		if _, err := s.db.ExecContext(ctx, queryLogSchema); err != nil {
			return fmt.Errorf("failed to create query log: %w", err)
		}
		if seed {
			if _, err := s.db.ExecContext(ctx, sampleSchema); err != nil {
				return fmt.Errorf("failed to seed sample data: %w", err)
			}
		}
	}
	return nil
}
