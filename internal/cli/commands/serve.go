package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askdb-io/askdb/internal/cli/config"
	"github.com/askdb-io/askdb/internal/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port     int
	Database string
	DSN      string
	MaxRows  int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the built-in demo backend",
		Long: `Run a local backend exposing the same API surface as a production
NL2SQL service. Without --db or --dsn an in-memory SQLite database is
seeded with sample data, so the client can be tried end to end:

  askdb serve &
  askdb ask "how many customers do we have?"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "Port to listen on")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database file (default: in-memory sample data)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Postgres DSN (takes precedence over --db)")
	cmd.Flags().IntVar(&opts.MaxRows, "max-rows", 0, "Maximum rows returned per query")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	serveCfg := cfg.GetServeConfig()

	// Flags override the config file's serve section.
	if opts.Port != 0 {
		serveCfg.Port = opts.Port
	}
	if opts.Database != "" {
		serveCfg.Database = opts.Database
	}
	if opts.DSN != "" {
		serveCfg.DSN = opts.DSN
	}
	if opts.MaxRows != 0 {
		serveCfg.MaxRows = opts.MaxRows
	}

	srv, err := server.New(server.Config{
		Port:     serveCfg.Port,
		Database: serveCfg.Database,
		DSN:      serveCfg.DSN,
		MaxRows:  serveCfg.MaxRows,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = srv.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
