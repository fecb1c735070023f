// Package commands implements the askdb subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/askdb-io/askdb/internal/api"
	"github.com/askdb-io/askdb/internal/cli/config"
	"github.com/askdb-io/askdb/internal/history"
	"github.com/askdb-io/askdb/internal/kvstore"
	"github.com/askdb-io/askdb/internal/output"
)

// session bundles the resolved dependencies every command needs: the
// backend client, local state, and the renderer for the effective theme
// and output mode.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *api.Client
	kv       *kvstore.Store
	history  *history.Store
	theme    output.Theme
	renderer *output.Renderer
}

// newSession builds a session from the command context.
func newSession(cmd *cobra.Command) *session {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	kv := kvstore.New(cfg.ResolveStorePath())
	theme := cfg.ResolveTheme(kv)

	return &session{
		cfg:      cfg,
		logger:   logger,
		client:   api.NewClient(cfg.ServerURL, logger),
		kv:       kv,
		history:  history.NewStore(kv),
		theme:    theme,
		renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat), theme),
	}
}

// setTheme persists the theme flag and rebuilds the renderer so later
// output in the same session picks up the new palette.
func (s *session) setTheme(cmd *cobra.Command, theme output.Theme) error {
	if err := s.kv.Set("theme", string(theme)); err != nil {
		return err
	}
	s.theme = theme
	s.renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(s.cfg.OutputFormat), theme)
	return nil
}

// record appends a query to history, logging rather than failing when the
// store cannot be written.
func (s *session) record(query, sql string, numResults int) {
	if err := s.history.Append(query, sql, numResults); err != nil {
		s.logger.Warn("failed to record history", "error", err)
	}
}
