package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/askdb-io/askdb/internal/cli/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default configuration file",
		Long: `Write a default askdb.yaml configuration file.

The file documents the backend URL, theme, and output format, plus the
serve section used by the built-in demo server.`,
		Example: `  # Write askdb.yaml in the current directory
  askdb init

  # Force overwrite an existing config
  askdb init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "askdb.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("askdb.yaml already exists. Use --force to overwrite")
	}

	defaults := map[string]any{
		"server_url": config.DefaultServerURL,
		"output":     config.DefaultOutput,
		"serve": map[string]any{
			"port": config.DefaultPort,
		},
	}
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Wrote %s\n", configPath)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Next steps:")
	_, _ = fmt.Fprintln(out, "  1. Point server_url at your backend (or run 'askdb serve')")
	_, _ = fmt.Fprintln(out, "  2. Ask a question: askdb ask \"how many customers do we have?\"")
	_, _ = fmt.Fprintln(out, "  3. Or start a session: askdb repl")

	return nil
}
