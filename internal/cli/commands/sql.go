package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// SQLOptions holds options for the sql command.
type SQLOptions struct {
	Input string
}

// NewSQLCommand creates the sql command.
func NewSQLCommand() *cobra.Command {
	opts := &SQLOptions{}

	cmd := &cobra.Command{
		Use:   "sql [statement]",
		Short: "Run a SQL statement directly",
		Long: `Run a SQL statement against the backend without translation, for
reviewing or editing generated queries by hand.`,
		Example: `  # Execute SQL directly
  askdb sql "SELECT * FROM customers LIMIT 10"

  # Read SQL from a file
  askdb sql --input report.sql

  # Read SQL from stdin
  echo "SELECT COUNT(*) FROM orders" | askdb sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runSQL(cmd *cobra.Command, args []string, opts *SQLOptions) error {
	s := newSession(cmd)

	var statement string
	switch {
	case len(args) > 0:
		statement = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		statement = string(content)
	case !isTerminal(os.Stdin):
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		statement = string(content)
	default:
		return fmt.Errorf("no SQL given (pass a statement, --input, or pipe stdin)")
	}

	resp, err := s.client.ExecuteSQL(cmd.Context(), statement)
	if err != nil {
		return err
	}

	s.record("", resp.SQL, resp.Rows.Len())
	return renderResponse(s.renderer, resp)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
