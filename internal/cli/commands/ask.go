package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewAskCommand creates the ask command.
func NewAskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question in plain language",
		Long: `Translate a natural language question to SQL, run it against the
backend, and display the results.`,
		Example: `  # Ask a question
  askdb ask "how many customers do we have?"

  # Pipe results as CSV
  askdb ask "show all orders" -o csv > orders.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd)
			question := strings.Join(args, " ")

			resp, err := s.client.Query(cmd.Context(), question)
			if err != nil {
				return err
			}

			s.record(question, resp.SQL, resp.Rows.Len())
			return renderResponse(s.renderer, resp)
		},
	}
}
