package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/askdb-io/askdb/internal/api"
	"github.com/askdb-io/askdb/internal/output"
)

// NewExamplesCommand creates the examples command.
func NewExamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show example questions",
		Long:  `Show the backend's catalog of example questions, grouped by category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)

			groups, err := s.client.Examples(cmd.Context())
			if err != nil {
				renderAPIError(s.renderer, err)
				return nil
			}
			return renderExamples(s.renderer, groups)
		},
	}
}

func renderExamples(r *output.Renderer, groups []api.ExampleGroup) error {
	if r.Mode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	if len(groups) == 0 {
		r.Println(r.Styles().Muted.Render("No examples available."))
		return nil
	}

	for _, g := range groups {
		r.Println(r.Styles().Title.Render(g.Category))
		for _, q := range g.Queries {
			r.Printf("  %s\n", q)
		}
		r.Println()
	}
	return nil
}
