package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/askdb-io/askdb/internal/history"
	"github.com/askdb-io/askdb/internal/output"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past queries",
		Long: `Show past queries, most recent first. The 50 most recent entries
are kept; older ones are evicted automatically.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			return renderHistory(s.renderer, s.history.List())
		},
	}

	cmd.AddCommand(newHistoryRemoveCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd)
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			if err := s.history.Remove(index); err != nil {
				return err
			}
			s.renderer.Println(s.renderer.Styles().Success.Render("Entry removed."))
			return nil
		},
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			if err := s.history.Clear(); err != nil {
				return err
			}
			s.renderer.Println(s.renderer.Styles().Success.Render("History cleared."))
			return nil
		},
	}
}

// renderHistory lists entries most recent first. The # column is the
// stable storage index accepted by "history rm".
func renderHistory(r *output.Renderer, entries []history.Entry) error {
	if len(entries) == 0 {
		r.Println(r.Styles().Muted.Render("No queries yet."))
		return nil
	}

	now := time.Now()

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "When", "Query", "SQL", "Rows"})

	for i, e := range entries {
		storageIndex := len(entries) - 1 - i
		t.AppendRow(table.Row{
			storageIndex,
			history.RelativeTime(e.Timestamp, now),
			truncate(e.Query, 40),
			truncate(e.SQL, 50),
			e.NumResults,
		})
	}
	t.Render()
	return nil
}

// truncate shortens s to n runes, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
