package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/askdb-io/askdb/internal/api"
	"github.com/askdb-io/askdb/internal/chart"
	"github.com/askdb-io/askdb/internal/output"
	"github.com/askdb-io/askdb/internal/result"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive question-and-answer session",
		Long: `Start an interactive session. Plain input is translated to SQL and
executed; dot-commands operate on the last result or the session.`,
		RunE: runREPL,
	}
}

// repl holds per-session REPL state: the last response drives the
// dot-commands that chart, export, or copy results.
type repl struct {
	s       *session
	adapter *chart.Adapter
	last    *api.QueryResponse
}

func runREPL(cmd *cobra.Command, _ []string) error {
	s := newSession(cmd)
	r := &repl{s: s, adapter: chart.NewAdapter(s.theme)}

	historyFile := filepath.Join(filepath.Dir(s.cfg.ResolveStorePath()), "repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "askdb> ",
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "AskDB (%s)\n", s.cfg.ServerURL)
	_, _ = fmt.Fprintln(out, "Ask a question in plain language, or type .help for commands")
	if _, err := s.client.Health(cmd.Context()); err != nil {
		s.renderer.Errorf("Backend unreachable: %v", err)
	}
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := r.handleDotCommand(cmd, line); quit {
				break
			}
			continue
		}

		// Plain input is a natural language question.
		resp, err := r.s.client.Query(cmd.Context(), line)
		if err != nil {
			r.s.renderer.Errorf("%v", err)
			continue
		}
		r.last = resp
		r.s.record(line, resp.SQL, resp.Rows.Len())
		if err := renderResponse(r.s.renderer, resp); err != nil {
			r.s.renderer.Errorf("%v", err)
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// handleDotCommand dispatches one dot-command, returning true to quit.
func (r *repl) handleDotCommand(cmd *cobra.Command, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".sql":
		if len(args) == 0 {
			r.s.renderer.Errorf("Usage: .sql <statement>")
			return false
		}
		r.execSQL(cmd, strings.Join(args, " "))

	case ".schema":
		schema, err := r.s.client.Schema(cmd.Context())
		if err != nil {
			r.s.renderer.Errorf("%v", err)
			return false
		}
		if len(args) == 1 {
			filtered, ok := filterSchema(schema, args[0])
			if !ok {
				r.s.renderer.Errorf("table %q not found", args[0])
				return false
			}
			schema = filtered
		}
		_ = renderSchema(r.s.renderer, schema)

	case ".examples":
		groups, err := r.s.client.Examples(cmd.Context())
		if err != nil {
			r.s.renderer.Errorf("%v", err)
			return false
		}
		_ = renderExamples(r.s.renderer, groups)

	case ".history":
		r.histCommand(args)

	case ".export":
		if len(args) != 1 {
			r.s.renderer.Errorf("Usage: .export <path>")
			return false
		}
		r.export(args[0])

	case ".chart":
		r.chartCommand(args)

	case ".copy":
		if r.last == nil || r.last.SQL == "" {
			r.s.renderer.Errorf("No SQL to copy yet.")
			return false
		}
		output.CopyToClipboard(r.last.SQL)
		r.s.renderer.Println(r.s.renderer.Styles().Success.Render("SQL copied to clipboard."))

	case ".theme":
		r.themeCommand(cmd, args)

	case ".clear":
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")

	default:
		r.s.renderer.Errorf("Unknown command: %s (type .help for commands)", command)
	}
	return false
}

func (r *repl) execSQL(cmd *cobra.Command, statement string) {
	resp, err := r.s.client.ExecuteSQL(cmd.Context(), statement)
	if err != nil {
		r.s.renderer.Errorf("%v", err)
		return
	}
	r.last = resp
	r.s.record("", resp.SQL, resp.Rows.Len())
	if err := renderResponse(r.s.renderer, resp); err != nil {
		r.s.renderer.Errorf("%v", err)
	}
}

func (r *repl) histCommand(args []string) {
	if len(args) == 0 {
		_ = renderHistory(r.s.renderer, r.s.history.List())
		return
	}
	switch args[0] {
	case "clear":
		if err := r.s.history.Clear(); err != nil {
			r.s.renderer.Errorf("%v", err)
			return
		}
		r.s.renderer.Println(r.s.renderer.Styles().Success.Render("History cleared."))
	case "rm":
		if len(args) != 2 {
			r.s.renderer.Errorf("Usage: .history rm <index>")
			return
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			r.s.renderer.Errorf("invalid index %q", args[1])
			return
		}
		if err := r.s.history.Remove(index); err != nil {
			r.s.renderer.Errorf("%v", err)
			return
		}
		r.s.renderer.Println(r.s.renderer.Styles().Success.Render("Entry removed."))
	default:
		r.s.renderer.Errorf("Usage: .history [clear | rm <index>]")
	}
}

func (r *repl) export(path string) {
	if r.last == nil || r.last.Rows.Len() == 0 {
		r.s.renderer.Errorf("No results to export yet.")
		return
	}
	f, err := os.Create(path)
	if err != nil {
		r.s.renderer.Errorf("%v", err)
		return
	}
	defer func() { _ = f.Close() }()

	if err := result.ExportCSV(f, r.last.Rows); err != nil {
		r.s.renderer.Errorf("%v", err)
		return
	}
	r.s.renderer.Println(r.s.renderer.Styles().Success.Render(
		fmt.Sprintf("Exported %d rows to %s", r.last.Rows.Len(), path)))
}

// chartCommand renders a chart of the last result. With no arguments the
// axes are picked automatically; otherwise: .chart [line|bar] [x y].
func (r *repl) chartCommand(args []string) {
	if r.last == nil || r.last.Rows.Len() == 0 {
		r.s.renderer.Errorf("No results to chart yet.")
		return
	}

	sel, err := chart.AutoSelect(r.last.Rows)
	if err != nil {
		r.s.renderer.Errorf("%v", err)
		return
	}

	if len(args) > 0 {
		if t, err := chart.ParseType(args[0]); err == nil {
			sel.Type = t
			args = args[1:]
		}
	}
	switch len(args) {
	case 0:
	case 2:
		sel.X, sel.Y = args[0], args[1]
	default:
		r.s.renderer.Errorf("Usage: .chart [line|bar] [x-column y-column]")
		return
	}

	c, err := r.adapter.Render(r.last.Rows, sel)
	if err != nil {
		r.s.renderer.Errorf("%v", err)
		return
	}
	r.s.renderer.Println(c.View())
}

func (r *repl) themeCommand(cmd *cobra.Command, args []string) {
	theme := r.s.theme.Toggle()
	if len(args) == 1 {
		theme = output.Theme(args[0])
		if !theme.Valid() {
			r.s.renderer.Errorf("Usage: .theme [dark|light]")
			return
		}
	}

	if err := r.s.setTheme(cmd, theme); err != nil {
		r.s.renderer.Errorf("%v", err)
		return
	}
	// The chart palette follows the theme; any live chart is destroyed.
	r.adapter.SetTheme(theme)
	r.s.renderer.Println(r.s.renderer.Styles().Success.Render(
		fmt.Sprintf("Theme set to %s.", theme)))
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .sql <statement>          Run SQL directly
  .schema                   Show the database schema
  .examples                 Show example questions
  .history [clear|rm <n>]   Show or edit query history
  .export <path>            Export the last result as CSV
  .chart [line|bar] [x y]   Chart the last result
  .copy                     Copy the last SQL to the clipboard
  .theme [dark|light]       Switch or toggle the color theme
  .clear                    Clear the screen
  .help                     Show this help message
  .quit / .exit             Exit

Anything else is treated as a plain language question.
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".sql"),
		readline.PcItem(".schema"),
		readline.PcItem(".examples"),
		readline.PcItem(".history",
			readline.PcItem("clear"),
			readline.PcItem("rm"),
		),
		readline.PcItem(".export"),
		readline.PcItem(".chart",
			readline.PcItem("line"),
			readline.PcItem("bar"),
		),
		readline.PcItem(".copy"),
		readline.PcItem(".theme",
			readline.PcItem("dark"),
			readline.PcItem("light"),
		),
		readline.PcItem(".clear"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
