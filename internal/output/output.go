// Package output provides the mode-aware renderer and terminal styling
// shared by all commands.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks table output on a terminal and markdown when piped.
	ModeAuto  Mode = "auto"
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
	ModeCSV   Mode = "csv"
	ModeMD    Mode = "md"
)

// Valid reports whether the mode is one of the known formats.
func (m Mode) Valid() bool {
	switch m {
	case ModeAuto, ModeTable, ModeJSON, ModeCSV, ModeMD, "markdown":
		return true
	}
	return false
}

// Renderer writes command output in a resolved mode with theme styles.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. ModeAuto resolves to table when out is a
// terminal, markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode, theme Theme) *Renderer {
	if mode == "" || mode == ModeAuto {
		mode = ModeMD
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			mode = ModeTable
		}
	}
	if mode == "markdown" {
		mode = ModeMD
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: NewStyles(theme)}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Errorf writes a styled error line to the error writer.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}

// CopyToClipboard writes s to the system clipboard via an OSC 52 escape
// sequence. Terminals without OSC 52 support ignore it silently.
func CopyToClipboard(s string) {
	out := termenv.NewOutput(os.Stdout)
	out.Copy(s)
}
