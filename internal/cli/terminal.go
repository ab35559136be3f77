package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal provides terminal-aware progress output on stderr
type Terminal struct {
	IsTerminal   bool
	UseColor     bool
	spinnerIndex int
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	fd := os.Stderr.Fd()
	isTerminal := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && !color.NoColor,
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Progress shows which document of a batch is being analyzed. Nothing is
// printed when stderr is not a terminal.
func (t *Terminal) Progress(current, total int, name string) {
	if !t.IsTerminal {
		return
	}
	t.ClearLine()
	fmt.Fprintf(os.Stderr, "%s Analyzing %d/%d %s", color.CyanString(t.Spinner()), current, total, name)
}

// Done clears any progress line
func (t *Terminal) Done() {
	t.ClearLine()
}
