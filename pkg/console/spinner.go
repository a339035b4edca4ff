package console

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner shows progress on a writer while watch mode waits for the log to
// change. It does nothing unless the writer is a terminal, so redirected
// stderr and test buffers never receive animation frames.
type Spinner struct {
	spinner *spinner.Spinner
}

// NewSpinner creates a spinner that draws message on w
func NewSpinner(w io.Writer, message string) *Spinner {
	if !isTerminal(w) {
		return &Spinner{}
	}

	s := spinner.New(spinner.CharSets[14], spinnerDelay, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	return &Spinner{spinner: s}
}

// isTerminal reports whether w is a file attached to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (s *Spinner) Start() {
	if s.spinner != nil {
		s.spinner.Start()
	}
}

func (s *Spinner) Stop() {
	if s.spinner != nil {
		s.spinner.Stop()
	}
}

// SetMessage replaces the text shown next to the spinner
func (s *Spinner) SetMessage(message string) {
	if s.spinner != nil {
		s.spinner.Suffix = " " + message
	}
}

// Enabled reports whether the spinner draws anything
func (s *Spinner) Enabled() bool {
	return s.spinner != nil
}
