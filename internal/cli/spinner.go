package cli

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/billmal071/bookshelf/internal/repl"
)

// newSpinner returns a progress hook that animates a spinner on w while a
// request is in flight and erases it afterwards.
func newSpinner(w io.Writer) repl.ProgressFunc {
	return func(label string) func() {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(label),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)

		done := make(chan struct{})
		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					_ = bar.Add(1)
				}
			}
		}()

		return func() {
			close(done)
			<-stopped
			_ = bar.Clear()
		}
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// withSpinner runs fn with a spinner on stderr when it is a terminal
func withSpinner(enabled bool, label string, fn func() error) error {
	if !enabled || !isTerminal(os.Stderr) {
		return fn()
	}
	stop := newSpinner(os.Stderr)(label)
	defer stop()
	return fn()
}
