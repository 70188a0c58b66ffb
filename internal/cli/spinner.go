package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner shows an indeterminate progress indicator while a request is pending.
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
}

// StartSpinner starts a spinner on w with the given description. Call Stop
// once the request settles.
func StartSpinner(w io.Writer, description string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription(fmt.Sprintf("[green]%s[reset]", description)),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)

	s := &Spinner{bar: bar, done: make(chan struct{})}
	go s.spin()
	return s
}

func (s *Spinner) spin() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.bar.Add(1); err != nil {
				slog.Debug("Failed to advance spinner", "error", err)
			}
		}
	}
}

// Stop halts and clears the spinner. It must be called exactly once.
func (s *Spinner) Stop() {
	close(s.done)
	if err := s.bar.Finish(); err != nil {
		slog.Debug("Failed to finish spinner", "error", err)
	}
}
