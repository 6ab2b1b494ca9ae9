// ABOUTME: Progress display for one-shot analyses on a terminal
// ABOUTME: Redraws an elapsed-time spinner line until the requests finish

package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const spinnerUpdateInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner redraws a status line while work is in flight
type spinner struct {
	out      io.Writer
	label    string
	start    time.Time
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// startSpinner starts drawing label on out. A disabled spinner draws nothing,
// which keeps pipes and redirected output free of control sequences.
func startSpinner(out io.Writer, enabled bool, label string) *spinner {
	s := &spinner{
		out:   out,
		label: label,
		start: time.Now(),
		done:  make(chan struct{}),
	}

	if !enabled {
		return s
	}

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(spinnerUpdateInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.done:
				_, _ = fmt.Fprint(s.out, "\r\033[K")

				return
			case <-ticker.C:
				_, _ = fmt.Fprintf(s.out, "\r%s %s %s     ",
					formatElapsed(time.Since(s.start)), s.label, spinnerFrames[frame%len(spinnerFrames)])
			}
		}
	}()

	return s
}

// Stop clears the status line and returns the time since start
func (s *spinner) Stop() time.Duration {
	s.stopOnce.Do(func() { close(s.done) })
	s.wg.Wait()

	return time.Since(s.start)
}

// formatElapsed formats d right-aligned to 6 characters ("59m59s" at most)
func formatElapsed(d time.Duration) string {
	var s string
	if d >= time.Minute {
		s = fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	} else {
		s = fmt.Sprintf("%ds", int(d.Seconds()))
	}

	return fmt.Sprintf("%6s", s)
}
