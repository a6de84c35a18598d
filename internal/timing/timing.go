// Package timing has stopwatch helpers for long-running pipeline steps.
package timing

import (
	"fmt"
	"log/slog"
	"time"
)

// Stopwatch records a start instant on the monotonic clock.
type Stopwatch struct {
	start time.Time
}

// Start begins timing.
func Start() Stopwatch { return Stopwatch{start: time.Now()} }

// Elapsed is the time since Start.
func (s Stopwatch) Elapsed() time.Duration { return time.Since(s.start) }

// FormatSeconds renders "<label> 1.2345 s". An empty label means "Time elapsed:".
func FormatSeconds(label string, d time.Duration) string {
	if label == "" {
		label = "Time elapsed:"
	}
	return fmt.Sprintf("%s %.4f s", label, d.Seconds())
}

// FormatMinutes renders "<label> 1.50 min" for long-running work.
func FormatMinutes(label string, d time.Duration) string {
	if label == "" {
		label = "Time elapsed:"
	}
	return fmt.Sprintf("%s %.2f min", label, d.Minutes())
}

// Timed runs fn and logs its runtime under name, whether or not it fails.
func Timed[T any](log *slog.Logger, name string, fn func() (T, error)) (T, error) {
	sw := Start()
	v, err := fn()
	elapsed := sw.Elapsed()
	if log == nil {
		log = slog.Default()
	}
	if err != nil {
		log.Warn(name+" failed", slog.Duration("elapsed", elapsed), slog.String("error", err.Error()))
		return v, err
	}
	log.Info(name+" done", slog.Duration("elapsed", elapsed))
	return v, nil
}
