package timing

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	if got := FormatSeconds("", 1500*time.Millisecond); got != "Time elapsed: 1.5000 s" {
		t.Errorf("FormatSeconds = %q", got)
	}
	if got := FormatSeconds("Resolve took", 250*time.Millisecond); got != "Resolve took 0.2500 s" {
		t.Errorf("FormatSeconds = %q", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes("", 90*time.Second); got != "Time elapsed: 1.50 min" {
		t.Errorf("FormatMinutes = %q", got)
	}
}

func TestStopwatch_Monotonic(t *testing.T) {
	sw := Start()
	a := sw.Elapsed()
	b := sw.Elapsed()
	if a < 0 || b < a {
		t.Errorf("elapsed went backwards: %v then %v", a, b)
	}
}

func TestTimed_LogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	v, err := Timed(log, "resolve", func() (int, error) { return 42, nil })
	if err != nil || v != 42 {
		t.Fatalf("Timed = %d, %v", v, err)
	}
	if !strings.Contains(buf.String(), "resolve done") {
		t.Errorf("missing done line: %s", buf.String())
	}

	buf.Reset()
	boom := errors.New("boom")
	if _, err := Timed(log, "search", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if !strings.Contains(buf.String(), "search failed") || !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("missing failure line: %s", buf.String())
	}
}
