package player

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const logbookTimeLayout = "2006-01-02 15:04:05"

// Logbook appends timestamped lines describing a playback session. A nil
// Logbook discards everything.
type Logbook struct {
	w      io.Writer
	closer io.Closer
	now    func() time.Time
}

// OpenLogbook opens path for appending, creating it if needed.
func OpenLogbook(path string) (*Logbook, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbook: open %s: %w", path, err)
	}
	return &Logbook{w: f, closer: f, now: time.Now}, nil
}

// NewLogbook writes to w using now for timestamps.
func NewLogbook(w io.Writer, now func() time.Time) *Logbook {
	if now == nil {
		now = time.Now
	}
	return &Logbook{w: w, now: now}
}

// Printf writes one timestamped line.
func (l *Logbook) Printf(format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.w, "[%s] %s\n", l.now().Format(logbookTimeLayout), line)
}

// Close releases the underlying file, if any.
func (l *Logbook) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
