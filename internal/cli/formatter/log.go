package formatter

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Level classifies a pipeline log line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// LevelOf infers the level of a pipeline line from its prefix.
func LevelOf(line string) Level {
	switch {
	case strings.HasPrefix(line, "Error:"):
		return LevelError
	case strings.HasPrefix(line, "Warning"), strings.HasPrefix(line, "Discarded"):
		return LevelWarn
	default:
		return LevelInfo
	}
}

// LogWriter prints pipeline lines, one per call, colored by level.
type LogWriter struct {
	mu    sync.Mutex
	w     io.Writer
	color bool

	// Quiet drops info lines.
	Quiet bool
}

// NewLogWriter writes to w; color enables lipgloss styling.
func NewLogWriter(w io.Writer, color bool) *LogWriter {
	return &LogWriter{w: w, color: color}
}

// Line matches domain.Logger.
func (l *LogWriter) Line(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	level := LevelOf(line)
	if l.Quiet && level == LevelInfo {
		return
	}
	if l.color {
		line = LevelStyle(level).Render(line)
	}
	fmt.Fprintln(l.w, line)
}
