package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger so callers can embed repo-wide defaults.
type Logger struct {
	zerolog.Logger
}

// New builds the root logger for the given level. Unknown levels fall back
// to info. When pretty is set, output goes through the console writer.
func New(level string, pretty bool) Logger {
	return NewWithOutput(level, pretty, os.Stdout)
}

// NewWithOutput is New with an explicit output writer.
func NewWithOutput(level string, pretty bool, out io.Writer) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return Logger{Logger: logger}
}

// Nop returns a logger that discards everything; used as the default in
// library constructors.
func Nop() Logger {
	return Logger{Logger: zerolog.Nop()}
}
