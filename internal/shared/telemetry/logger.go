package telemetry

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.MessageFieldName = "msg"
	zerolog.TimestampFieldName = "ts"
	SetOutput(os.Stdout)
}

// Init configures the process logger. Unknown levels fall back to info;
// format "pretty" switches to a human readable console writer.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var out io.Writer = os.Stdout
	if strings.EqualFold(strings.TrimSpace(format), "pretty") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	setLogger(zerolog.New(out).Level(lvl).With().Timestamp().Logger())
}

// SetOutput redirects JSON log lines to w at info level. Tests use it to
// capture output.
func SetOutput(w io.Writer) {
	setLogger(zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger())
}

// Logger returns the active logger for callers that want the event API.
func Logger() *zerolog.Logger {
	return current.Load()
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	Logger().Info().Fields(fields).Msg(msg)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	Logger().Warn().Fields(fields).Msg(msg)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	Logger().Error().Fields(fields).Msg(msg)
}

func setLogger(l zerolog.Logger) {
	current.Store(&l)
}
