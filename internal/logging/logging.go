package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Dev mode writes coloured console
// output, otherwise one JSON object per line. An unknown level falls back to info.
// The returned logger is also installed as the default context logger, so
// zerolog.Ctx never hands back a disabled logger.
func Setup(level string, devMode bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if devMode {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return SetupWithWriter(out, level)
}

// SetupWithWriter is Setup with an explicit destination
func SetupWithWriter(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
	}
	return logger
}
