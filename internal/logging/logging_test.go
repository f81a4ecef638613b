package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/sfmc-session-broker/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Run("json output at the requested level", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWithWriter(&buf, "warn")

		log.Info().Msg("dropped")
		require.Zero(t, buf.Len())

		log.Warn().Str("tenant", "mcdefault").Msg("kept")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "warn", entry["level"])
		require.Equal(t, "kept", entry["message"])
		require.Equal(t, "mcdefault", entry["tenant"])
		require.Contains(t, entry, "time")
	})

	t.Run("context logger falls back to the global logger", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWithWriter(&buf, "info")

		zerolog.Ctx(context.Background()).Info().Msg("from context")
		require.Contains(t, buf.String(), "from context")
	})

	t.Run("unknown level is info", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWithWriter(&buf, "chatty")
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		require.Contains(t, buf.String(), "Unknown log level")
	})
}
