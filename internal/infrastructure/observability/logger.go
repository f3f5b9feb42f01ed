package observability

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/nohlan/stayhub/pkg/config"
)

// InitLogger configures the process-wide zerolog logger from the app
// config. Development gets a human-readable console writer; any other
// environment emits JSON lines for log shippers. An unparseable
// LOG_LEVEL falls back to info rather than failing startup.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	base := zerolog.New(os.Stdout)
	if cfg.Env == "development" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	log.Logger = base.Level(level).With().
		Timestamp().
		Str("service", cfg.OTEL.ServiceName).
		Logger()
}

// LoggerFromContext returns the global logger enriched with the ids of
// the active span, so request logs correlate with traces.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.Logger
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		logger = logger.With().
			Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String()).
			Logger()
	}
	return &logger
}
