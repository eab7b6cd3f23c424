package logger

import (
	"log/slog"

	"github.com/polkiloo/delivery/internal/config"
	"go.uber.org/fx"
)

// Module wires slog logger for dependency injection.
var Module = fx.Provide(newFromConfig)

func newFromConfig(cfg *config.Config) *slog.Logger {
	return New(cfg.LogLevel)
}
