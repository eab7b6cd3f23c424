package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/delivery/internal/app"
	"github.com/polkiloo/delivery/internal/config"
	"github.com/polkiloo/delivery/internal/logger"
	"github.com/polkiloo/delivery/internal/metrics"
	"github.com/polkiloo/delivery/internal/pkg/auth"
	"github.com/polkiloo/delivery/internal/server/http/handlers"
	"github.com/polkiloo/delivery/internal/server/http/router"
	"github.com/polkiloo/delivery/internal/storage/postgres"
	"github.com/polkiloo/delivery/internal/usecase"
)

// Module assembles the whole service graph. Extra options are appended last
// so tests can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(
			func(m *metrics.Metrics) usecase.OrderRecorder { return m },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.DeliveryFacade) handlers.DeliveryFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
