package usecase

import "go.uber.org/fx"

// Module provides core business use cases to the fx container.
// An OrderRecorder must be supplied by the surrounding graph.
var Module = fx.Provide(
	NewAuthUseCase,
	NewUserUseCase,
	NewOrderUseCase,
)
