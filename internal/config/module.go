package config

import "go.uber.org/fx"

// Module loads configuration once from flags, process env and env files.
var Module = fx.Provide(Load)
