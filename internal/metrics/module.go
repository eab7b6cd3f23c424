package metrics

import "go.uber.org/fx"

// Module provides a process-wide Metrics instance.
var Module = fx.Provide(New)
