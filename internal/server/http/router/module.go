package router

import "go.uber.org/fx"

// Module registers the orderflow HTTP router for fx runtime.
var Module = fx.Provide(Setup)
