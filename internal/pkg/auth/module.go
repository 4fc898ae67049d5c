package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderflow/internal/config"
)

// Module provides token strategy and card hasher via fx.
var Module = fx.Options(
	fx.Provide(newCardHasher),
	fx.Provide(newTokenStrategy),
)

type authParams struct {
	fx.In

	Config *config.Config
}

func newCardHasher(p authParams) (CardHasher, error) {
	return NewBlake2bHasher(p.Config.CardHashKey)
}

func newTokenStrategy(p authParams) Strategy {
	return NewHMACStrategy(p.Config.AuthSecret, Options{})
}
