package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/config"
)

// Module provides the operator password hasher and the session token strategy.
var Module = fx.Provide(
	func() PasswordHasher { return NewBcryptHasher(0) },
	newTokenStrategy,
)

func newTokenStrategy(cfg *config.Config) Strategy {
	return NewHMACStrategy(cfg.JWTSecret, Options{TTL: cfg.TokenTTL})
}
