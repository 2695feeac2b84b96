package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
)

// Module provides password hashing and session token primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

// newTokenStrategy signs tokens with JWT_SECRET; they expire after SESSION_TTL.
func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{TTL: p.Config.SessionTTL, Issuer: defaultIssuer})
}
