package providers

import (
	"github.com/samber/do/v2"

	"github.com/quotebook/quotebook-server/internal/auth"
	"github.com/quotebook/quotebook-server/internal/config"
	"github.com/quotebook/quotebook-server/internal/logger"
)

// ProvideTokenService provides the PASETO token service keyed from API_SECRET.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	tokens, err := auth.NewTokenServiceFromSecret(cfg.Auth.Secret)
	if err != nil {
		return nil, err
	}

	log.Info("Token service ready", "access_token_duration", auth.AccessTokenDuration)

	return tokens, nil
}
