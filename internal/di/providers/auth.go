package providers

import (
	"github.com/samber/do/v2"

	"github.com/readupapp/readup-server/internal/auth"
	"github.com/readupapp/readup-server/internal/config"
	"github.com/readupapp/readup-server/internal/logger"
)

// AuthKey is the hex-encoded PASETO symmetric key.
type AuthKey string

// ProvideAuthKey loads or generates the token signing key. A key supplied
// through configuration wins; otherwise one is persisted under the data path.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.TokenKey != "" {
		return AuthKey(cfg.Auth.TokenKey), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Store.DataPath)
	if err != nil {
		return "", err
	}
	cfg.Auth.TokenKey = key

	log.Info("Authentication key loaded",
		"token_duration", cfg.Auth.TokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(key), cfg.Auth.TokenDuration)
}
