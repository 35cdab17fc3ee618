package app

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/innosync/pkg/jwtx"
)

// InitSigner builds the access token issuer. With no COLLAB_SIGNING_KEY a
// random key is generated, and every access token dies with the process.
func InitSigner(cfg Config, logger *slog.Logger) (*jwtx.HS256Issuer, error) {
	opts := []jwtx.HS256Option{jwtx.WithIssuer(cfg.Issuer)}

	if cfg.SigningKey == "" {
		iss, err := jwtx.NewEphemeralHS256Issuer(cfg.AccessTTL, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		logger.Warn("no COLLAB_SIGNING_KEY set, using an ephemeral key; access tokens will not survive a restart")
		return iss, nil
	}

	key, err := base64.StdEncoding.DecodeString(cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("COLLAB_SIGNING_KEY is not valid base64: %w", err)
	}

	iss, err := jwtx.NewHS256Issuer(key, cfg.AccessTTL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}
	logger.Info("loaded signing key", "issuer", cfg.Issuer, "access_ttl", cfg.AccessTTL)
	return iss, nil
}
