package config

import "time"

// AuthConfig configures device token verification.
type AuthConfig struct {
	// JWTSecret signs and verifies device tokens.
	JWTSecret string

	// Issuer expected in device token claims.
	Issuer string

	// TokenTTL is the lifetime of issued device tokens.
	TokenTTL time.Duration
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", ""),
		Issuer:    getEnv("JWT_ISSUER", "wunder-id"),
		TokenTTL:  getEnvDuration("JWT_TOKEN_TTL", 24*time.Hour),
	}
}
