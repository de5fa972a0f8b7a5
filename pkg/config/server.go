package config

// ServerConfig configures the HTTP hosting surface.
type ServerConfig struct {
	Port        string
	CORSOrigins string
	BodyLimitMB int
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 10),
	}
}
