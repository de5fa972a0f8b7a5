package auth

import "github.com/WunderSocial/wunder-id/pkg/errx"

var registry = errx.NewRegistry("AUTH")

var (
	ErrMissingToken = registry.Register("MISSING_TOKEN", errx.TypeAuthorization, 401,
		"missing bearer token")
	ErrInvalidToken = registry.Register("INVALID_TOKEN", errx.TypeAuthorization, 401,
		"invalid or expired token")
	ErrMissingSecret = registry.Register("MISSING_SECRET", errx.TypeValidation, 400,
		"jwt secret is not configured")
)
