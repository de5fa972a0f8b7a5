// Package auth issues and verifies the bearer tokens that gate the API.
// Tokens are HS256 and bound to a registered device.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DeviceClaims are the claims carried by a device token.
type DeviceClaims struct {
	DeviceID string `json:"deviceId"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies device tokens.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewService creates a token service. An empty secret is rejected at
// first use, not here, so construction stays infallible for wiring.
func NewService(secret, issuer string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue signs a token for the given device.
func (s *Service) Issue(deviceID, username string) (string, error) {
	if len(s.secret) == 0 {
		return "", registry.New(ErrMissingSecret)
	}
	now := time.Now()
	claims := DeviceClaims{
		DeviceID: deviceID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(token string) (*DeviceClaims, error) {
	if len(s.secret) == 0 {
		return nil, registry.New(ErrMissingSecret)
	}
	claims := &DeviceClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		return nil, registry.NewWithCause(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, registry.New(ErrInvalidToken)
	}
	return claims, nil
}
