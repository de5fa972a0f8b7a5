package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber locals key the middleware stores claims under.
const ClaimsKey = "authClaims"

// Middleware returns a fiber handler that requires a valid bearer token
// and stores its claims in locals.
func Middleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return registry.New(ErrMissingToken)
		}
		claims, err := svc.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return err
		}
		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom retrieves the verified claims stored by Middleware, or nil.
func ClaimsFrom(c *fiber.Ctx) *DeviceClaims {
	claims, _ := c.Locals(ClaimsKey).(*DeviceClaims)
	return claims
}
