package middleware

import "github.com/gofiber/fiber/v2"

// SessionVerifier reports whether the request carries a valid session.
type SessionVerifier interface {
	VerifyAuth(c *fiber.Ctx) bool
}

// RequireSession lets authenticated requests through and hands every other
// request to onUnauthenticated.
func RequireSession(v SessionVerifier, onUnauthenticated fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v.VerifyAuth(c) {
			return c.Next()
		}
		return onUnauthenticated(c)
	}
}
