package middleware

import (
	"log"
	"strings"

	"contesthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the Locals key under which AuthRequired stores the verified
// principal email.
const PrincipalKey = "user_email"

// AuthRequired is a Fiber middleware that authenticates the request against
// the token verifier. The protected handler only runs with a verified
// principal in the context, so an unauthenticated request causes no side
// effects. Why a credential was rejected is logged but never sent back.
func AuthRequired(verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "unauthorized access",
			})
		}

		// Expected format: "<scheme> <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "unauthorized access",
			})
		}

		email, err := verifier.VerifyIDToken(parts[1])
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "unauthorized access",
			})
		}

		c.Locals(PrincipalKey, email)
		return c.Next()
	}
}

// Principal returns the verified principal email stored by AuthRequired.
func Principal(c *fiber.Ctx) string {
	email, _ := c.Locals(PrincipalKey).(string)
	return email
}
