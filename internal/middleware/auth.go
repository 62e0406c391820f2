// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"strings"

	"daswos/internal/models"
	"daswos/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware validates bearer tokens and stores the claims on the
// request context under utils.ClaimsKey.
type AuthMiddleware struct {
	secret string
	log    logrus.FieldLogger
}

func NewAuthMiddleware(secret string, log logrus.FieldLogger) *AuthMiddleware {
	return &AuthMiddleware{
		secret: secret,
		log:    log,
	}
}

// Handler validates JWT tokens and adds claims to the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ParseToken(m.secret, tokenString)
	if err != nil {
		m.log.WithError(err).WithField("path", c.Path()).Debug("Token validation failed")
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals(utils.ClaimsKey, claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "insufficient permissions")
	}

	return c.Next()
}
