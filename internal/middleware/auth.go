// Package middleware provides HTTP middleware for the fiber application:
// JWT validation, permission checks and the admin gate.
package middleware

import (
	"log"
	"strings"

	"bazari/internal/models"
	"bazari/internal/services/auth"
	"bazari/internal/utils"
	"bazari/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and user authentication.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler validates the Bearer token and stores the claims in the request
// context. Tokens issued before the user's current token version are rejected.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return response.Unauthorized(c, "invalid token")
	}

	currentVersion, err := m.authService.GetTokenVersion(claims.UserID)
	if err != nil {
		return response.Unauthorized(c, "invalid token")
	}
	if claims.TokenVersion != currentVersion {
		return response.Unauthorized(c, "token has been revoked")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// HasPermission gates a route on one claim permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok || claims == nil {
			return response.Unauthorized(c, "invalid claims")
		}
		if !claims.HasPermission(permission) {
			return response.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}

// AdminOnly gates a route on the admin role.
func AdminOnly(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return response.Unauthorized(c, "invalid claims")
	}
	if claims.Role != "admin" {
		return response.Forbidden(c, "admin access required")
	}
	return c.Next()
}
