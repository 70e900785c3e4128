// Package middleware provides HTTP middleware components for the application.
// Tokens are issued by an external identity provider; this service only
// verifies them.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"insuro/internal/models"
	"insuro/internal/utils/response"
)

const claimsKey = "claims"

// AuthMiddleware validates HS256 bearer tokens.
type AuthMiddleware struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Handler validates the bearer token and stores its claims in the request
// context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := &models.TokenClaims{}
	token, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		zap.L().Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return response.Unauthorized(c, "invalid token")
	}
	if claims.Identity() == "" {
		return response.Unauthorized(c, "token has no subject")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// Claims returns the verified token claims of the request, or nil.
func Claims(c *fiber.Ctx) *models.TokenClaims {
	claims, _ := c.Locals(claimsKey).(*models.TokenClaims)
	return claims
}

// RequireReviewer admits reviewers and admins only.
func RequireReviewer(c *fiber.Ctx) error {
	claims := Claims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if !claims.IsReviewer() {
		zap.L().Info("reviewer route denied",
			zap.String("user_id", claims.Identity()),
			zap.String("role", claims.Role),
			zap.String("path", c.Path()),
		)
		return response.Forbidden(c)
	}
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if claims.Role == models.RoleAdmin || claims.HasPermission(permission) {
			return c.Next()
		}
		return response.Forbidden(c)
	}
}
