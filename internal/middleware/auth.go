package middleware

import (
	"strings"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/httpx"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// CurrentUser is the authenticated caller of a request
type CurrentUser struct {
	ID    uint
	Email string
	Role  string
}

// AuthRequired validates an HS256 access token from the Authorization header
// or the om_access cookie and stores the caller in fiber locals.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var tokenString string
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return httpx.Unauthorized(c, string(apperrors.CodeUnauthenticated), "Invalid authorization format")
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Cookies("om_access")
		}

		if tokenString == "" {
			return httpx.Unauthorized(c, string(apperrors.CodeUnauthenticated), "Missing access token")
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return httpx.Unauthorized(c, string(apperrors.CodeUnauthenticated), "Invalid or expired token")
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || claims.UserID == 0 {
			return httpx.Unauthorized(c, string(apperrors.CodeUnauthenticated), "Invalid token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// CurrentUserFrom returns the caller stored by AuthRequired
func CurrentUserFrom(c *fiber.Ctx) (CurrentUser, bool) {
	id, err := httpx.LocalUint(c, "userID")
	if err != nil || id == 0 {
		return CurrentUser{}, false
	}
	email, _ := c.Locals("email").(string)
	role, _ := c.Locals("role").(string)
	return CurrentUser{ID: id, Email: email, Role: role}, true
}
