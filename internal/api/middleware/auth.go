package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/unimag/portal/internal/core/domain"
)

// Auth validates the bearer JWT and injects the identity into context.
// A missing header is 401; a malformed, invalid, or expired token is 403.
// The role claim is normalized here so handlers only ever see canonical
// role values, even for tokens minted against legacy role representations.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			role, err := domain.NormalizeRole(claims["role"])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid role claim")
			}

			c.Set("user_id", claims["user_id"])
			c.Set("role", string(role))
			c.Set("faculty_id", claims["faculty_id"])

			return next(c)
		}
	}
}
