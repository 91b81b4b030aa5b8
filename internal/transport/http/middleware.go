package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const operatorContextKey = "operator_id"

// OperatorAuth extracts the operator identity from a Bearer JWT (HS256,
// identity in the subject claim) and stores it on the request context. The
// identity is then passed explicitly into every store call; nothing below
// the transport reads ambient state. When no secret is configured the
// middleware falls back to the X-Operator-ID header for local development.
func OperatorAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				raw := c.Request().Header.Get("X-Operator-ID")
				id, err := uuid.Parse(raw)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing operator identity")
				}
				c.Set(operatorContextKey, id)
				return next(c)
			}

			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenStr, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			subject, err := token.Claims.GetSubject()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing subject")
			}
			id, err := uuid.Parse(subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject")
			}

			c.Set(operatorContextKey, id)
			return next(c)
		}
	}
}

// operatorID returns the authenticated identity set by OperatorAuth.
func operatorID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(operatorContextKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
