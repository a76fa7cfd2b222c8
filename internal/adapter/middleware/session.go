package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/domain/session"
)

// TokenDenylist answers whether a ticket id was revoked by sign-out.
type TokenDenylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Session resolves the Authorization bearer token into a session.Session on
// the request context. Missing, invalid, expired or revoked tokens are 401.
func Session(secret []byte, denylist TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or malformed authorization header"})
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token claims"})
			}
			sub, _ := claims["sub"].(string)
			email, _ := claims["email"].(string)
			jti, _ := claims["jti"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token payload"})
			}

			if denylist != nil && jti != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
				}
				if revoked {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session signed out"})
				}
			}

			ctx := session.WithSession(c.Request().Context(), &session.Session{UserID: sub, Email: email})
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
