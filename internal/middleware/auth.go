package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Gakshith/finalproject/internal/repository"
	"github.com/Gakshith/finalproject/internal/utils"
)

// userKey is the context key under which the authenticated user is stored.
const userKey = "user"

// Auth returns an Echo middleware that authenticates a request and injects
// the resolved user row into the request context. The token comes from the
// Authorization header ("Bearer <token>") or, when no header is present,
// from the "token" query parameter; the header always wins. A missing
// token is reported as "not authenticated", while a bad signature, an
// expired token and an unknown subject all collapse into one
// "invalid credentials" response so that none of them can be told apart.
func Auth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
			if raw == "" {
				raw = c.QueryParam("token")
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
			}

			username, err := utils.ParseSubject(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
			}

			// The subject must resolve to a live row: a user that was renamed
			// or removed after the token was issued no longer authenticates.
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByUsername(ctx, username)
			if err != nil {
				if err == sql.ErrNoRows {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "auth lookup failed"})
			}

			c.Set(userKey, u)
			return next(c)
		}
	}
}
