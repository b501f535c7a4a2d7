package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// UserIDKey carries the verified subject id on the request context.
const UserIDKey contextKey = "user_id"

// SubjectChecker reports whether a user with the given id exists. A token
// whose signature verifies but whose subject no longer resolves to a user
// is rejected exactly like a forged one.
type SubjectChecker interface {
	SubjectExists(ctx context.Context, id int64) (bool, error)
}

// RequireUser guards a route with bearer-token authentication. It extracts
// the Authorization header, verifies the token, confirms the subject still
// exists, and places the user id on the request context. Every failure is a
// 401 carrying a WWW-Authenticate challenge.
func RequireUser(tokens *TokenIssuer, users SubjectChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c)
			}

			userID, err := tokens.Parse(parts[1])
			if err != nil {
				return unauthorized(c)
			}

			ok, err := users.SubjectExists(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "user lookup failed")
			}
			if !ok {
				return unauthorized(c)
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("user_id", userID)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
}

// UserIDFromContext retrieves the authenticated user id from context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
