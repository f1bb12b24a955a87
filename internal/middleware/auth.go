package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/model"
)

const (
	userContextKey  = "auth.user"
	tokenContextKey = "auth.token"
)

// Authenticator resolves a bearer token to the identity-provider user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Auth resolves the request's bearer token, if any, and attaches the caller
// to the request context. Requests without a token pass through anonymous;
// RequireAuth rejects them on protected routes.
func Auth(authenticator Authenticator, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return next(c)
			}

			user, err := authenticator.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, custom_errors.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
				}
				log.Error("Failed to authenticate request", slog.String("error", err.Error()))
				return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")
			}

			c.Set(userContextKey, user)
			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

// RequireAuth guards mutation routes: the caller must have authenticated.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated caller, or nil for anonymous
// requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// CurrentToken returns the caller's bearer token for calls made to the
// identity provider on their behalf.
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
