package user_http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/middleware"
	"pubhub-publication-service/internal/model"
)

type AccountDeleter interface {
	DeleteAccount(ctx context.Context, actor *model.User, token string) error
}

type DeleteAccountHandler struct {
	postService AccountDeleter
}

func NewDeleteAccountHandler(postService AccountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{
		postService: postService,
	}
}

func (h *DeleteAccountHandler) DeleteAccount(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	err := h.postService.DeleteAccount(c.Request().Context(), actor, middleware.CurrentToken(c))
	if err != nil {
		switch err {
		case custom_errors.ErrUnauthenticated:
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		case custom_errors.ErrExternalServiceError:
			return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete account")
		}
	}

	return c.NoContent(http.StatusNoContent)
}
