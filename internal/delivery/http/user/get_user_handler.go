package user_http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/model"
)

type UserGetter interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type GetUserHandler struct {
	userClient UserGetter
	validate   *validator.Validate
}

func NewGetUserHandler(userClient UserGetter, validate *validator.Validate) *GetUserHandler {
	return &GetUserHandler{
		userClient: userClient,
		validate:   validate,
	}
}

type GetUserRequestInternal struct {
	UserID string `validate:"required"`
}

func (h *GetUserHandler) GetUser(c echo.Context) error {
	validationReq := &GetUserRequestInternal{
		UserID: c.Param("id"),
	}

	if err := h.validate.Struct(validationReq); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	user, err := h.userClient.GetUser(c.Request().Context(), validationReq.UserID)
	if err != nil {
		switch err {
		case custom_errors.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		case custom_errors.ErrExternalServiceError:
			return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to get user")
		}
	}

	return c.JSON(http.StatusOK, user)
}
