package post_http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/middleware"
	"pubhub-publication-service/internal/model"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, actorID string, id string) (*model.Post, error)
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
	}
}

type DeletePostRequestInternal struct {
	PostID string `validate:"required,uuid4"`
}

func (h *DeletePostHandler) DeletePost(c echo.Context) error {
	validationReq := &DeletePostRequestInternal{
		PostID: c.Param("id"),
	}

	if err := h.validate.Struct(validationReq); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	deletedPost, err := h.postService.DeletePost(c.Request().Context(), actor.ID, validationReq.PostID)
	if err != nil {
		switch err {
		case custom_errors.ErrPostNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		case custom_errors.ErrForbidden:
			return echo.NewHTTPError(http.StatusForbidden, "post belongs to another author")
		case custom_errors.ErrUnauthenticated:
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete post")
		}
	}

	return c.JSON(http.StatusOK, deletedPost)
}
