package post_http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/model"
)

type PostGetter interface {
	GetPostByID(ctx context.Context, id string) (*model.PostDetailed, error)
}

type GetPostHandler struct {
	postService PostGetter
	validate    *validator.Validate
}

func NewGetPostHandler(postService PostGetter, validate *validator.Validate) *GetPostHandler {
	return &GetPostHandler{
		postService: postService,
		validate:    validate,
	}
}

type GetPostRequestInternal struct {
	PostID string `validate:"required,uuid4"`
}

func (h *GetPostHandler) GetPost(c echo.Context) error {
	validationReq := &GetPostRequestInternal{
		PostID: c.Param("id"),
	}

	if err := h.validate.Struct(validationReq); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	retrievedPost, err := h.postService.GetPostByID(c.Request().Context(), validationReq.PostID)
	if err != nil {
		switch err {
		case custom_errors.ErrPostNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		case custom_errors.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "post author not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to get post")
		}
	}

	return c.JSON(http.StatusOK, retrievedPost)
}
