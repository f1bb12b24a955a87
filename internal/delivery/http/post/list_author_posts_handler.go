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

type AuthorPostsLister interface {
	ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.PostDetailed, error)
}

type ListAuthorPostsHandler struct {
	postService AuthorPostsLister
	validate    *validator.Validate
}

func NewListAuthorPostsHandler(postService AuthorPostsLister, validate *validator.Validate) *ListAuthorPostsHandler {
	return &ListAuthorPostsHandler{
		postService: postService,
		validate:    validate,
	}
}

type ListAuthorPostsRequestInternal struct {
	AuthorID string `validate:"required"`
}

func (h *ListAuthorPostsHandler) ListAuthorPosts(c echo.Context) error {
	validationReq := &ListAuthorPostsRequestInternal{
		AuthorID: c.Param("id"),
	}

	if err := h.validate.Struct(validationReq); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	posts, err := h.postService.ListPostsByAuthor(c.Request().Context(), validationReq.AuthorID)
	if err != nil {
		switch err {
		case custom_errors.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "author not found")
		case custom_errors.ErrExternalServiceError:
			return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to list author posts")
		}
	}

	return c.JSON(http.StatusOK, posts)
}
