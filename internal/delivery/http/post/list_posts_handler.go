package post_http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/model"
)

type PostLister interface {
	ListPosts(ctx context.Context) ([]*model.PostDetailed, error)
}

type ListPostsHandler struct {
	postService PostLister
}

func NewListPostsHandler(postService PostLister) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
	}
}

func (h *ListPostsHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list posts")
	}

	return c.JSON(http.StatusOK, posts)
}
