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

type PostCreator interface {
	CreatePost(ctx context.Context, actor *model.User, post *model.CreatePostDTO) (*model.PostDetailed, error)
}

type CreatePostHandler struct {
	postService PostCreator
	validate    *validator.Validate
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		validate:    validate,
	}
}

type CreatePostRequestInternal struct {
	Title      string  `json:"title" validate:"required,max=255"`
	Content    string  `json:"content" validate:"required"`
	ImageURL   string  `json:"image_url" validate:"required,url"`
	SourceURL  *string `json:"source_url" validate:"required_if=PostType catalog,omitempty,url"`
	Category   string  `json:"category" validate:"required,oneof=education medicine industry it auto"`
	PostType   string  `json:"post_type" validate:"required,oneof=article catalog"`
	TimeToRead *int32  `json:"time_to_read" validate:"omitempty,gt=0"`
}

func (h *CreatePostHandler) CreatePost(c echo.Context) error {
	req := new(CreatePostRequestInternal)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	postDTO := &model.CreatePostDTO{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		SourceURL:  req.SourceURL,
		Category:   model.Category(req.Category),
		PostType:   model.PostType(req.PostType),
		TimeToRead: req.TimeToRead,
	}

	createdPost, err := h.postService.CreatePost(c.Request().Context(), actor, postDTO)
	if err != nil {
		switch err {
		case custom_errors.ErrPostValidation:
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("post creation validation failed: %v", err))
		case custom_errors.ErrURLNotReachable:
			return echo.NewHTTPError(http.StatusBadRequest, "linked url is not reachable")
		case custom_errors.ErrUnauthenticated:
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create post")
		}
	}

	return c.JSON(http.StatusCreated, createdPost)
}
