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

type PostUpdater interface {
	UpdatePost(ctx context.Context, actorID string, id string, post *model.UpdatePostDTO) (*model.Post, error)
}

type UpdatePostHandler struct {
	postService PostUpdater
	validate    *validator.Validate
}

func NewUpdatePostHandler(postService PostUpdater, validate *validator.Validate) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService: postService,
		validate:    validate,
	}
}

type UpdatePostRequestInternal struct {
	PostID     string  `validate:"required,uuid4"`
	Title      string  `json:"title" validate:"required,max=255"`
	Content    string  `json:"content" validate:"required"`
	ImageURL   string  `json:"image_url" validate:"required,url"`
	SourceURL  *string `json:"source_url" validate:"required_if=PostType catalog,omitempty,url"`
	Category   string  `json:"category" validate:"required,oneof=education medicine industry it auto"`
	PostType   string  `json:"post_type" validate:"required,oneof=article catalog"`
	TimeToRead *int32  `json:"time_to_read" validate:"omitempty,gt=0"`
}

func (h *UpdatePostHandler) UpdatePost(c echo.Context) error {
	req := new(UpdatePostRequestInternal)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.PostID = c.Param("id")

	if err := h.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	updateDTO := &model.UpdatePostDTO{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		SourceURL:  req.SourceURL,
		Category:   model.Category(req.Category),
		PostType:   model.PostType(req.PostType),
		TimeToRead: req.TimeToRead,
	}

	updatedPost, err := h.postService.UpdatePost(c.Request().Context(), actor.ID, req.PostID, updateDTO)
	if err != nil {
		switch err {
		case custom_errors.ErrPostValidation:
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("post update validation failed: %v", err))
		case custom_errors.ErrURLNotReachable:
			return echo.NewHTTPError(http.StatusBadRequest, "linked url is not reachable")
		case custom_errors.ErrPostNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		case custom_errors.ErrForbidden:
			return echo.NewHTTPError(http.StatusForbidden, "post belongs to another author")
		case custom_errors.ErrUnauthenticated:
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update post")
		}
	}

	return c.JSON(http.StatusOK, updatedPost)
}
