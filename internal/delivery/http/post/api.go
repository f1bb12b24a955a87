package post_http

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pubhub-publication-service/internal/logger"
	post_service "pubhub-publication-service/internal/service/post"
)

var validate = validator.New()

// PostHTTPService groups the post procedure handlers behind one registration
// point.
type PostHTTPService struct {
	postService post_service.Service
	log         *logger.Logger

	createPostHandler      *CreatePostHandler
	getPostHandler         *GetPostHandler
	listPostsHandler       *ListPostsHandler
	listAuthorPostsHandler *ListAuthorPostsHandler
	updatePostHandler      *UpdatePostHandler
	deletePostHandler      *DeletePostHandler
}

func NewPostHTTPService(postService post_service.Service, log *logger.Logger) *PostHTTPService {
	return &PostHTTPService{
		postService: postService,
		log:         log,

		createPostHandler:      NewCreatePostHandler(postService, validate),
		getPostHandler:         NewGetPostHandler(postService, validate),
		listPostsHandler:       NewListPostsHandler(postService),
		listAuthorPostsHandler: NewListAuthorPostsHandler(postService, validate),
		updatePostHandler:      NewUpdatePostHandler(postService, validate),
		deletePostHandler:      NewDeletePostHandler(postService, validate),
	}
}

// RegisterRoutes mounts the read procedures on the public group and the
// mutation procedures on the authenticated group.
func (s *PostHTTPService) RegisterRoutes(public *echo.Group, protected *echo.Group) {
	public.GET("/posts", s.listPostsHandler.ListPosts)
	public.GET("/posts/:id", s.getPostHandler.GetPost)
	public.GET("/authors/:id/posts", s.listAuthorPostsHandler.ListAuthorPosts)

	protected.POST("/posts", s.createPostHandler.CreatePost)
	protected.PUT("/posts/:id", s.updatePostHandler.UpdatePost)
	protected.DELETE("/posts/:id", s.deletePostHandler.DeletePost)
}
