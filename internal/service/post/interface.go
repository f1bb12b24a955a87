package post_service

import (
	"context"

	"pubhub-publication-service/internal/model"
)

type Service interface {
	CreatePost(ctx context.Context, actor *model.User, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id string) (*model.PostDetailed, error)
	ListPosts(ctx context.Context) ([]*model.PostDetailed, error)
	ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.PostDetailed, error)
	UpdatePost(ctx context.Context, actorID string, id string, post *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, actorID string, id string) (*model.Post, error)
	DeleteAccount(ctx context.Context, actor *model.User, token string) error
}
