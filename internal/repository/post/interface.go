package post_repository

import (
	"context"
	"pubhub-publication-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
}
