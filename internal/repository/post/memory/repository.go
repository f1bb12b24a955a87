package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/model"
)

type PostRepository struct {
	log   *logger.Logger
	mu    sync.RWMutex
	posts map[string]*model.Post
	seq   int64
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:   log,
		posts: make(map[string]*model.Post),
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Monotonic offset keeps created_at strictly ordered even when several
	// posts land within the clock's resolution.
	p.seq++
	now := pgtype.Timestamptz{Time: time.Now().Add(time.Duration(p.seq) * time.Microsecond), Valid: true}

	newPost := &model.Post{
		ID:         uuid.NewString(),
		AuthorID:   post.AuthorID,
		Title:      post.Title,
		Content:    post.Content,
		ImageURL:   post.ImageURL,
		SourceURL:  post.SourceURL,
		Category:   post.Category,
		PostType:   post.PostType,
		TimeToRead: post.TimeToRead,
		CreatedAt:  now,
	}

	p.posts[newPost.ID] = newPost

	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.String("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) GetByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, post := range p.posts {
		if post.AuthorID == authorID {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}

	sortByCreatedAtDesc(result)
	return result, nil
}

func (p *PostRepository) Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	post.Title = update.Title
	post.Content = update.Content
	post.ImageURL = update.ImageURL
	post.SourceURL = update.SourceURL
	post.Category = update.Category
	post.PostType = update.PostType
	post.TimeToRead = update.TimeToRead

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	delete(p.posts, id)
	return &result, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		postCopy := *post
		result = append(result, &postCopy)
	}

	sortByCreatedAtDesc(result)
	return result, nil
}

func sortByCreatedAtDesc(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Time.After(posts[j].CreatedAt.Time)
	})
}
