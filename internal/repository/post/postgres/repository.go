package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/model"
	"pubhub-publication-service/internal/repository/postgres/db"
)

const postColumns = `id, author_id, title, content, image_url, source_url, category, post_type, time_to_read, created_at`

type PostRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewPostRepository(db db.PgDB, log *logger.Logger) *PostRepository {
	return &PostRepository{db: db, log: log}
}

func scanPost(row pgx.Row, post *model.Post) error {
	return row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.ImageURL,
		&post.SourceURL,
		&post.Category,
		&post.PostType,
		&post.TimeToRead,
		&post.CreatedAt,
	)
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"id":           uuid.NewString(),
		"author_id":    post.AuthorID,
		"title":        post.Title,
		"content":      post.Content,
		"image_url":    post.ImageURL,
		"source_url":   post.SourceURL,
		"category":     string(post.Category),
		"post_type":    string(post.PostType),
		"time_to_read": post.TimeToRead,
		"created_at":   now,
	}

	query := `
		INSERT INTO posts (id, author_id, title, content, image_url, source_url, category, post_type, time_to_read, created_at)
		VALUES (@id, @author_id, @title, @content, @image_url, @source_url, @category, @post_type, @time_to_read, @created_at)
		RETURNING ` + postColumns

	var createdPost model.Post
	err := scanPost(p.db.QueryRow(ctx, query, args), &createdPost)
	if err != nil {
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`

	post := &model.Post{}
	err := scanPost(p.db.QueryRow(ctx, query, args), post)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.String("id", id), slog.String("error", err.Error()))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (p *PostRepository) GetByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	args := pgx.NamedArgs{"author_id": authorID}
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = @author_id ORDER BY created_at DESC`

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error getting posts by author", slog.String("author_id", authorID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return p.collectPosts(rows, "GetByAuthor")
}

func (p *PostRepository) Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	args := pgx.NamedArgs{
		"id":           id,
		"title":        update.Title,
		"content":      update.Content,
		"image_url":    update.ImageURL,
		"source_url":   update.SourceURL,
		"category":     string(update.Category),
		"post_type":    string(update.PostType),
		"time_to_read": update.TimeToRead,
	}

	// Full-record replace: every column is overwritten, so a nil SourceURL
	// or TimeToRead clears the stored value.
	query := `
		UPDATE posts
		SET title = @title, content = @content, image_url = @image_url, source_url = @source_url,
		    category = @category, post_type = @post_type, time_to_read = @time_to_read
		WHERE id = @id
		RETURNING ` + postColumns

	var updatedPost model.Post
	err := scanPost(p.db.QueryRow(ctx, query, args), &updatedPost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.String("id", id), slog.String("error", err.Error()))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) (*model.Post, error) {
	args := pgx.NamedArgs{"id": id}
	query := `DELETE FROM posts WHERE id = @id RETURNING ` + postColumns

	var deletedPost model.Post
	err := scanPost(p.db.QueryRow(ctx, query, args), &deletedPost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Delete", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error deleting post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &deletedPost, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return p.collectPosts(rows, "List")
}

func (p *PostRepository) collectPosts(rows pgx.Rows, op string) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		if err := scanPost(rows, &post); err != nil {
			p.log.Error("Error scanning post during "+op, slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		p.log.Error("Error iterating rows during "+op, slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return posts, nil
}
