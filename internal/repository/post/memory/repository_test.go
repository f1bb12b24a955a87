package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/model"
)

func newTestRepo() *PostRepository {
	return NewPostRepository(logger.New("test"))
}

func int32Ptr(v int32) *int32 { return &v }

func strPtr(v string) *string { return &v }

func samplePost(authorID string) *model.Post {
	return &model.Post{
		AuthorID:   authorID,
		Title:      "Intro to PostgreSQL",
		Content:    "Some content about databases",
		ImageURL:   "https://example.com/cover.png",
		Category:   model.CategoryIT,
		PostType:   model.PostTypeArticle,
		TimeToRead: int32Ptr(3),
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, samplePost("author-1"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.CreatedAt.Valid)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Intro to PostgreSQL", found.Title)
	assert.Equal(t, "author-1", found.AuthorID)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestGetByAuthor(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, samplePost("author-1"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, samplePost("author-1"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, samplePost("author-2"))
	require.NoError(t, err)

	posts, err := repo.GetByAuthor(ctx, "author-1")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// Newest first.
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	posts, err = repo.GetByAuthor(ctx, "author-3")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Post{
		AuthorID:   "author-1",
		Title:      "Old title",
		Content:    "Old content",
		ImageURL:   "https://example.com/old.png",
		SourceURL:  strPtr("https://example.com/source"),
		Category:   model.CategoryIT,
		PostType:   model.PostTypeCatalog,
		TimeToRead: int32Ptr(4),
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, &model.UpdatePostDTO{
		Title:      "New title",
		Content:    "New content",
		ImageURL:   "https://example.com/new.png",
		SourceURL:  nil,
		Category:   model.CategoryEducation,
		PostType:   model.PostTypeArticle,
		TimeToRead: int32Ptr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "New content", updated.Content)
	assert.Equal(t, model.CategoryEducation, updated.Category)
	assert.Equal(t, model.PostTypeArticle, updated.PostType)
	// Absent optional fields are cleared, not kept.
	assert.Nil(t, updated.SourceURL)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
	assert.Equal(t, created.CreatedAt.Time, updated.CreatedAt.Time)
}

func TestUpdateNotFound(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.Update(context.Background(), "missing", &model.UpdatePostDTO{Title: "x"})
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestDeleteReturnsPriorState(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, samplePost("author-1"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, created.Title, deleted.Title)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestListOrderedByCreatedAtDesc(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		created, err := repo.Create(ctx, samplePost("author-1"))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 5)
	for i, post := range posts {
		assert.Equal(t, ids[len(ids)-1-i], post.ID)
	}

	_, err = repo.Delete(ctx, ids[2])
	require.NoError(t, err)

	posts, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	for _, post := range posts {
		assert.NotEqual(t, ids[2], post.ID)
	}
}
