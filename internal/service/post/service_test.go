package post_service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/model"
	post_repository "pubhub-publication-service/internal/repository/post"
	"pubhub-publication-service/internal/repository/post/memory"
	"pubhub-publication-service/internal/repository/postgres"
	"pubhub-publication-service/internal/security"
)

type stubUserClient struct {
	users       map[string]*model.User
	deleted     []string
	lookupErr   error
	deleteErr   error
	batchCalls  int
	singleCalls int
}

func (s *stubUserClient) Authenticate(ctx context.Context, token string) (*model.User, error) {
	return nil, custom_errors.ErrUnauthenticated
}

func (s *stubUserClient) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.singleCalls++
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	user, ok := s.users[id]
	if !ok {
		return nil, custom_errors.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserClient) GetUsers(ctx context.Context, ids []string) (map[string]*model.User, error) {
	s.batchCalls++
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	result := make(map[string]*model.User)
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

func (s *stubUserClient) DeleteUser(ctx context.Context, id string, token string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

// memoryUOW hands every transaction the same in-memory repository, which is
// enough to exercise the service paths that go through a transaction.
type memoryUOW struct {
	repo *memory.PostRepository
}

func (u *memoryUOW) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &memoryTx{repo: u.repo}, nil
}

type memoryTx struct {
	repo *memory.PostRepository
}

func (t *memoryTx) PostRepository() post_repository.Repository { return t.repo }
func (t *memoryTx) Commit(ctx context.Context) error           { return nil }
func (t *memoryTx) Rollback(ctx context.Context) error         { return nil }

type noopMetrics struct{}

func (noopMetrics) IncrementHTTPRequests(method, path, status string)                            {}
func (noopMetrics) RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {}
func (noopMetrics) IncrementDatabaseQueries(queryType string, success bool)                      {}
func (noopMetrics) RecordDatabaseQueryDuration(queryType string, duration time.Duration)         {}
func (noopMetrics) IncrementCacheHits()                                                          {}
func (noopMetrics) IncrementCacheMisses()                                                        {}
func (noopMetrics) RecordCacheOperationDuration(operation string, duration time.Duration)        {}
func (noopMetrics) IncrementPostOperations(operation string, success bool)                       {}
func (noopMetrics) IncrementIdentityRequests(operation string, success bool)                     {}
func (noopMetrics) SetServiceHealth(healthy bool)                                                {}

func newTestService(users map[string]*model.User) (*PostService, *memory.PostRepository, *stubUserClient) {
	log := logger.New("test")
	repo := memory.NewPostRepository(log)
	client := &stubUserClient{users: users}
	svc := NewPostService(repo, &memoryUOW{repo: repo}, log, client, security.NewNoopURLChecker(), noopMetrics{})
	return svc, repo, client
}

func testUsers() map[string]*model.User {
	return map[string]*model.User{
		"author-1": {ID: "author-1", Name: "Alice", Email: "alice@example.com"},
		"author-2": {ID: "author-2", Name: "Bob", Email: "bob@example.com"},
	}
}

func validCreateDTO() *model.CreatePostDTO {
	return &model.CreatePostDTO{
		Title:    "Go concurrency patterns",
		Content:  "Channels and goroutines in practice",
		ImageURL: "https://example.com/cover.png",
		Category: model.CategoryIT,
		PostType: model.PostTypeArticle,
	}
}

func TestCreatePostBindsAuthorToActor(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	actor := &model.User{ID: "author-1", Name: "Alice"}

	created, err := svc.CreatePost(context.Background(), actor, validCreateDTO())
	require.NoError(t, err)

	assert.Equal(t, "author-1", created.Post.AuthorID)
	assert.Equal(t, actor, created.Author)
	assert.NotEmpty(t, created.Post.ID)
}

func TestCreatePostRequiresActor(t *testing.T) {
	svc, _, _ := newTestService(testUsers())

	_, err := svc.CreatePost(context.Background(), nil, validCreateDTO())
	assert.ErrorIs(t, err, custom_errors.ErrUnauthenticated)
}

func TestCreatePostDerivesReadTime(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	actor := &model.User{ID: "author-1"}

	dto := validCreateDTO()
	dto.TimeToRead = nil

	created, err := svc.CreatePost(context.Background(), actor, dto)
	require.NoError(t, err)
	require.NotNil(t, created.Post.TimeToRead)
	assert.Equal(t, int32(1), *created.Post.TimeToRead)
}

func TestCreatePostKeepsExplicitReadTime(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	actor := &model.User{ID: "author-1"}

	explicit := int32(12)
	dto := validCreateDTO()
	dto.TimeToRead = &explicit

	created, err := svc.CreatePost(context.Background(), actor, dto)
	require.NoError(t, err)
	require.NotNil(t, created.Post.TimeToRead)
	assert.Equal(t, int32(12), *created.Post.TimeToRead)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	actor := &model.User{ID: "author-1"}
	sourceURL := "https://example.com/list"

	tests := []struct {
		name   string
		mutate func(dto *model.CreatePostDTO)
	}{
		{
			name:   "empty title",
			mutate: func(dto *model.CreatePostDTO) { dto.Title = "" },
		},
		{
			name:   "empty content",
			mutate: func(dto *model.CreatePostDTO) { dto.Content = "   " },
		},
		{
			name:   "empty image url",
			mutate: func(dto *model.CreatePostDTO) { dto.ImageURL = "" },
		},
		{
			name:   "unknown category",
			mutate: func(dto *model.CreatePostDTO) { dto.Category = "gardening" },
		},
		{
			name:   "unknown post type",
			mutate: func(dto *model.CreatePostDTO) { dto.PostType = "digest" },
		},
		{
			name: "catalog without source url",
			mutate: func(dto *model.CreatePostDTO) {
				dto.PostType = model.PostTypeCatalog
				dto.SourceURL = nil
			},
		},
		{
			name: "catalog with auto category",
			mutate: func(dto *model.CreatePostDTO) {
				dto.PostType = model.PostTypeCatalog
				dto.SourceURL = &sourceURL
				dto.Category = model.CategoryAuto
			},
		},
		{
			name: "non positive read time",
			mutate: func(dto *model.CreatePostDTO) {
				zero := int32(0)
				dto.TimeToRead = &zero
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validCreateDTO()
			tt.mutate(dto)

			_, err := svc.CreatePost(context.Background(), actor, dto)
			assert.ErrorIs(t, err, custom_errors.ErrPostValidation)
		})
	}
}

type failingURLChecker struct{}

func (failingURLChecker) Check(ctx context.Context, rawURL string) error {
	return custom_errors.ErrURLNotReachable
}

func TestCreatePostUnreachableURL(t *testing.T) {
	log := logger.New("test")
	repo := memory.NewPostRepository(log)
	client := &stubUserClient{users: testUsers()}
	svc := NewPostService(repo, &memoryUOW{repo: repo}, log, client, failingURLChecker{}, noopMetrics{})

	_, err := svc.CreatePost(context.Background(), &model.User{ID: "author-1"}, validCreateDTO())
	assert.ErrorIs(t, err, custom_errors.ErrURLNotReachable)
}

func TestCreateCatalogPostWithSourceURL(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	actor := &model.User{ID: "author-1"}
	sourceURL := "https://example.com/list"

	dto := validCreateDTO()
	dto.PostType = model.PostTypeCatalog
	dto.SourceURL = &sourceURL

	created, err := svc.CreatePost(context.Background(), actor, dto)
	require.NoError(t, err)
	require.NotNil(t, created.Post.SourceURL)
	assert.Equal(t, sourceURL, *created.Post.SourceURL)
}

func TestGetPostByIDAttachesAuthor(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	actor := &model.User{ID: "author-1", Name: "Alice"}

	created, err := svc.CreatePost(context.Background(), actor, validCreateDTO())
	require.NoError(t, err)

	detailed, err := svc.GetPostByID(context.Background(), created.Post.ID)
	require.NoError(t, err)
	require.NotNil(t, detailed.Author)
	assert.Equal(t, "Alice", detailed.Author.Name)
}

func TestGetPostByIDNotFound(t *testing.T) {
	svc, _, _ := newTestService(testUsers())

	_, err := svc.GetPostByID(context.Background(), "missing")
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestListPostsBatchesAuthorLookups(t *testing.T) {
	svc, _, client := newTestService(testUsers())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(ctx, &model.User{ID: "author-1"}, validCreateDTO())
		require.NoError(t, err)
	}
	_, err := svc.CreatePost(ctx, &model.User{ID: "author-2"}, validCreateDTO())
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 4)

	// One batched request resolves all distinct authors.
	assert.Equal(t, 1, client.batchCalls)
	for _, detailed := range posts {
		require.NotNil(t, detailed.Author)
		assert.Equal(t, detailed.Post.AuthorID, detailed.Author.ID)
	}
}

func TestListPostsUnknownAuthorLeftNil(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, &model.User{ID: "ghost"}, validCreateDTO())
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].Author)
}

func TestListPostsByAuthor(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, &model.User{ID: "author-1"}, validCreateDTO())
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, &model.User{ID: "author-2"}, validCreateDTO())
	require.NoError(t, err)

	posts, err := svc.ListPostsByAuthor(ctx, "author-1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "author-1", posts[0].Post.AuthorID)

	_, err = svc.ListPostsByAuthor(ctx, "ghost")
	assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, &model.User{ID: "author-1"}, validCreateDTO())
	require.NoError(t, err)

	update := &model.UpdatePostDTO{
		Title:    "Edited title",
		Content:  "Edited content",
		ImageURL: "https://example.com/new.png",
		Category: model.CategoryEducation,
		PostType: model.PostTypeArticle,
	}

	_, err = svc.UpdatePost(ctx, "author-2", created.Post.ID, update)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	updated, err := svc.UpdatePost(ctx, "author-1", created.Post.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Edited title", updated.Title)
	assert.Equal(t, model.CategoryEducation, updated.Category)
}

func TestUpdatePostNotFound(t *testing.T) {
	svc, _, _ := newTestService(testUsers())

	update := &model.UpdatePostDTO{
		Title:    "Edited",
		Content:  "Edited",
		ImageURL: "https://example.com/new.png",
		Category: model.CategoryIT,
		PostType: model.PostTypeArticle,
	}

	_, err := svc.UpdatePost(context.Background(), "author-1", "missing", update)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestDeletePostReturnsPriorState(t *testing.T) {
	svc, _, _ := newTestService(testUsers())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, &model.User{ID: "author-1"}, validCreateDTO())
	require.NoError(t, err)

	_, err = svc.DeletePost(ctx, "author-2", created.Post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	deleted, err := svc.DeletePost(ctx, "author-1", created.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Post.ID, deleted.ID)
	assert.Equal(t, created.Post.Title, deleted.Title)

	_, err = svc.GetPostByID(ctx, created.Post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestDeleteAccountRemovesPostsAndUser(t *testing.T) {
	svc, repo, client := newTestService(testUsers())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.CreatePost(ctx, &model.User{ID: "author-1"}, validCreateDTO())
		require.NoError(t, err)
	}
	kept, err := svc.CreatePost(ctx, &model.User{ID: "author-2"}, validCreateDTO())
	require.NoError(t, err)

	err = svc.DeleteAccount(ctx, &model.User{ID: "author-1"}, "token-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"author-1"}, client.deleted)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.Post.ID, remaining[0].ID)
}

func TestDeleteAccountIdentityProviderFailure(t *testing.T) {
	svc, _, client := newTestService(testUsers())
	client.deleteErr = custom_errors.ErrExternalServiceError

	err := svc.DeleteAccount(context.Background(), &model.User{ID: "author-1"}, "token-1")
	assert.ErrorIs(t, err, custom_errors.ErrExternalServiceError)
}

func TestDeleteAccountRequiresActor(t *testing.T) {
	svc, _, _ := newTestService(testUsers())

	err := svc.DeleteAccount(context.Background(), nil, "")
	assert.ErrorIs(t, err, custom_errors.ErrUnauthenticated)
}
