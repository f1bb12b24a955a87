package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	user_client "pubhub-publication-service/internal/clients/user"
	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/metrics"
	"pubhub-publication-service/internal/model"
	post_repository "pubhub-publication-service/internal/repository/post"
	"pubhub-publication-service/internal/repository/postgres"
	"pubhub-publication-service/internal/security"
)

type PostService struct {
	postRepo   post_repository.Repository
	uow        postgres.UnitOfWork
	log        *logger.Logger
	userClient user_client.Client
	urlChecker security.URLChecker
	metrics    metrics.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
	userClient user_client.Client,
	urlChecker security.URLChecker,
	metrics metrics.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		uow:        uow,
		log:        log,
		userClient: userClient,
		urlChecker: urlChecker,
		metrics:    metrics,
	}
}

// validatePostFields re-checks every mutation input at the procedure
// boundary instead of trusting the caller's client-side validation.
func (s *PostService) validatePostFields(title, content, imageURL string, sourceURL *string, category model.Category, postType model.PostType, timeToRead *int32) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" || strings.TrimSpace(imageURL) == "" {
		return custom_errors.ErrPostValidation
	}
	if err := postType.IsValid(); err != nil {
		return custom_errors.ErrPostValidation
	}
	if err := category.IsValid(); err != nil {
		return custom_errors.ErrPostValidation
	}
	if !category.AllowedFor(postType) {
		return custom_errors.ErrPostValidation
	}
	if postType == model.PostTypeCatalog && (sourceURL == nil || strings.TrimSpace(*sourceURL) == "") {
		return custom_errors.ErrPostValidation
	}
	if timeToRead != nil && *timeToRead <= 0 {
		return custom_errors.ErrPostValidation
	}
	return nil
}

func (s *PostService) checkURLs(ctx context.Context, imageURL string, sourceURL *string) error {
	if err := s.urlChecker.Check(ctx, imageURL); err != nil {
		s.log.Debug("Image URL rejected", slog.String("url", imageURL), slog.String("error", err.Error()))
		return custom_errors.ErrURLNotReachable
	}
	if sourceURL != nil && *sourceURL != "" {
		if err := s.urlChecker.Check(ctx, *sourceURL); err != nil {
			s.log.Debug("Source URL rejected", slog.String("url", *sourceURL), slog.String("error", err.Error()))
			return custom_errors.ErrURLNotReachable
		}
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, actor *model.User, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	if actor == nil {
		return nil, custom_errors.ErrUnauthenticated
	}

	if err := s.validatePostFields(post.Title, post.Content, post.ImageURL, post.SourceURL, post.Category, post.PostType, post.TimeToRead); err != nil {
		s.metrics.IncrementPostOperations("create", false)
		return nil, err
	}
	if err := s.checkURLs(ctx, post.ImageURL, post.SourceURL); err != nil {
		s.metrics.IncrementPostOperations("create", false)
		return nil, err
	}

	timeToRead := post.TimeToRead
	if timeToRead == nil {
		derived := ComputeReadTime(post.Content)
		timeToRead = &derived
	}

	// The author is always the authenticated caller; input never names one.
	newPost := &model.Post{
		AuthorID:   actor.ID,
		Title:      post.Title,
		Content:    post.Content,
		ImageURL:   post.ImageURL,
		SourceURL:  post.SourceURL,
		Category:   post.Category,
		PostType:   post.PostType,
		TimeToRead: timeToRead,
	}

	createdPost, err := s.postRepo.Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("create", true)
	return &model.PostDetailed{Post: createdPost, Author: actor}, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id string) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id",
				slog.String("error", err.Error()),
				slog.String("id", id))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	author, err := s.userClient.GetUser(ctx, post.AuthorID)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUserNotFound):
			s.log.Debug("Author not found", slog.String("author_id", post.AuthorID))
			return nil, custom_errors.ErrUserNotFound
		default:
			s.log.Error("Failed to get author",
				slog.String("error", err.Error()),
				slog.String("author_id", post.AuthorID))
			return nil, custom_errors.ErrExternalServiceError
		}
	}

	return &model.PostDetailed{Post: post, Author: author}, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*model.PostDetailed, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return s.attachAuthors(ctx, posts)
}

func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.PostDetailed, error) {
	author, err := s.userClient.GetUser(ctx, authorID)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUserNotFound):
			s.log.Debug("Author not found", slog.String("author_id", authorID))
			return nil, custom_errors.ErrUserNotFound
		default:
			s.log.Error("Failed to get author",
				slog.String("error", err.Error()),
				slog.String("author_id", authorID))
			return nil, custom_errors.ErrExternalServiceError
		}
	}

	posts, err := s.postRepo.GetByAuthor(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to list posts by author",
			slog.String("author_id", authorID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	result := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		result = append(result, &model.PostDetailed{Post: post, Author: author})
	}
	return result, nil
}

// attachAuthors resolves every author through a single batched lookup rather
// than one request per post.
func (s *PostService) attachAuthors(ctx context.Context, posts []*model.Post) ([]*model.PostDetailed, error) {
	seen := make(map[string]struct{}, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, found := seen[post.AuthorID]; !found {
			seen[post.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, post.AuthorID)
		}
	}

	authors, err := s.userClient.GetUsers(ctx, authorIDs)
	if err != nil {
		s.log.Error("Failed to batch-resolve authors", slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}

	result := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		result = append(result, &model.PostDetailed{
			Post:   post,
			Author: authors[post.AuthorID],
		})
	}
	return result, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actorID string, id string, post *model.UpdatePostDTO) (result *model.Post, err error) {
	if err := s.validatePostFields(post.Title, post.Content, post.ImageURL, post.SourceURL, post.Category, post.PostType, post.TimeToRead); err != nil {
		s.metrics.IncrementPostOperations("update", false)
		return nil, err
	}
	if err := s.checkURLs(ctx, post.ImageURL, post.SourceURL); err != nil {
		s.metrics.IncrementPostOperations("update", false)
		return nil, err
	}

	if post.TimeToRead == nil {
		derived := ComputeReadTime(post.Content)
		post.TimeToRead = &derived
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed update", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()

	existingPost, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.String("id", id))
			s.metrics.IncrementPostOperations("update", false)
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for update", slog.String("error", err.Error()), slog.String("id", id))
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrDatabaseQuery
	}
	if existingPost.AuthorID != actorID {
		s.log.Debug("User is not author of post",
			slog.String("user_id", actorID),
			slog.String("author_id", existingPost.AuthorID))
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrForbidden
	}

	updatedPost, err := postRepo.Update(ctx, id, post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.metrics.IncrementPostOperations("update", false)
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.String("error", err.Error()), slog.String("id", id))
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	s.metrics.IncrementPostOperations("update", true)
	return updatedPost, nil
}

func (s *PostService) DeletePost(ctx context.Context, actorID string, id string) (result *model.Post, err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed delete", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()

	post, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when deleting post", slog.String("id", id))
			s.metrics.IncrementPostOperations("delete", false)
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.String("error", err.Error()), slog.String("id", id))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrDatabaseQuery
	}
	if post.AuthorID != actorID {
		s.log.Debug("User is not author of post",
			slog.String("user_id", actorID),
			slog.String("author_id", post.AuthorID))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrForbidden
	}

	deletedPost, err := postRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.metrics.IncrementPostOperations("delete", false)
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.String("error", err.Error()), slog.String("id", id))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	s.metrics.IncrementPostOperations("delete", true)
	return deletedPost, nil
}

// DeleteAccount removes every post of the caller in one transaction, then
// asks the identity provider to delete the account itself.
func (s *PostService) DeleteAccount(ctx context.Context, actor *model.User, token string) (err error) {
	if actor == nil {
		return custom_errors.ErrUnauthenticated
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed account deletion", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()

	posts, err := postRepo.GetByAuthor(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to list posts for account deletion",
			slog.String("user_id", actor.ID),
			slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	for _, post := range posts {
		if _, err := postRepo.Delete(ctx, post.ID); err != nil {
			s.log.Error("Failed to delete post during account deletion",
				slog.String("post_id", post.ID),
				slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	if err := s.userClient.DeleteUser(ctx, actor.ID, token); err != nil {
		s.log.Error("Failed to delete account at identity provider",
			slog.String("user_id", actor.ID),
			slog.String("error", err.Error()))
		s.metrics.IncrementIdentityRequests("delete_user", false)
		return custom_errors.ErrExternalServiceError
	}
	s.metrics.IncrementIdentityRequests("delete_user", true)

	s.log.Info("Account deleted",
		slog.String("user_id", actor.ID),
		slog.Int("posts_removed", len(posts)))
	return nil
}
