package user_client

import (
	"context"

	"pubhub-publication-service/internal/model"
)

// Client talks to the external identity provider, the sole owner of user
// accounts and sessions.
type Client interface {
	// Authenticate resolves a bearer token to the user it belongs to, or
	// custom_errors.ErrUnauthenticated when the session is unknown or expired.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	// GetUsers is a batched-by-id lookup; absent ids are silently omitted
	// from the result.
	GetUsers(ctx context.Context, ids []string) (map[string]*model.User, error)
	// DeleteUser removes the account at the identity provider on behalf of
	// the session the token identifies.
	DeleteUser(ctx context.Context, id string, token string) error
}
