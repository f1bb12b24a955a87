package user_client_http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/model"
)

// Client is the HTTP implementation of the identity-provider client.
// Endpoints:
//
//	GET    /api/session            (Authorization: Bearer <token>)
//	GET    /api/users/{id}
//	GET    /api/users?ids=a,b,c
//	DELETE /api/users/{id}         (Authorization: Bearer <token>)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) Authenticate(ctx context.Context, token string) (*model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/session", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Session request failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, custom_errors.ErrUnauthenticated
	default:
		c.log.Error("Unexpected session response", slog.Int("status", resp.StatusCode))
		return nil, custom_errors.ErrExternalServiceError
	}

	var session struct {
		User model.User `json:"user"`
	}
	if err := decodeBody(resp.Body, &session); err != nil {
		c.log.Error("Failed to decode session response", slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}
	if session.User.ID == "" {
		return nil, custom_errors.ErrUnauthenticated
	}

	return &session.User, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("User request failed", slog.String("user_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, custom_errors.ErrUserNotFound
	default:
		c.log.Error("Unexpected user response", slog.String("user_id", id), slog.Int("status", resp.StatusCode))
		return nil, custom_errors.ErrExternalServiceError
	}

	var user model.User
	if err := decodeBody(resp.Body, &user); err != nil {
		c.log.Error("Failed to decode user response", slog.String("user_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}

	return &user, nil
}

func (c *Client) GetUsers(ctx context.Context, ids []string) (map[string]*model.User, error) {
	if len(ids) == 0 {
		return map[string]*model.User{}, nil
	}

	q := url.Values{"ids": {strings.Join(ids, ",")}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create users request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Users request failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("Unexpected users response", slog.Int("status", resp.StatusCode))
		return nil, custom_errors.ErrExternalServiceError
	}

	var users []*model.User
	if err := decodeBody(resp.Body, &users); err != nil {
		c.log.Error("Failed to decode users response", slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}

	result := make(map[string]*model.User, len(users))
	for _, user := range users {
		result[user.ID] = user
	}
	return result, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/users/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("failed to create delete user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Delete user request failed", slog.String("user_id", id), slog.String("error", err.Error()))
		return custom_errors.ErrExternalServiceError
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return custom_errors.ErrUnauthenticated
	case http.StatusNotFound:
		return custom_errors.ErrUserNotFound
	default:
		c.log.Error("Unexpected delete user response", slog.String("user_id", id), slog.Int("status", resp.StatusCode))
		return custom_errors.ErrExternalServiceError
	}
}

func decodeBody(body io.Reader, dest any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	return nil
}
