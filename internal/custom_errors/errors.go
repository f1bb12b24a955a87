package custom_errors

import "errors"

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrPostValidation       = errors.New("post validation failed")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("forbidden")
	ErrDatabaseQuery        = errors.New("database query error")
	ErrDatabaseScan         = errors.New("database scan error")
	ErrCacheMiss            = errors.New("cache miss")
	ErrExternalServiceError = errors.New("external service error")
	ErrURLNotReachable      = errors.New("url not reachable")
)
