package security

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/doyensec/safeurl"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
)

// URLChecker probes user-supplied URLs (post images, catalog sources) before
// they are persisted.
type URLChecker interface {
	Check(ctx context.Context, rawURL string) error
}

// SafeURLChecker issues a HEAD request through an SSRF-hardened client:
// requests to loopback, private-network, link-local and metadata addresses
// are refused at the dialer, covering DNS rebinding as well.
type SafeURLChecker struct {
	client *http.Client
	log    *logger.Logger
}

func NewSafeURLChecker(timeout time.Duration, log *logger.Logger) *SafeURLChecker {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return &SafeURLChecker{
		client: safeurl.Client(config).Client,
		log:    log,
	}
}

func (c *SafeURLChecker) Check(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		c.log.Debug("Invalid URL", slog.String("url", rawURL), slog.String("error", err.Error()))
		return custom_errors.ErrURLNotReachable
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("URL probe failed", slog.String("url", rawURL), slog.String("error", err.Error()))
		return custom_errors.ErrURLNotReachable
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Debug("URL probe returned error status",
			slog.String("url", rawURL),
			slog.Int("status", resp.StatusCode))
		return custom_errors.ErrURLNotReachable
	}

	return nil
}

// NoopURLChecker accepts every URL; used when the probe is disabled in config
// and in tests.
type NoopURLChecker struct{}

func NewNoopURLChecker() *NoopURLChecker {
	return &NoopURLChecker{}
}

func (c *NoopURLChecker) Check(ctx context.Context, rawURL string) error {
	return nil
}
