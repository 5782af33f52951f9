// Package catalog talks to the upstream university library API and
// normalizes its records into domain types.
package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/ratelimit"
)

const (
	// Rate limit toward the upstream: 5 requests per second, burst of 10.
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 30 * time.Second

	// rate limiter key; the upstream is a single origin
	upstreamKey = "upstream"
)

// Client is a rate-limited client for the upstream library REST API.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	baseURL string
	locale  domain.Locale
	logger  *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit overrides the request rate toward the upstream.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = ratelimit.New(rps, burst)
		}
	}
}

// New creates a client for the upstream at baseURL. Localized upstream
// fields are resolved to locale during normalization.
func New(baseURL string, locale domain.Locale, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		baseURL: strings.TrimRight(baseURL, "/"),
		locale:  locale,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// BookItems fetches the full enriched catalog and normalizes it.
func (c *Client) BookItems(ctx context.Context) ([]*domain.Book, error) {
	body, err := c.doRequest(ctx, "/book-items", nil)
	if err != nil {
		return nil, wrapError("bookItems", err)
	}

	var resp rawEnvelope[[]rawBookItem]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("bookItems", fmt.Errorf("parse response: %w", err))
	}

	books := make([]*domain.Book, 0, len(resp.Data))
	for i := range resp.Data {
		if b := normalizeBookItem(&resp.Data[i], c.locale); b != nil {
			books = append(books, b)
		}
	}
	return books, nil
}

// Categories fetches the category list with names resolved to the locale.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	body, err := c.doRequest(ctx, "/categories", nil)
	if err != nil {
		return nil, wrapError("categories", err)
	}

	var resp rawEnvelope[[]rawNamed]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("categories", fmt.Errorf("parse response: %w", err))
	}

	out := make([]domain.Category, 0, len(resp.Data))
	for _, r := range resp.Data {
		out = append(out, domain.Category{ID: r.ID, Name: resolveName(&r, c.locale)})
	}
	return out, nil
}

// Departments fetches the department list with names resolved to the locale.
func (c *Client) Departments(ctx context.Context) ([]domain.Department, error) {
	body, err := c.doRequest(ctx, "/kafedras", nil)
	if err != nil {
		return nil, wrapError("departments", err)
	}

	var resp rawEnvelope[[]rawNamed]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("departments", fmt.Errorf("parse response: %w", err))
	}

	out := make([]domain.Department, 0, len(resp.Data))
	for _, r := range resp.Data {
		out = append(out, domain.Department{ID: r.ID, Name: resolveName(&r, c.locale)})
	}
	return out, nil
}

// Orders fetches the orders of one user.
func (c *Client) Orders(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := url.Values{}
	query.Set("user_id", userID)

	body, err := c.doRequest(ctx, "/orders", query)
	if err != nil {
		return nil, wrapError("orders", err)
	}

	var resp rawEnvelope[[]rawOrder]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("orders", fmt.Errorf("parse response: %w", err))
	}

	orders := make([]*domain.Order, 0, len(resp.Data))
	for i := range resp.Data {
		r := &resp.Data[i]
		// The upstream returns every user's orders on some deployments;
		// filter locally to be safe.
		if r.UserID != userID {
			continue
		}
		orders = append(orders, &domain.Order{
			ID:        r.ID,
			UserID:    r.UserID,
			BookID:    r.BookID,
			Status:    domain.OrderStatus(r.StatusID),
			CreatedAt: parseUpstreamTime(r.CreatedAt),
			UpdatedAt: parseUpstreamTime(r.UpdatedAt),
		})
	}
	return orders, nil
}

// doRequest executes an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, upstreamKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("upstream request",
		slog.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
