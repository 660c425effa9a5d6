package client

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/streetbites/guide/client/internal/api"
	"github.com/streetbites/guide/client/internal/shardqueue"
)

// DefaultUserAgent is sent on every request unless overridden with WithUserAgent.
const DefaultUserAgent = "streetbites-guide/1"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the Street Bites backend: the answer engine, restaurant
// detail and review creation endpoints, and the seed bootstrap.
type Client struct {
	baseURL   string
	http      *http.Client
	exec      executor
	userAgent string
	sqConfig  *shardqueue.Config

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the backend at baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 30 * time.Second},
		userAgent: DefaultUserAgent,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor(c.sqConfig)
	}

	c.wrapTransportWithRequestID()

	return c, nil
}

// BaseURL returns the normalised backend URL.
func (c *Client) BaseURL() string { return c.baseURL }

// wrapTransportWithRequestID installs the outermost transport, which stamps
// every request with a fresh X-Request-ID and the client's User-Agent.
func (c *Client) wrapTransportWithRequestID() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &requestIDTransport{
		base:      baseTransport,
		userAgent: c.userAgent,
	}
}

// requestIDTransport wraps an http.RoundTripper to add correlation headers.
type requestIDTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if cloned.Header.Get("X-Request-ID") == "" {
		cloned.Header.Set("X-Request-ID", uuid.NewString())
	}
	cloned.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(cloned)
}

// Close stops the background executor, draining queued jobs. Safe to call
// multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// AwaitRestaurant blocks until every job already submitted for restaurantID
// (fetches and review submissions) has run.
func (c *Client) AwaitRestaurant(ctx context.Context, restaurantID ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.exec.Barrier(ctx, restaurantID.String())
}

// newDefaultExecutor constructs the shardqueue executor. Its error handler
// only sees jobs that return errors to it, which in practice is the seed
// bootstrap.
func newDefaultExecutor(cfg *shardqueue.Config) *shardqueue.ShardExecutor {
	var c shardqueue.Config
	if cfg != nil {
		c = *cfg
	}
	if c.ErrorHandler == nil {
		c.ErrorHandler = func(err error) {
			log.Warn().Err(err).Msg("background job failed")
		}
	}
	return shardqueue.NewShardExecutor(c)
}

// --------------------------------------------------------------------
// Seed bootstrap
// --------------------------------------------------------------------

// Seed calls the seed endpoint once, synchronously.
func (c *Client) Seed(ctx context.Context) error {
	return api.Seed(ctx, c.instrumented(endpointSeed), c.baseURL)
}

// SeedInBackground enqueues the seed call. Recoverable failures are retried
// with backoff; the final failure is logged and otherwise ignored.
func (c *Client) SeedInBackground(ctx context.Context) error {
	return api.SeedInBackground(ctx, c.exec, c.instrumented(endpointSeed), c.baseURL)
}

// --------------------------------------------------------------------
// Chat
// --------------------------------------------------------------------

// Chat sends a query to the answer engine. It is never retried.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return api.Chat(ctx, c.instrumented(endpointChat), c.baseURL, req)
}

// --------------------------------------------------------------------
// Restaurants and reviews
// --------------------------------------------------------------------

// GetRestaurant fetches a restaurant's detail (synchronous).
func (c *Client) GetRestaurant(ctx context.Context, id ID) (*RestaurantDetail, error) {
	return api.GetRestaurant(ctx, c.instrumented(endpointRestaurant), c.baseURL, id)
}

// GetRestaurantAsync enqueues a detail fetch keyed by id and calls deliver
// from an executor goroutine when it resolves.
func (c *Client) GetRestaurantAsync(ctx context.Context, id ID, deliver func(*RestaurantDetail, error)) error {
	return api.GetRestaurantAsync(ctx, c.exec, c.instrumented(endpointRestaurant), c.baseURL, id, deliver)
}

// CreateReview posts a review (synchronous). Inspect the response's OK().
func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (*CreateReviewResponse, error) {
	return api.CreateReview(ctx, c.instrumented(endpointReviews), c.baseURL, req)
}

// CreateReviewAsync enqueues a review submission behind earlier traffic for
// the same restaurant and calls deliver when it resolves.
func (c *Client) CreateReviewAsync(ctx context.Context, req CreateReviewRequest, deliver func(*CreateReviewResponse, error)) error {
	return api.CreateReviewAsync(ctx, c.exec, c.instrumented(endpointReviews), c.baseURL, req, deliver)
}
