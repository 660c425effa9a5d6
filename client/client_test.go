package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetbites/guide/client/internal/shardqueue"
	"github.com/streetbites/guide/internal/backendtest"
)

type stubExec struct{ stops int }

func (s *stubExec) Submit(context.Context, string, shardqueue.Job) error { return nil }
func (s *stubExec) Barrier(context.Context, string) error                 { return nil }
func (s *stubExec) Stop()                                                 { s.stops++ }

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := New(baseURL, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New("   ")
	assert.ErrorIs(t, err, ErrEmptyBaseURL)

	c := newTestClient(t, "http://example.com/ ")
	assert.Equal(t, "http://example.com", c.BaseURL())

	_, err = New("http://example.com", WithHTTPTimeout(0))
	assert.Error(t, err)
}

func TestCloseIdempotent(t *testing.T) {
	s := &stubExec{}
	c := &Client{exec: s}
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, s.stops)
}

func TestIsBackPressure(t *testing.T) {
	assert.True(t, IsBackPressure(&shardqueue.QueueFullError{}))
	assert.False(t, IsBackPressure(errors.New("other")))
}

func TestChat_EndToEnd(t *testing.T) {
	be := backendtest.New(t)
	be.SetChat("Try Noodle Bar", backendtest.RestaurantRecord{ID: 1, Name: "Noodle Bar", City: "London"})
	c := newTestClient(t, be.URL)

	resp, err := c.Chat(context.Background(), ChatRequest{Query: "cheap ramen in London"})
	require.NoError(t, err)
	assert.Equal(t, "Try Noodle Bar", resp.Answer)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, ID("1"), resp.Results[0].ID)
	assert.Equal(t, []string{"cheap ramen in London"}, be.Queries())
}

func TestChat_ErrorCarriesStatus(t *testing.T) {
	be := backendtest.New(t)
	be.SetChatRaw(http.StatusServiceUnavailable, `{"detail":"busy"}`)
	c := newTestClient(t, be.URL)

	before := testutil.ToFloat64(requestsTotal.WithLabelValues(endpointChat, "http_error"))
	_, err := c.Chat(context.Background(), ChatRequest{Query: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	assert.True(t, IsRetryable(err))
	assert.Equal(t, before+1, testutil.ToFloat64(requestsTotal.WithLabelValues(endpointChat, "http_error")))
}

func TestRequestHeaders(t *testing.T) {
	var (
		mu  sync.Mutex
		ids []string
		uas []string
	)
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		mu.Lock()
		ids = append(ids, r.Header.Get("X-Request-ID"))
		uas = append(uas, r.Header.Get("User-Agent"))
		mu.Unlock()
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c := newTestClient(t, "http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithUserAgent("test-ua"))

	require.NoError(t, c.Seed(context.Background()))
	require.NoError(t, c.Seed(context.Background()))

	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
	assert.Equal(t, []string{"test-ua", "test-ua"}, uas)
}

func TestGetRestaurantAsync_DeliversOnExecutor(t *testing.T) {
	be := backendtest.New(t)
	be.SetReviews("5", backendtest.ReviewRecord{ID: 1, UserName: "kim", Rating: 5})
	c := newTestClient(t, be.URL)

	got := make(chan *RestaurantDetail, 1)
	require.NoError(t, c.GetRestaurantAsync(context.Background(), "5", func(d *RestaurantDetail, err error) {
		assert.NoError(t, err)
		got <- d
	}))

	select {
	case d := <-got:
		require.Len(t, d.Reviews, 1)
		assert.Equal(t, "kim", d.Reviews[0].UserName)
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never delivered")
	}
}

func TestCreateReviewThenRefetch_OrderedPerRestaurant(t *testing.T) {
	be := backendtest.New(t)
	be.SetReviews("8")
	c := newTestClient(t, be.URL)
	ctx := context.Background()

	release := be.Hold(backendtest.Reviews)
	var status string
	require.NoError(t, c.CreateReviewAsync(ctx, CreateReviewRequest{UserName: "lee", Rating: 4, RestaurantID: "8"}, func(r *CreateReviewResponse, err error) {
		if assert.NoError(t, err) {
			status = r.Status
		}
	}))
	var reviews []Review
	require.NoError(t, c.GetRestaurantAsync(ctx, "8", func(d *RestaurantDetail, err error) {
		if assert.NoError(t, err) {
			reviews = d.Reviews
		}
	}))

	// The fetch is queued behind the held submission on the same key.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, be.Calls(backendtest.Restaurant))
	release()

	require.NoError(t, c.AwaitRestaurant(ctx, "8"))
	assert.Equal(t, StatusOK, status)
	require.Len(t, reviews, 1)
	assert.Equal(t, "lee", reviews[0].UserName)
}

func TestSeedInBackground_RetriesThenSucceeds(t *testing.T) {
	be := backendtest.New(t)
	be.SetSeedStatus(http.StatusServiceUnavailable)
	c := newTestClient(t, be.URL, WithExecutorConfig(ExecutorConfig{
		Shards: 2, MaxAttempts: 5, BaseBackoff: 5 * time.Millisecond, MaxInterval: 20 * time.Millisecond,
	}))

	require.NoError(t, c.SeedInBackground(context.Background()))
	require.Eventually(t, func() bool { return be.Calls(backendtest.Seed) >= 2 }, 2*time.Second, 5*time.Millisecond)
	be.SetSeedStatus(http.StatusOK)
	require.NoError(t, c.exec.Barrier(context.Background(), "seed"))
	assert.GreaterOrEqual(t, be.Calls(backendtest.Seed), 2)
}

func TestAsyncAfterClose(t *testing.T) {
	c, err := New("http://example.com")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	err = c.GetRestaurantAsync(context.Background(), "1", func(*RestaurantDetail, error) {})
	assert.ErrorIs(t, err, ErrExecutorClosed)
}
