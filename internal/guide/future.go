package guide

import (
	"context"
	"sync"

	"github.com/streetbites/guide/client"
)

// Completion is the resolved outcome of a service call, handed back to
// Orchestrator.Apply. It is one of *QueryResult, *ReviewsResult or
// *SubmitResult.
type Completion interface {
	completion()
}

// QueryResult resolves a chat query.
type QueryResult struct {
	Query    string
	Response *client.ChatResponse
	Err      error
}

// ReviewsResult resolves a review-list fetch for RestaurantID. Refresh is
// set for the refetch that follows a successful submission.
type ReviewsResult struct {
	RestaurantID client.ID
	Refresh      bool
	Detail       *client.RestaurantDetail
	Err          error
}

// SubmitResult resolves a review submission for RestaurantID.
type SubmitResult struct {
	RestaurantID client.ID
	Response     *client.CreateReviewResponse
	Err          error
}

func (*QueryResult) completion()   {}
func (*ReviewsResult) completion() {}
func (*SubmitResult) completion()  {}

// Future is a service call in flight. It resolves exactly once.
type Future struct {
	once sync.Once
	done chan struct{}
	c    Completion
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(c Completion) {
	f.once.Do(func() {
		f.c = c
		close(f.done)
	})
}

// Done is closed once the call has resolved.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the call resolves or ctx ends.
func (f *Future) Wait(ctx context.Context) (Completion, error) {
	select {
	case <-f.done:
		return f.c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the completion, or nil while the call is pending.
func (f *Future) Result() Completion {
	select {
	case <-f.done:
		return f.c
	default:
		return nil
	}
}
