package guide

import (
	"context"
	"sync"

	"github.com/streetbites/guide/client"
)

type chatReply struct {
	resp *client.ChatResponse
	err  error
}

type fetchCall struct {
	id      client.ID
	deliver func(*client.RestaurantDetail, error)
}

type submitCall struct {
	req     client.CreateReviewRequest
	deliver func(*client.CreateReviewResponse, error)
}

// fakeBackend answers chats from a table and parks async calls until the
// test delivers them, so resolution order is under test control.
type fakeBackend struct {
	mu        sync.Mutex
	queries   []string
	replies   map[string]chatReply
	gates     map[string]chan struct{}
	fetches   []fetchCall
	submits   []submitCall
	enqueuErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		replies: make(map[string]chatReply),
		gates:   make(map[string]chan struct{}),
	}
}

func (f *fakeBackend) reply(query string, resp *client.ChatResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[query] = chatReply{resp: resp, err: err}
}

// gate makes the chat for query block until the returned func is called.
func (f *fakeBackend) gate(query string) func() {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[query] = ch
	f.mu.Unlock()
	return func() { close(ch) }
}

func (f *fakeBackend) Chat(ctx context.Context, req client.ChatRequest) (*client.ChatResponse, error) {
	f.mu.Lock()
	f.queries = append(f.queries, req.Query)
	reply := f.replies[req.Query]
	gate := f.gates[req.Query]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return reply.resp, reply.err
}

func (f *fakeBackend) GetRestaurantAsync(ctx context.Context, id client.ID, deliver func(*client.RestaurantDetail, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enqueuErr != nil {
		return f.enqueuErr
	}
	f.fetches = append(f.fetches, fetchCall{id: id, deliver: deliver})
	return nil
}

func (f *fakeBackend) CreateReviewAsync(ctx context.Context, req client.CreateReviewRequest, deliver func(*client.CreateReviewResponse, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enqueuErr != nil {
		return f.enqueuErr
	}
	f.submits = append(f.submits, submitCall{req: req, deliver: deliver})
	return nil
}

func (f *fakeBackend) fetch(i int) fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[i]
}

func (f *fakeBackend) submit(i int) submitCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits[i]
}

func (f *fakeBackend) counts() (queries, fetches, submits int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries), len(f.fetches), len(f.submits)
}
