package api

import (
	"context"
	"sync"

	"github.com/streetbites/guide/client/internal/shardqueue"
)

// mockExec runs submitted jobs inline and records their keys.
type mockExec struct {
	mu    sync.Mutex
	calls []string
	errs  []error
	fail  error
}

func (m *mockExec) Submit(ctx context.Context, key string, j shardqueue.Job) error {
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.mu.Unlock()
	err := j.Run(ctx)
	m.mu.Lock()
	m.errs = append(m.errs, err)
	m.mu.Unlock()
	return nil
}
