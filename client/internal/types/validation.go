package types

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/streetbites/guide/client/internal/shardqueue"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// Executor interface for dependency injection (used by async operations)
type Executor interface {
	Submit(context.Context, string, shardqueue.Job) error
}

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrMissingID is returned when a path-keyed call has no restaurant id.
var ErrMissingID = errors.New("restaurant id is required")

// ValidateIDPresent rejects blank ids before a request is built.
func ValidateIDPresent(id ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return ErrMissingID
	}
	return nil
}
