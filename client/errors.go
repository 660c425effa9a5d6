package client

import (
	"errors"

	clienterrors "github.com/streetbites/guide/client/internal/errors"
	"github.com/streetbites/guide/client/internal/shardqueue"
	"github.com/streetbites/guide/client/internal/types"
)

// ErrEmptyBaseURL is returned by New when no backend URL is configured.
var ErrEmptyBaseURL = errors.New("baseURL cannot be empty")

// ErrBackPressure is returned when the client's internal shard queue is full.
var ErrBackPressure = shardqueue.ErrQueueFull

// ErrExecutorClosed is returned by async calls after Close.
var ErrExecutorClosed = shardqueue.ErrExecutorClosed

// ErrMissingID is returned when a restaurant id is blank.
var ErrMissingID = types.ErrMissingID

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return clienterrors.StatusCode(err) }

// IsRetryable reports whether err is a transient backend failure.
func IsRetryable(err error) bool {
	var ce *clienterrors.ClassifiedError
	return errors.As(err, &ce) && ce.Category == clienterrors.Recoverable
}
