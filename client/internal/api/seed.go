package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/streetbites/guide/client/internal/job"
	"github.com/streetbites/guide/client/internal/types"
)

// SeedKey is the executor key seed jobs are serialised on.
const SeedKey = "seed"

// Seed asks the backend to populate its demo data. The response body is
// ignored; the call is safe to repeat.
func Seed(ctx context.Context, httpClient HTTPClient, baseURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/seed", baseURL)
	return doJSON(ctx, httpClient, http.MethodPost, url, "seed", nil, nil)
}

// SeedInBackground enqueues Seed on the executor. The job returns its error
// to the executor, so recoverable failures are retried with backoff and the
// final failure reaches the executor's error handler.
func SeedInBackground(ctx context.Context, exec types.Executor, httpClient HTTPClient, baseURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return exec.Submit(ctx, SeedKey, job.New(func(jobCtx context.Context) error {
		return Seed(jobCtx, httpClient, baseURL)
	}))
}
