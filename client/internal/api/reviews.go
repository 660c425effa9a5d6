package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/streetbites/guide/client/internal/job"
	"github.com/streetbites/guide/client/internal/types"
)

// CreateReview posts a review. A missing or non-"ok" status is not an error
// at this layer; callers inspect the response.
func CreateReview(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateReviewRequest) (*types.CreateReviewResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(req.RestaurantID); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/reviews", baseURL)
	var cr types.CreateReviewResponse
	if err := doJSON(ctx, httpClient, http.MethodPost, url, "create review", req, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// CreateReviewAsync enqueues CreateReview on the executor keyed by the
// target restaurant id, behind any earlier traffic for that restaurant.
// Creation is never retried so a review cannot be posted twice.
func CreateReviewAsync(ctx context.Context, exec types.Executor, httpClient HTTPClient, baseURL string, req types.CreateReviewRequest, deliver func(*types.CreateReviewResponse, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(req.RestaurantID); err != nil {
		return err
	}
	var resp *types.CreateReviewResponse
	create := job.Detached(func(jobCtx context.Context) error {
		var err error
		resp, err = CreateReview(jobCtx, httpClient, baseURL, req)
		return err
	}, func(err error) { deliver(resp, err) })
	return exec.Submit(ctx, req.RestaurantID.String(), create)
}
