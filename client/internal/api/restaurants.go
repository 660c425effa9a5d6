package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/streetbites/guide/client/internal/job"
	"github.com/streetbites/guide/client/internal/types"
)

// GetRestaurant fetches one restaurant's detail, of which the client only
// uses the review list.
func GetRestaurant(ctx context.Context, httpClient HTTPClient, baseURL string, id types.ID) (*types.RestaurantDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(id); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/restaurants/%s", baseURL, url.PathEscape(id.String()))
	var detail types.RestaurantDetail
	if err := doJSON(ctx, httpClient, http.MethodGet, u, "get restaurant", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetRestaurantAsync enqueues GetRestaurant on the executor keyed by the
// restaurant id and hands the outcome to deliver. The fetch is not retried.
func GetRestaurantAsync(ctx context.Context, exec types.Executor, httpClient HTTPClient, baseURL string, id types.ID, deliver func(*types.RestaurantDetail, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(id); err != nil {
		return err
	}
	var detail *types.RestaurantDetail
	fetch := job.Detached(func(jobCtx context.Context) error {
		var err error
		detail, err = GetRestaurant(jobCtx, httpClient, baseURL, id)
		return err
	}, func(err error) { deliver(detail, err) })
	return exec.Submit(ctx, id.String(), fetch)
}
