package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/streetbites/guide/client/internal/types"
)

// Chat sends a free-text query to the answer engine.
func Chat(ctx context.Context, httpClient HTTPClient, baseURL string, req types.ChatRequest) (*types.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/chat", baseURL)
	var cr types.ChatResponse
	if err := doJSON(ctx, httpClient, http.MethodPost, url, "chat", req, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}
