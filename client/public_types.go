package client

import (
	"github.com/streetbites/guide/client/internal/shardqueue"
	"github.com/streetbites/guide/client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	ChatRequest         = types.ChatRequest
	CreateReviewRequest = types.CreateReviewRequest

	// Domain entities
	ID         = types.ID
	Restaurant = types.Restaurant
	Review     = types.Review

	// Responses
	ChatResponse         = types.ChatResponse
	RestaurantDetail     = types.RestaurantDetail
	CreateReviewResponse = types.CreateReviewResponse
)

// StatusOK is the create-review status that signals success.
const StatusOK = types.StatusOK

// ExecutorConfig tunes the background executor; see WithExecutorConfig.
type ExecutorConfig = shardqueue.Config

// LoadExecutorConfig reads ExecutorConfig from SQ_* environment variables.
func LoadExecutorConfig() (ExecutorConfig, error) { return shardqueue.LoadConfig() }
