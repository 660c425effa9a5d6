package types

// ------------------------------
// Response Types
// ------------------------------

// StatusOK is the only create-review status that counts as success.
const StatusOK = "ok"

// ChatResponse wraps the /api/chat result. Both fields may be omitted.
type ChatResponse struct {
	Answer  string       `json:"answer,omitempty"`
	Results []Restaurant `json:"results,omitempty"`
}

// RestaurantDetail wraps the /api/restaurants/{id} result. Only reviews are
// consumed by the client.
type RestaurantDetail struct {
	Reviews []Review `json:"reviews,omitempty"`
}

// CreateReviewResponse wraps the /api/reviews result.
type CreateReviewResponse struct {
	Status string `json:"status,omitempty"`
}

// OK reports whether the backend accepted the review.
func (r *CreateReviewResponse) OK() bool { return r != nil && r.Status == StatusOK }
