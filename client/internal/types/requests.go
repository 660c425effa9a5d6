package types

// ------------------------------
// Request Types
// ------------------------------

// ChatRequest carries a free-text query to the answer engine.
type ChatRequest struct {
	Query string `json:"query"`
}

// CreateReviewRequest holds parameters for a new review.
type CreateReviewRequest struct {
	UserName     string `json:"user_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	RestaurantID ID     `json:"restaurant_id"`
}
