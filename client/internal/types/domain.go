package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// ID is a server-assigned identifier. The backend may send it as a JSON
// number or a JSON string; the client treats it as opaque text.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits ids in canonical decimal form ("7", "-3") as numbers and
// everything else, including "007" and "+5", as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Restaurant is the summary record returned by a chat answer.
type Restaurant struct {
	ID            ID       `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	PhotoURL      string   `json:"photo_url,omitempty"`
	Cuisines      []string `json:"cuisine"`
	Tags          []string `json:"tags"`
	Takeaway      bool     `json:"takeaway"`
	PriceLevel    int      `json:"price_level"`
	RatingAverage float64  `json:"rating_avg"`
	RatingCount   int      `json:"rating_count"`
}

// Review belongs to exactly one restaurant.
type Review struct {
	ID       ID     `json:"id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}
