package guide

import (
	"fmt"
	"strings"

	"github.com/streetbites/guide/client"
)

// ResultSet holds the restaurants of the most recent answer, in server order.
type ResultSet struct {
	items []client.Restaurant
}

// Replace discards the previous contents and installs list verbatim.
func (s *ResultSet) Replace(list []client.Restaurant) {
	s.items = append([]client.Restaurant(nil), list...)
}

// Clear empties the set.
func (s *ResultSet) Clear() { s.items = nil }

// Items returns a copy of the current list.
func (s *ResultSet) Items() []client.Restaurant {
	return append([]client.Restaurant(nil), s.items...)
}

func (s *ResultSet) Len() int { return len(s.items) }

// FallbackPhotoURL is shown for restaurants without a photo.
const FallbackPhotoURL = "https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?auto=format&fit=crop&w=1400&q=60"

const (
	maxCardCuisines = 3
	maxCardTags     = 2
	defaultPrice    = 2
	priceSymbol     = "$"
)

// Card is the display projection of a restaurant summary.
type Card struct {
	ID       client.ID `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Location string    `json:"location" yaml:"location"`
	PhotoURL string    `json:"photo_url" yaml:"photo_url"`
	Rating   string    `json:"rating" yaml:"rating"`
	// Badges are cuisines, then tags, then "takeaway", then the price.
	Badges []string `json:"badges" yaml:"badges"`
}

// CardOf projects r onto a Card.
func CardOf(r client.Restaurant) Card {
	c := Card{
		ID:       r.ID,
		Name:     r.Name,
		Location: joinNonEmpty(" • ", r.Address, r.City),
		PhotoURL: r.PhotoURL,
		Rating:   fmt.Sprintf("%.1f (%d)", r.RatingAverage, r.RatingCount),
	}
	if c.PhotoURL == "" {
		c.PhotoURL = FallbackPhotoURL
	}
	c.Badges = append(c.Badges, head(r.Cuisines, maxCardCuisines)...)
	c.Badges = append(c.Badges, head(r.Tags, maxCardTags)...)
	if r.Takeaway {
		c.Badges = append(c.Badges, "takeaway")
	}
	c.Badges = append(c.Badges, PriceTag(r.PriceLevel))
	return c
}

// PriceTag renders level as 1 to 4 money symbols; zero means 2.
func PriceTag(level int) string {
	if level == 0 {
		level = defaultPrice
	}
	level = min(4, max(1, level))
	return strings.Repeat(priceSymbol, level)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
