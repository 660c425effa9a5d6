package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streetbites/guide/client"
)

func TestResultSet_Replace(t *testing.T) {
	var s ResultSet
	s.Replace([]client.Restaurant{ramen, tacos})
	s.Replace([]client.Restaurant{vegan})
	assert.Equal(t, []client.Restaurant{vegan}, s.Items())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestCardOf(t *testing.T) {
	r := client.Restaurant{
		ID:            "7",
		Name:          "Ramen Ya",
		Address:       "1 High St",
		City:          "London",
		Cuisines:      []string{"ramen", "japanese", "noodles", "soup"},
		Tags:          []string{"cheap", "late-night", "cozy"},
		Takeaway:      true,
		PriceLevel:    1,
		RatingAverage: 4.26,
		RatingCount:   12,
	}
	c := CardOf(r)
	assert.Equal(t, client.ID("7"), c.ID)
	assert.Equal(t, "1 High St • London", c.Location)
	assert.Equal(t, FallbackPhotoURL, c.PhotoURL)
	assert.Equal(t, "4.3 (12)", c.Rating)
	assert.Equal(t, []string{"ramen", "japanese", "noodles", "cheap", "late-night", "takeaway", "$"}, c.Badges)

	r.PhotoURL = "https://example.com/p.jpg"
	r.Takeaway = false
	r.Cuisines, r.Tags = nil, nil
	c = CardOf(r)
	assert.Equal(t, "https://example.com/p.jpg", c.PhotoURL)
	assert.Equal(t, []string{"$"}, c.Badges)
}

func TestPriceTag(t *testing.T) {
	for level, want := range map[int]string{0: "$$", 1: "$", 3: "$$$", 4: "$$$$", 9: "$$$$", -2: "$"} {
		assert.Equal(t, want, PriceTag(level), "level %d", level)
	}
}
