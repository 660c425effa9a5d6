package guide

import "github.com/streetbites/guide/client"

// DetailSession is the state of the open restaurant view. At most one is
// open at a time; restaurant is non-nil whenever open is true.
type DetailSession struct {
	open       bool
	restaurant *client.Restaurant
	reviews    []client.Review
	loading    bool
	draft      DraftReview
}

func newDetailSession() DetailSession {
	return DetailSession{draft: NewDraft()}
}

func (d *DetailSession) openFor(r client.Restaurant) {
	d.open = true
	d.restaurant = &r
	d.reviews = nil
	d.loading = true
}

// close hides the view. Restaurant and reviews stay behind inertly so a
// late fetch has something to compare against, but nothing reopens it.
func (d *DetailSession) close() {
	d.open = false
}

// isShowing reports whether id is the restaurant currently open.
func (d *DetailSession) isShowing(id client.ID) bool {
	return d.open && d.restaurant != nil && d.restaurant.ID == id
}

// DetailState is a read-only copy of the detail session.
type DetailState struct {
	Open           bool
	Restaurant     *client.Restaurant
	Reviews        []client.Review
	LoadingReviews bool
	Draft          DraftReview
}

func (d *DetailSession) state() DetailState {
	s := DetailState{
		Open:           d.open,
		Reviews:        append([]client.Review(nil), d.reviews...),
		LoadingReviews: d.loading,
		Draft:          d.draft,
	}
	if d.open && d.restaurant != nil {
		r := *d.restaurant
		s.Restaurant = &r
	}
	return s
}
