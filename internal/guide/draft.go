package guide

import (
	"fmt"
	"strconv"
)

// DefaultDraftRating is the rating a fresh draft starts with.
const DefaultDraftRating = 5

// DraftReview is the in-progress review form.
type DraftReview struct {
	UserName string
	Rating   int
	Comment  string
}

// NewDraft returns the empty form.
func NewDraft() DraftReview {
	return DraftReview{Rating: DefaultDraftRating}
}

// DraftField names one field of the form.
type DraftField int

const (
	FieldUserName DraftField = iota
	FieldRating
	FieldComment
)

func (f DraftField) String() string {
	switch f {
	case FieldUserName:
		return "user_name"
	case FieldRating:
		return "rating"
	case FieldComment:
		return "comment"
	default:
		return fmt.Sprintf("DraftField(%d)", int(f))
	}
}

// set assigns value to field. Values are not validated; the rating only
// has to parse as an integer.
func (d *DraftReview) set(field DraftField, value string) error {
	switch field {
	case FieldUserName:
		d.UserName = value
	case FieldRating:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("rating: %w", err)
		}
		d.Rating = n
	case FieldComment:
		d.Comment = value
	default:
		return fmt.Errorf("unknown draft field %s", field)
	}
	return nil
}
