package entities

import (
	"strings"

	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// Review is a user's rating of a place. Both references are immutable
// after creation; a user holds at most one review per place.
type Review struct {
	Entity
	Text    string `json:"text" db:"text"`
	Rating  int    `json:"rating" db:"rating"`
	PlaceID string `json:"place_id" db:"place_id"`
	UserID  string `json:"user_id" db:"user_id"`
}

// ReviewSummary is the outward review representation embedded in place details.
type ReviewSummary struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	UserID string `json:"user_id"`
}

// NewReview constructs a validated review. Field checks run in the
// canonical order (text, then rating); resolving the referenced place
// and user is the caller's concern.
func NewReview(text string, rating int, placeID, userID string) (*Review, error) {
	r := &Review{
		Entity:  NewEntity(),
		Text:    strings.TrimSpace(text),
		Rating:  rating,
		PlaceID: placeID,
		UserID:  userID,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate enforces the review field invariants in canonical order.
func (r Review) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return apperrors.NewValidationError("text must not be blank")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if r.PlaceID == "" {
		return apperrors.NewValidationError("place_id is required")
	}
	if r.UserID == "" {
		return apperrors.NewValidationError("user_id is required")
	}
	return nil
}

// SetContent applies a text/rating change, all-or-nothing.
func (r *Review) SetContent(text string, rating int) error {
	next := *r
	next.Text = strings.TrimSpace(text)
	next.Rating = rating
	if err := next.Validate(); err != nil {
		return err
	}
	*r = next
	return nil
}

// Summary returns the outward review fields.
func (r *Review) Summary() ReviewSummary {
	return ReviewSummary{ID: r.ID, Text: r.Text, Rating: r.Rating, UserID: r.UserID}
}
