// Package policy holds the stateless authorization predicates. Each
// predicate takes the authenticated principal and the target and answers
// allow/deny; nothing here touches transport or storage.
package policy

import (
	"github.com/nohlan/stayhub/internal/domain/entities"
)

// Principal is the authenticated actor performing an operation. The
// credential resolver at the HTTP boundary produces it; the domain
// trusts it verbatim.
type Principal struct {
	ID      string
	IsAdmin bool
}

// CanManageAmenity allows amenity create/update/delete for admins only.
func CanManageAmenity(p Principal) bool {
	return p.IsAdmin
}

// CanModifyUser allows a user to modify themselves, and admins anyone.
func CanModifyUser(p Principal, targetUserID string) bool {
	return p.ID == targetUserID || p.IsAdmin
}

// CanModifyPlace allows only the owner to modify a place.
func CanModifyPlace(p Principal, place *entities.Place) bool {
	return p.ID == place.OwnerID
}

// CanDeletePlace allows the owner or an admin to delete a place.
func CanDeletePlace(p Principal, place *entities.Place) bool {
	return p.ID == place.OwnerID || p.IsAdmin
}

// CanReviewPlace denies owners reviewing their own place. The
// one-review-per-user half of the invariant is enforced by the review
// repository's conditional insert, where the race can actually be closed.
func CanReviewPlace(p Principal, place *entities.Place) bool {
	return p.ID != place.OwnerID
}

// CanModifyReview allows the review's author or an admin.
func CanModifyReview(p Principal, review *entities.Review) bool {
	return p.ID == review.UserID || p.IsAdmin
}
