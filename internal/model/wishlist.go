package model

import "time"

// WishlistCategory classifies community proposals
type WishlistCategory string

const (
	WishlistCategorySpace     WishlistCategory = "space"
	WishlistCategoryEquipment WishlistCategory = "equipment"
	WishlistCategoryProcess   WishlistCategory = "process"
	WishlistCategoryEvents    WishlistCategory = "events"
)

// ValidWishlistCategory reports whether c is a known wishlist category.
func ValidWishlistCategory(c WishlistCategory) bool {
	switch c {
	case WishlistCategorySpace, WishlistCategoryEquipment, WishlistCategoryProcess, WishlistCategoryEvents:
		return true
	}
	return false
}

// WishlistStatus is the review state of a proposal
type WishlistStatus string

const (
	WishlistStatusIdea       WishlistStatus = "idea"
	WishlistStatusReview     WishlistStatus = "review"
	WishlistStatusInProgress WishlistStatus = "in_progress"
	WishlistStatusDelivered  WishlistStatus = "delivered"
)

// ValidWishlistStatus reports whether s is a known wishlist status.
func ValidWishlistStatus(s WishlistStatus) bool {
	switch s {
	case WishlistStatusIdea, WishlistStatusReview, WishlistStatusInProgress, WishlistStatusDelivered:
		return true
	}
	return false
}

// WishlistItem represents a community proposal with toggle-voting.
//
// VotedUserIDs has set semantics: a user id appears at most once. A second
// vote from the same user removes the first.
type WishlistItem struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     WishlistCategory `json:"category"`
	VotedUserIDs []string         `json:"voted_user_ids"`
	Status       WishlistStatus   `json:"status"`
	AuthorID     string           `json:"author_id"`
	AuthorName   string           `json:"author_name"`
	Comments     []Comment        `json:"comments"`
	CreatedAt    time.Time        `json:"created_at"`
}

// HasVoted reports whether userID is present in the vote set.
func (w *WishlistItem) HasVoted(userID string) bool {
	for _, id := range w.VotedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
