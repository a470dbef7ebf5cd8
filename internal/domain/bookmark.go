package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookmarkID is a value object for bookmark identity.
type BookmarkID struct{ uuid.UUID }

// NewBookmarkID creates a new BookmarkID from uuid.
func NewBookmarkID(id uuid.UUID) BookmarkID { return BookmarkID{UUID: id} }

// ParseBookmarkID parses the canonical string form.
func ParseBookmarkID(s string) (BookmarkID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return BookmarkID{}, err
	}
	return BookmarkID{UUID: id}, nil
}

// String returns the canonical string form.
func (b BookmarkID) String() string { return b.UUID.String() }

// Bookmark is a saved link owned by exactly one user. UserID is set on
// creation and never changes.
type Bookmark struct {
	ID          BookmarkID
	UserID      UserID
	Title       string
	Description string
	Link        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookmarkPatch carries a partial update. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	Description *string
	Link        *string
}
