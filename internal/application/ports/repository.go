package ports

import (
	"context"

	"github.com/tmarcinkow/bookmarkd/internal/domain"
)

// UserRepository defines persistence for users. Create returns
// domain/errors.ErrDuplicateEmail when the unique email constraint fires.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}

// BookmarkRepository defines persistence for bookmarks. Lookups return
// (nil, nil) when no row matches; Update and Delete assert ownership in the
// same statement as the write.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *domain.Bookmark) error
	GetByID(ctx context.Context, id domain.BookmarkID) (*domain.Bookmark, error)
	ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Bookmark, error)
	Update(ctx context.Context, id domain.BookmarkID, owner domain.UserID, patch domain.BookmarkPatch) (*domain.Bookmark, error)
	Delete(ctx context.Context, id domain.BookmarkID, owner domain.UserID) (bool, error)
}
