// Package bookmark implements CRUD over a user's bookmarks. Every mutation
// and read by id is gated on the authenticated owner.
package bookmark

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tmarcinkow/bookmarkd/internal/application/ports"
	"github.com/tmarcinkow/bookmarkd/internal/domain"
	domerrors "github.com/tmarcinkow/bookmarkd/internal/domain/errors"
)

type CreateInput struct {
	Title       string
	Description string
	Link        string
}

type Service struct {
	bookmarks ports.BookmarkRepository
}

func NewService(bookmarks ports.BookmarkRepository) *Service {
	return &Service{bookmarks: bookmarks}
}

// List returns all bookmarks owned by owner in insertion order.
func (s *Service) List(ctx context.Context, owner domain.UserID) ([]*domain.Bookmark, error) {
	return s.bookmarks.ListByOwner(ctx, owner)
}

// GetByID returns the bookmark when it exists and belongs to owner. Absent
// and foreign bookmarks are both reported as not found so reads cannot probe
// for other users' ids.
func (s *Service) GetByID(ctx context.Context, owner domain.UserID, id domain.BookmarkID) (*domain.Bookmark, error) {
	b, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != owner {
		return nil, domerrors.ErrBookmarkNotFound
	}
	return b, nil
}

// Create persists a new bookmark owned by owner.
func (s *Service) Create(ctx context.Context, owner domain.UserID, input CreateInput) (*domain.Bookmark, error) {
	now := time.Now()
	b := &domain.Bookmark{
		ID:          domain.NewBookmarkID(uuid.New()),
		UserID:      owner,
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Edit merges the provided fields into an owned bookmark. Not-found and
// not-owner are deliberately conflated into ErrAccessDenied.
func (s *Service) Edit(ctx context.Context, owner domain.UserID, id domain.BookmarkID, patch domain.BookmarkPatch) (*domain.Bookmark, error) {
	if err := s.authorize(ctx, owner, id); err != nil {
		return nil, err
	}
	// The guard and the update are separate statements; the update re-asserts
	// ownership, so losing the race reports ErrAccessDenied instead of acting
	// on a row that vanished.
	updated, err := s.bookmarks.Update(ctx, id, owner, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domerrors.ErrAccessDenied
	}
	return updated, nil
}

// Delete removes an owned bookmark. Deleting an absent or foreign id yields
// the same ErrAccessDenied.
func (s *Service) Delete(ctx context.Context, owner domain.UserID, id domain.BookmarkID) error {
	if err := s.authorize(ctx, owner, id); err != nil {
		return err
	}
	deleted, err := s.bookmarks.Delete(ctx, id, owner)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrAccessDenied
	}
	return nil
}

// authorize fetches the bookmark and checks it belongs to owner before any
// mutation.
func (s *Service) authorize(ctx context.Context, owner domain.UserID, id domain.BookmarkID) error {
	b, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil || b.UserID != owner {
		return domerrors.ErrAccessDenied
	}
	return nil
}
