package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tmarcinkow/bookmarkd/internal/application/ports"
	"github.com/tmarcinkow/bookmarkd/internal/domain"
)

type BookmarkRepository struct {
	mu    sync.RWMutex
	byID  map[domain.BookmarkID]*domain.Bookmark
	order []domain.BookmarkID // insertion order for ListByOwner
}

func NewBookmarkRepository() *BookmarkRepository {
	return &BookmarkRepository{byID: make(map[domain.BookmarkID]*domain.Bookmark)}
}

func (r *BookmarkRepository) Create(_ context.Context, bookmark *domain.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := *bookmark
	r.byID[b.ID] = &b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *BookmarkRepository) GetByID(_ context.Context, id domain.BookmarkID) (*domain.Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (r *BookmarkRepository) ListByOwner(_ context.Context, owner domain.UserID) ([]*domain.Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := []*domain.Bookmark{}
	for _, id := range r.order {
		if b, ok := r.byID[id]; ok && b.UserID == owner {
			out := *b
			list = append(list, &out)
		}
	}
	return list, nil
}

func (r *BookmarkRepository) Update(_ context.Context, id domain.BookmarkID, owner domain.UserID, patch domain.BookmarkPatch) (*domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok || b.UserID != owner {
		return nil, nil
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Link != nil {
		b.Link = *patch.Link
	}
	b.UpdatedAt = time.Now()
	out := *b
	return &out, nil
}

func (r *BookmarkRepository) Delete(_ context.Context, id domain.BookmarkID, owner domain.UserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok || b.UserID != owner {
		return false, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

var _ ports.BookmarkRepository = (*BookmarkRepository)(nil)
