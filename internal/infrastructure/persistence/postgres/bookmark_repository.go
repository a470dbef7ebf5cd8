package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmarcinkow/bookmarkd/internal/application/ports"
	"github.com/tmarcinkow/bookmarkd/internal/domain"
)

type BookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepository(pool *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{pool: pool}
}

func (r *BookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	const query = `INSERT INTO bookmarks (id, user_id, title, description, link, created_at, updated_at)
	               VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		bookmark.ID.UUID, bookmark.UserID.UUID, bookmark.Title, bookmark.Description,
		bookmark.Link, bookmark.CreatedAt, bookmark.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) GetByID(ctx context.Context, id domain.BookmarkID) (*domain.Bookmark, error) {
	const query = `SELECT id, user_id, title, description, link, created_at, updated_at
	               FROM bookmarks WHERE id = $1`
	return scanBookmark(r.pool.QueryRow(ctx, query, id.UUID))
}

func (r *BookmarkRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Bookmark, error) {
	const query = `SELECT id, user_id, title, description, link, created_at, updated_at
	               FROM bookmarks WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, owner.UUID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()
	list := []*domain.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update applies only the non-nil patch fields. The WHERE clause re-asserts
// ownership so a bookmark deleted or never owned by owner updates nothing;
// that case is reported as (nil, nil).
func (r *BookmarkRepository) Update(ctx context.Context, id domain.BookmarkID, owner domain.UserID, patch domain.BookmarkPatch) (*domain.Bookmark, error) {
	const query = `UPDATE bookmarks
	               SET title = COALESCE($3, title),
	                   description = COALESCE($4, description),
	                   link = COALESCE($5, link),
	                   updated_at = NOW()
	               WHERE id = $1 AND user_id = $2
	               RETURNING id, user_id, title, description, link, created_at, updated_at`
	b, err := scanBookmark(r.pool.QueryRow(ctx, query,
		id.UUID, owner.UUID, patch.Title, patch.Description, patch.Link))
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id domain.BookmarkID, owner domain.UserID) (bool, error) {
	const query = `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id.UUID, owner.UUID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanBookmark(row pgx.Row) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := row.Scan(&b.ID.UUID, &b.UserID.UUID, &b.Title, &b.Description, &b.Link,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select bookmark: %w", err)
	}
	return &b, nil
}

var _ ports.BookmarkRepository = (*BookmarkRepository)(nil)
