package announcement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"securecampus/internal/apperr"
)

// Announcement is a campus-wide notice.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository persists announcements in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new announcement.
func (r *Repository) Create(ctx context.Context, title, content string) (Announcement, error) {
	a := Announcement{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	a.UpdatedAt = a.CreatedAt
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO announcements (id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Title, a.Content, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

// List returns every announcement, newest first.
func (r *Repository) List(ctx context.Context) ([]Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM announcements
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// Get returns a single announcement by id.
func (r *Repository) Get(ctx context.Context, id string) (Announcement, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM announcements
		WHERE id = $1
	`, id)
	var a Announcement
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Announcement{}, apperr.ErrNotFound
		}
		return Announcement{}, err
	}
	return a, nil
}

// Update changes title and/or content. Empty fields keep their value.
func (r *Repository) Update(ctx context.Context, id string, title, content *string) (Announcement, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE announcements
		SET title = COALESCE($2, title),
		    content = COALESCE($3, content),
		    updated_at = NOW()
		WHERE id = $1
	`, id, title, content)
	if err != nil {
		return Announcement{}, fmt.Errorf("update announcement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Announcement{}, err
	}
	if affected == 0 {
		return Announcement{}, apperr.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes an announcement.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
