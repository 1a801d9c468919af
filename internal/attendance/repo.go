package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"securecampus/internal/apperr"
	"securecampus/internal/store"
)

// Record is one check-in. At most one exists per user per calendar day,
// enforced by a unique index on (user_id, day).
type Record struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	CheckIn  time.Time `json:"check_in"`
	Location string    `json:"location,omitempty"`
	Attendee *Attendee `json:"user,omitempty"`
}

// Attendee is the joined user summary on admin-facing listings.
type Attendee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new record. The second insert for the same user and
// day loses the race at the database and comes back as
// apperr.ErrAlreadyCheckedIn.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CheckIn.IsZero() {
		rec.CheckIn = time.Now().UTC()
	}
	day := rec.CheckIn.UTC().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance (id, user_id, check_in, day, location)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.UserID, rec.CheckIn, day, rec.Location)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return Record{}, apperr.ErrAlreadyCheckedIn
		}
		return Record{}, fmt.Errorf("insert attendance: %w", err)
	}
	return rec, nil
}

// ListByUser returns the user's check-ins, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, check_in, location
		FROM attendance
		WHERE user_id = $1
		ORDER BY check_in DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CheckIn, &rec.Location); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// ListAll returns every check-in with the attendee joined, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.user_id, a.check_in, a.location, u.id, u.name, u.email, u.role
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.check_in DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		var att Attendee
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CheckIn, &rec.Location, &att.ID, &att.Name, &att.Email, &att.Role); err != nil {
			return nil, err
		}
		rec.Attendee = &att
		res = append(res, rec)
	}
	return res, rows.Err()
}
