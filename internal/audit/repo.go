package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository persists audit log entries in Postgres. Entries are
// append-only: there is no update or delete path.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new entry.
func (r *Repository) Insert(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, user_id, action, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.UserID, e.Action, e.IPAddress, e.UserAgent, e.Details, e.Timestamp)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT l.id, l.user_id, l.action, l.ip_address, l.user_agent, l.details, l.created_at,
	       u.id, u.name, u.email, u.role
	FROM audit_logs l
	LEFT JOIN users u ON u.id = l.user_id
`

// List returns the latest entries, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, selectColumns+`
		ORDER BY l.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// ListSuspicious returns the latest failed logins and rate-limit trips.
func (r *Repository) ListSuspicious(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+`
		WHERE l.action IN ($1, $2)
		ORDER BY l.created_at DESC
		LIMIT 50
	`, ActionFailedLogin, ActionSuspiciousActivity)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// ListByUser returns every entry attributed to the given user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+`
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var res []Entry
	for rows.Next() {
		var e Entry
		var actorID, actorName, actorEmail, actorRole sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.IPAddress, &e.UserAgent, &e.Details, &e.Timestamp,
			&actorID, &actorName, &actorEmail, &actorRole); err != nil {
			return nil, err
		}
		if actorID.Valid {
			e.Actor = &Actor{ID: actorID.String, Name: actorName.String, Email: actorEmail.String, Role: actorRole.String}
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
