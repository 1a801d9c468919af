package attendance

import (
	"context"
	"time"

	"securecampus/internal/audit"
	"securecampus/internal/metrics"
)

// Store is the slice of the repository the service needs.
type Store interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)
}

// EventRecorder appends audit entries; writes never fail the caller.
type EventRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

// Service coordinates check-ins and their audit trail.
type Service struct {
	store  Store
	events EventRecorder
	now    func() time.Time
}

// NewService creates a service backed by a store.
func NewService(store Store, events EventRecorder) *Service {
	return &Service{store: store, events: events, now: time.Now}
}

// CheckIn records today's attendance for the user. The one-per-day rule
// is enforced by the store.
func (s *Service) CheckIn(ctx context.Context, userID, location string, meta audit.Meta) (Record, error) {
	rec, err := s.store.Insert(ctx, Record{
		UserID:   userID,
		CheckIn:  s.now().UTC(),
		Location: location,
	})
	if err != nil {
		return Record{}, err
	}

	metrics.CheckIns.Inc()
	place := location
	if place == "" {
		place = "campus"
	}
	s.events.Record(ctx, audit.Entry{
		UserID:    &userID,
		Action:    audit.ActionAttendanceChecked,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   "Check-in at " + place,
	})
	return rec, nil
}

// History returns the user's own check-ins.
func (s *Service) History(ctx context.Context, userID string) ([]Record, error) {
	return s.store.ListByUser(ctx, userID)
}

// All returns every check-in, admin view.
func (s *Service) All(ctx context.Context) ([]Record, error) {
	return s.store.ListAll(ctx)
}
