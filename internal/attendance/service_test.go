package attendance_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securecampus/internal/apperr"
	"securecampus/internal/attendance"
	"securecampus/internal/audit"
)

// fakeStore enforces the one-per-day rule the way the real schema does.
type fakeStore struct {
	mu      sync.Mutex
	records []attendance.Record
}

func dayKey(ts time.Time) string {
	return ts.UTC().Format("2006-01-02")
}

func (s *fakeStore) Insert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if existing.UserID == rec.UserID && dayKey(existing.CheckIn) == dayKey(rec.CheckIn) {
			return attendance.Record{}, apperr.ErrAlreadyCheckedIn
		}
	}
	rec.ID = uuid.NewString()
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID string) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []attendance.Record
	for _, rec := range s.records {
		if rec.UserID == userID {
			res = append(res, rec)
		}
	}
	return res, nil
}

func (s *fakeStore) ListAll(_ context.Context) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]attendance.Record(nil), s.records...), nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *fakeRecorder) Record(_ context.Context, e audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

var meta = audit.Meta{IPAddress: "127.0.0.1", UserAgent: "test-agent"}

func TestCheckIn_OncePerDay(t *testing.T) {
	store := &fakeStore{}
	events := &fakeRecorder{}
	svc := attendance.NewService(store, events)
	ctx := context.Background()

	rec, err := svc.CheckIn(ctx, "user-1", "Library", meta)
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, "Library", rec.Location)

	_, err = svc.CheckIn(ctx, "user-1", "Library", meta)
	assert.ErrorIs(t, err, apperr.ErrAlreadyCheckedIn)

	// Only the successful check-in produced an audit entry.
	require.Len(t, events.entries, 1)
	assert.Equal(t, audit.ActionAttendanceChecked, events.entries[0].Action)
	assert.Equal(t, "Check-in at Library", events.entries[0].Details)
	require.NotNil(t, events.entries[0].UserID)
	assert.Equal(t, "user-1", *events.entries[0].UserID)
}

func TestCheckIn_OtherUserUnaffected(t *testing.T) {
	store := &fakeStore{}
	svc := attendance.NewService(store, &fakeRecorder{})
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "user-1", "", meta)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, "user-2", "", meta)
	require.NoError(t, err)
}

func TestCheckIn_DefaultLocationInAudit(t *testing.T) {
	store := &fakeStore{}
	events := &fakeRecorder{}
	svc := attendance.NewService(store, events)

	_, err := svc.CheckIn(context.Background(), "user-1", "", meta)
	require.NoError(t, err)
	require.Len(t, events.entries, 1)
	assert.Equal(t, "Check-in at campus", events.entries[0].Details)
}

func TestHistory_ReturnsOwnRecordsOnly(t *testing.T) {
	store := &fakeStore{}
	svc := attendance.NewService(store, &fakeRecorder{})
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "user-1", "", meta)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, "user-2", "", meta)
	require.NoError(t, err)

	recs, err := svc.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "user-1", recs[0].UserID)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
