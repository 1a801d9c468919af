package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"securecampus/internal/metrics"
)

// Inserter is the write side of the audit store.
type Inserter interface {
	Insert(ctx context.Context, e Entry) error
}

// Recorder writes audit entries with fire-and-forget semantics: a failed
// write must never fail the operation that triggered it. Failures are
// logged and counted for operational monitoring instead.
type Recorder struct {
	store Inserter
	now   func() time.Time
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(store Inserter) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// Record fills in id and timestamp and appends the entry.
func (rec *Recorder) Record(ctx context.Context, e Entry) {
	e.ID = uuid.NewString()
	e.Timestamp = rec.now().UTC()
	if err := rec.store.Insert(ctx, e); err != nil {
		metrics.AuditWriteFailures.Inc()
		log.Printf("audit write failed (action=%s): %v", e.Action, err)
	}
}
