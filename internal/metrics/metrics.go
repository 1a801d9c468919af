package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on /metrics. Audit write failures are counted rather
// than surfaced to callers: the write is fire-and-forget, so monitoring
// is the only place they show up.
var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecampus_login_attempts_total",
		Help: "Login attempts by result (success, failure, rate_limited).",
	}, []string{"result"})

	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securecampus_audit_write_failures_total",
		Help: "Audit log writes that failed and were dropped.",
	})

	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securecampus_attendance_checkins_total",
		Help: "Successful attendance check-ins.",
	})
)
