package audit

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/healthtrack/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const writeTimeout = 3 * time.Second

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=audit_test
type entriesWriter interface {
	Add(ctx context.Context, entry *Entry) error
}

// Logger writes audit entries. A failing write is logged and counted, never returned.
type Logger struct {
	repo    entriesWriter
	metrics *metrics.Manager
}

func NewLogger(repo entriesWriter, metricsManager *metrics.Manager) *Logger {
	return &Logger{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (l *Logger) Log(r *http.Request, action string, details Details) {
	entry := NewEntry(r, action, details)

	// the entry outlives a canceled request
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), writeTimeout)
	defer cancel()

	if err := l.repo.Add(ctx, entry); err != nil {
		log.Errorf("audit log [%s]: %s", action, err)
		l.count("error")
		return
	}
	l.count("ok")
}

func (l *Logger) count(result string) {
	if l.metrics == nil {
		return
	}
	l.metrics.CounterAuditEntries.With(prometheus.Labels{"result": result}).Inc()
}
