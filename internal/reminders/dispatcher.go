package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/healthtrack/internal/meds"
	"github.com/2beens/healthtrack/internal/telemetry/metrics"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// Window is how far ahead of a dose a reminder is sent; the dispatcher runs once per Window.
	Window = time.Minute

	sentKeyTTL  = 48 * time.Hour
	sentKeyBase = "reminder||"
	title       = "Medication reminder"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=reminders_test
type remindersRepo interface {
	ListReminders(ctx context.Context) ([]meds.Reminder, error)
}

type notifier interface {
	Notify(userKey, title, message string) error
}

// Dispatcher sends a push notification for every daily or weekly dose due within the next Window.
type Dispatcher struct {
	repo           remindersRepo
	notifier       notifier
	redisClient    *redis.Client
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewDispatcher(
	repo remindersRepo,
	notifier notifier,
	redisClient *redis.Client,
	metricsManager *metrics.Manager,
) *Dispatcher {
	return &Dispatcher{
		repo:           repo,
		notifier:       notifier,
		redisClient:    redisClient,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// SentKey identifies one dose of one medication, so each dose is announced once
// even when several instances run the dispatcher.
func SentKey(medicationID int, due time.Time) string {
	return fmt.Sprintf("%s%d||%d", sentKeyBase, medicationID, due.Unix())
}

// Run checks all reminders once and returns the number of notifications sent.
func (d *Dispatcher) Run(ctx context.Context) (sent int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "reminders.run")
	defer func() {
		span.SetAttributes(attribute.Int("reminders.sent", sent))
		tracing.EndSpanWithErrCheck(span, err)
	}()

	reminders, err := d.repo.ListReminders(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reminders: %w", err)
	}

	now := d.now()
	for _, rem := range reminders {
		due, ok := dueWithinWindow(rem.Medication, now)
		if !ok {
			continue
		}

		first, err := d.redisClient.SetNX(ctx, SentKey(rem.ID, due), rem.UserID, sentKeyTTL).Result()
		if err != nil {
			log.Errorf("reminders, mark dose %d sent: %s", rem.ID, err)
			d.metricsManager.CounterDoseReminders.WithLabelValues("error").Inc()
			continue
		}
		if !first {
			d.metricsManager.CounterDoseReminders.WithLabelValues("duplicate").Inc()
			continue
		}

		if err := d.notifier.Notify(rem.PushoverUserKey, title, message(rem.Medication, due)); err != nil {
			log.Errorf("reminders, notify user %s about medication %d: %s", rem.Username, rem.ID, err)
			d.metricsManager.CounterDoseReminders.WithLabelValues("failed").Inc()
			continue
		}

		log.Debugf("reminder sent to %s for medication %d due at %s", rem.Username, rem.ID, due.Format(time.RFC3339))
		d.metricsManager.CounterDoseReminders.WithLabelValues("sent").Inc()
		sent++
	}

	return sent, nil
}

// dueWithinWindow returns the next dose when it falls within (now, now+Window].
// Interval medications are anchored on the instant they are read, so they never have a fixed dose to announce.
func dueWithinWindow(m meds.Medication, now time.Time) (time.Time, bool) {
	rule, err := meds.RuleFromRow(m)
	if err != nil {
		log.Warnf("reminders, medication %d: %s", m.ID, err)
		return time.Time{}, false
	}
	if rule.FreqType() == meds.FreqInterval {
		return time.Time{}, false
	}

	projection := meds.Project(rule, now)
	if projection.NextDue == nil || projection.NextDue.After(now.Add(Window)) {
		return time.Time{}, false
	}
	return *projection.NextDue, true
}

func message(m meds.Medication, due time.Time) string {
	msg := fmt.Sprintf("Time to take %s", m.Name)
	if m.Dosage != nil && *m.Dosage != "" {
		msg += fmt.Sprintf(" (%s)", *m.Dosage)
	}
	return msg + " at " + due.Format("15:04")
}
