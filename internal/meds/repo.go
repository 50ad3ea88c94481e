package meds

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const medicationColumns = `id, user_id, name, dosage, interval_hours, freq_type, time_of_day, days_of_week, notes, created_at`

// Reminder is a daily or weekly medication of a user who wants push notifications.
type Reminder struct {
	Medication
	Username        string
	PushoverUserKey string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, m *Medication) (_ *Medication, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meds.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", m.UserID))
	span.SetAttributes(attribute.String("freq_type", m.FreqType))

	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO medications
				(user_id, name, dosage, interval_hours, freq_type, time_of_day, days_of_week, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at;`,
		m.UserID, m.Name, m.Dosage, m.IntervalHours, m.FreqType, m.TimeOfDay, m.DaysOfWeek, m.Notes,
	).Scan(&m.ID, &m.CreatedAt); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("insert medication: %w", err)
	}

	span.SetAttributes(attribute.Int("medication.id", m.ID))
	return m, nil
}

// ListByUser returns the user's medications, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID int) (_ []Medication, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meds.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+medicationColumns+`
			FROM medications
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medications []Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		medications = append(medications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return medications, nil
}

// ListReminders returns daily and weekly medications of users having a pushover key.
func (r *Repo) ListReminders(ctx context.Context) (_ []Reminder, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meds.reminders")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT
				m.id, m.user_id, m.name, m.dosage, m.interval_hours, m.freq_type, m.time_of_day, m.days_of_week, m.notes, m.created_at,
				u.username, u.pushover_user_key
			FROM medications m
			JOIN users u ON u.id = m.user_id
			WHERE u.pushover_user_key IS NOT NULL AND u.pushover_user_key <> ''
				AND m.freq_type IN ('daily', 'weekly')
			ORDER BY m.user_id, m.id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(
			&rem.ID, &rem.UserID, &rem.Name, &rem.Dosage, &rem.IntervalHours, &rem.FreqType,
			&rem.TimeOfDay, &rem.DaysOfWeek, &rem.Notes, &rem.CreatedAt,
			&rem.Username, &rem.PushoverUserKey,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("reminders.count", len(reminders)))
	return reminders, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meds.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("medication.id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM medications WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMedicationNotFound
	}
	return nil
}

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrUnknownUser        = errors.New("unknown user")
)

func scanMedication(row pgx.Row) (Medication, error) {
	var m Medication
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.IntervalHours, &m.FreqType,
		&m.TimeOfDay, &m.DaysOfWeek, &m.Notes, &m.CreatedAt,
	)
	return m, err
}
