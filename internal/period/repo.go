package period

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/healthtrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, userID int, startDate time.Time, cycleLength int) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.period.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	l := &Log{
		UserID:      userID,
		StartDate:   startDate,
		CycleLength: &cycleLength,
	}
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO period_logs (user_id, start_date, cycle_length)
			VALUES ($1, $2, $3)
			RETURNING id, created_at;`,
		userID, startDate, cycleLength,
	).Scan(&l.ID, &l.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert period log: %w", err)
	}
	return l, nil
}

// Latest returns up to limit logs of the user, most recent start date first.
func (r *Repo) Latest(ctx context.Context, userID, limit int) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.period.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, start_date, cycle_length, created_at
			FROM period_logs
			WHERE user_id = $1
			ORDER BY start_date DESC, id DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.UserID, &l.StartDate, &l.CycleLength, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
