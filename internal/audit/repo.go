package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/healthtrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const LatestLimit = 200

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry *Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("action", entry.Action))

	var details any
	if len(entry.Details) > 0 {
		details = string(entry.Details)
	}

	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO audit_logs (user_id, action, details, ip, user_agent, request_id)
			VALUES ($1, $2, $3::jsonb, $4, $5, $6)
			RETURNING id, created_at;`,
		entry.UserID, entry.Action, details, entry.IP, entry.UserAgent, entry.RequestID,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

// Latest returns the newest entries joined with usernames.
func (r *Repo) Latest(ctx context.Context, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 || limit > LatestLimit {
		limit = LatestLimit
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT a.id, a.user_id, u.username, a.action, a.details, a.ip, a.user_agent, a.request_id, a.created_at
			FROM audit_logs a
			LEFT JOIN users u ON u.id = a.user_id
			ORDER BY a.created_at DESC, a.id DESC
			LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, err
	}

	return collectEntries(rows)
}

// ListSince returns entries created after since, oldest first. A nil since returns all of them.
func (r *Repo) ListSince(ctx context.Context, since *time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.since")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from := time.Time{}
	if since != nil {
		from = *since
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT a.id, a.user_id, u.username, a.action, a.details, a.ip, a.user_agent, a.request_id, a.created_at
			FROM audit_logs a
			LEFT JOIN users u ON u.id = a.user_id
			WHERE a.created_at > $1
			ORDER BY a.created_at ASC, a.id ASC;`,
		from,
	)
	if err != nil {
		return nil, err
	}

	return collectEntries(rows)
}

// DeleteOlderThan removes entries created before the given instant.
func (r *Repo) DeleteOlderThan(ctx context.Context, before time.Time) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.retention")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM audit_logs WHERE created_at < $1;`, before)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("deleted", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var details []byte
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Username, &e.Action, &details,
			&e.IP, &e.UserAgent, &e.RequestID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if len(details) > 0 {
			e.Details = details
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
