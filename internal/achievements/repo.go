package achievements

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/internal/trends"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const achievementColumns = `id, user_id, title, category, metric, amount, notes, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, a *Achievement) (_ *Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", a.UserID))

	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO achievements
				(user_id, title, category, metric, amount, notes)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at;`,
		a.UserID, a.Title, a.Category, a.Metric, a.Amount, a.Notes,
	).Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert achievement: %w", err)
	}

	span.SetAttributes(attribute.Int("achievement.id", a.ID))
	return a, nil
}

// List returns a page of the filtered achievements, newest first, and the total count of the filter.
func (r *Repo) List(ctx context.Context, filter Filter, paging Paging) (_ []Achievement, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", filter.UserID))
	span.SetAttributes(attribute.Int("page", paging.Page))

	where, args := filterClause(filter)
	return r.page(ctx, where, args, paging)
}

// Search matches q against title, category and notes, case insensitive.
func (r *Repo) Search(ctx context.Context, userID int, q string, paging Paging) (_ []Achievement, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	where := `user_id = $1 AND (title ILIKE $2 OR category ILIKE $2 OR notes ILIKE $2)`
	return r.page(ctx, where, []any{userID, "%" + escapeLike(q) + "%"}, paging)
}

// ListAll returns every achievement of the user, newest first.
func (r *Repo) ListAll(ctx context.Context, userID int) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.list-all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+achievementColumns+`
			FROM achievements
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectAchievements(rows)
}

// WeeklyCounts counts the user's achievements since the given time per ISO week,
// keyed the same way as trends.WeekKey.
func (r *Repo) WeeklyCounts(ctx context.Context, userID int, since time.Time) (_ []trends.WeekCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.weekly-counts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT to_char(created_at AT TIME ZONE 'UTC', 'IYYYIW') AS yw, COUNT(*)
			FROM achievements
			WHERE user_id = $1 AND created_at >= $2
			GROUP BY yw
			ORDER BY yw DESC;`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []trends.WeekCount
	for rows.Next() {
		var wc trends.WeekCount
		if err := rows.Scan(&wc.Key, &wc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, wc)
	}
	return counts, rows.Err()
}

func (r *Repo) page(ctx context.Context, where string, args []any, paging Paging) ([]Achievement, int, error) {
	var total int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM achievements WHERE `+where+`;`,
		args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count achievements: %w", err)
	}

	limitPos := len(args) + 1
	rows, err := r.db.Query(
		ctx,
		`SELECT `+achievementColumns+`
			FROM achievements
			WHERE `+where+`
			ORDER BY created_at DESC, id DESC
			LIMIT $`+strconv.Itoa(limitPos)+` OFFSET $`+strconv.Itoa(limitPos+1)+`;`,
		append(args, paging.Limit, paging.Offset())...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list achievements: %w", err)
	}

	items, err := collectAchievements(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func filterClause(filter Filter) (string, []any) {
	where := `user_id = $1`
	args := []any{filter.UserID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.Metric != "" {
		args = append(args, filter.Metric)
		where += ` AND metric = $` + strconv.Itoa(len(args))
	}
	return where, args
}

func collectAchievements(rows pgx.Rows) ([]Achievement, error) {
	defer rows.Close()
	var items []Achievement
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Title,
			&a.Category,
			&a.Metric,
			&a.Amount,
			&a.Notes,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func escapeLike(s string) string {
	var out []rune
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
