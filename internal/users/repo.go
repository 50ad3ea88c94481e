package users

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

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, username, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, created_at;`,
		username, passwordHash,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return user, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var user User
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, pushover_user_key, created_at FROM users WHERE username = $1;`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.PushoverUserKey, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repo) Exists(ctx context.Context, username string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	if err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1);`,
		username,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// SetPushoverKey stores the user's pushover key, an empty key clears it.
func (r *Repo) SetPushoverKey(ctx context.Context, userID int, key string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.pushover")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var keyArg *string
	if key != "" {
		keyArg = &key
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET pushover_user_key = $1 WHERE id = $2;`,
		keyArg, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Ping checks the db connection.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
