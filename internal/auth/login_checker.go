package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// LoginChecker resolves session tokens into sessions.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// Session returns nil without an error when the token is unknown or expired.
func (c *LoginChecker) Session(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := getSession(ctx, c.redisClient, token)
	if err != nil || session == nil {
		return nil, err
	}
	if session.Expired(c.now(), c.ttl) {
		return nil, nil
	}
	return session, nil
}

func getSession(ctx context.Context, rdb *redis.Client, token string) (*Session, error) {
	raw, err := rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	session.Token = token
	return &session, nil
}
