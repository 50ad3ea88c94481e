package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/healthtrack/internal/users"
	"github.com/2beens/healthtrack/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = time.Hour
	sessionKeyPrefix = "session||"
	tokensSetKey     = "healthtrack-sessions"
	tokenLength      = 35
	maxUsernameLen   = 50
)

var (
	ErrMissingFields    = errors.New("please complete all fields")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordPolicy   = errors.New("password must be at least 8 chars and include lowercase, uppercase, number and special character")
	ErrNoSuchUser       = errors.New("no such user")
	ErrWrongPassword    = errors.New("wrong password")
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=auth_test
type usersRepo interface {
	Add(ctx context.Context, username, passwordHash string) (*users.User, error)
	GetByUsername(ctx context.Context, username string) (*users.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}

type RegisterParams struct {
	Username string
	Password string
	Confirm  string
}

type Service struct {
	redisClient *redis.Client
	usersRepo   usersRepo
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
	usersRepo usersRepo,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		usersRepo:      usersRepo,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (as *Service) TTL() time.Duration {
	return as.ttl
}

// SanitizeUsername is the stored form of a username.
func SanitizeUsername(username string) string {
	return pkg.SanitizeText(username, maxUsernameLen)
}

// Register creates a new user. It fails with ErrMissingFields, ErrPasswordMismatch,
// ErrPasswordPolicy or users.ErrUserExists for invalid input.
func (as *Service) Register(ctx context.Context, params RegisterParams) (*users.User, error) {
	username := SanitizeUsername(params.Username)
	if username == "" || params.Password == "" || params.Confirm == "" {
		return nil, ErrMissingFields
	}
	if params.Password != params.Confirm {
		return nil, ErrPasswordMismatch
	}
	if !ValidPassword(params.Password) {
		return nil, ErrPasswordPolicy
	}

	exists, err := as.usersRepo.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, users.ErrUserExists
	}

	hash, err := pkg.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// the unique index still guards concurrent registrations
	return as.usersRepo.Add(ctx, username, hash)
}

// Login checks the credentials and opens a new session.
func (as *Service) Login(ctx context.Context, username, password string, createdAt time.Time) (*Session, error) {
	username = SanitizeUsername(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := as.usersRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrWrongPassword
	}

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: createdAt,
	}
	sessionJson, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := as.redisClient.Set(ctx, sessionKeyPrefix+token, sessionJson, as.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return nil, fmt.Errorf("track session: %w", err)
	}

	return session, nil
}

// Logout removes the session, false is returned when there was none.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	session, err := getSession(ctx, as.redisClient, token)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}

	if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return true, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old.
// Tokens whose session key already expired in redis are dropped from the set too.
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	now := time.Now()
	var toRemove []string
	for _, token := range sessionTokens {
		session, err := getSession(ctx, as.redisClient, token)
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}
		if session == nil || session.Expired(now, as.ttl) {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
	log.Debugf("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}
