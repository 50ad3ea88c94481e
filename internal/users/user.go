package users

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already exists")
)

type User struct {
	ID              int
	Username        string
	PasswordHash    string
	PushoverUserKey *string
	CreatedAt       time.Time
}
