package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shorturlproject/shorturl/internal/storage"
)

const userPrefix = "user:"

var (
	ErrConflict     = errors.New("data conflict")
	ErrUserNotFound = errors.New("user not found")
)

// User is a registered account.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Users struct {
	kv storage.KV
}

func NewUsers(kv storage.KV) *Users {
	return &Users{kv: kv}
}

// Create stores u, failing with ErrConflict when the username is taken.
func (r *Users) Create(ctx context.Context, u User) error {
	_, err := r.kv.Get(ctx, userPrefix+u.Username)
	if err == nil {
		return ErrConflict
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", u.Username, err)
	}
	return r.kv.Set(ctx, userPrefix+u.Username, string(b))
}

func (r *Users) Find(ctx context.Context, username string) (User, error) {
	raw, err := r.kv.Get(ctx, userPrefix+username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, fmt.Errorf("decode user %s: %w", username, err)
	}
	return u, nil
}
