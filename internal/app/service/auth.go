// Package service provides the link lifecycle engine and the account and
// token handling used by the HTTP and gRPC layers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/shorturlproject/shorturl/internal/clock"
	"github.com/shorturlproject/shorturl/internal/link"
	"github.com/shorturlproject/shorturl/internal/repository"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var (
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims represents the claims that are included in the JWT token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (c *Claims) Principal() Principal {
	return Principal{Username: c.Username, Role: c.Role}
}

// TokenExp defines the expiration time of issued tokens.
const TokenExp = time.Hour * 24 * 7

// Session is returned by a successful register or login.
type Session struct {
	Token    string
	Username string
	Role     string
}

// Auth registers users, checks passwords and issues HS256 bearer tokens.
type Auth struct {
	users  UserStore
	secret []byte
	admins map[string]struct{}
	clock  clock.Clock
	cost   int
}

// NewAuth creates an Auth signing with secret. Usernames listed in admins get
// the admin role.
func NewAuth(users UserStore, secret string, admins []string, clk clock.Clock) *Auth {
	set := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		if a = strings.TrimSpace(a); a != "" {
			set[a] = struct{}{}
		}
	}

	return &Auth{
		users:  users,
		secret: []byte(secret),
		admins: set,
		clock:  clk,
		cost:   bcrypt.DefaultCost,
	}
}

func (a *Auth) roleFor(username string) string {
	if _, ok := a.admins[username]; ok {
		return RoleAdmin
	}
	return RoleUser
}

func (a *Auth) Register(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		return Session{}, &link.ValidationError{Msg: fmt.Sprintf("username must be at least %d characters", minUsernameLen)}
	}
	if len(password) < minPasswordLen {
		return Session{}, &link.ValidationError{Msg: fmt.Sprintf("password must be at least %d characters", minPasswordLen)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	u := repository.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         a.roleFor(username),
		CreatedAt:    a.clock.Now(),
	}
	if err := a.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return Session{}, ErrUserExists
		}
		return Session{}, err
	}

	return a.session(username)
}

func (a *Auth) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, &link.ValidationError{Msg: "username and password are required"}
	}

	u, err := a.users.Find(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return a.session(username)
}

func (a *Auth) session(username string) (Session, error) {
	role := a.roleFor(username)
	token, err := a.BuildJWTString(username, role)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Username: username, Role: role}, nil
}

// BuildJWTString signs a token for username with the given role.
func (a *Auth) BuildJWTString(username, role string) (string, error) {
	now := a.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExp)),
		},
		Username: username,
		Role:     role,
	})

	return token.SignedString(a.secret)
}

func (a *Auth) ParseRawJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
