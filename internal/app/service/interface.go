package service

import (
	"context"

	"github.com/shorturlproject/shorturl/internal/link"
	"github.com/shorturlproject/shorturl/internal/repository"
)

// LinkStore is the persistence the lifecycle engine works against.
type LinkStore interface {
	Get(ctx context.Context, code string) (link.Record, error)
	Exists(ctx context.Context, code string) (bool, error)
	Put(ctx context.Context, rec link.Record) error
	Codes(ctx context.Context) ([]string, error)

	LookupFingerprint(ctx context.Context, fp string) (string, error)
	IndexFingerprint(ctx context.Context, fp, code string) error
	DropFingerprint(ctx context.Context, fp string) error

	InitCounter(ctx context.Context, code string) error
	IncrVisits(ctx context.Context, code string) (int64, error)
	Visits(ctx context.Context, code string) (int64, error)
	AppendVisit(ctx context.Context, code string, v link.Visit) error
	History(ctx context.Context, code string, limit int64) ([]link.Visit, error)

	AddOwned(ctx context.Context, owner, code string) error
	RemoveOwned(ctx context.Context, owner, code string) error
	Owned(ctx context.Context, owner string) ([]string, error)

	PingContext(ctx context.Context) error
}

type UserStore interface {
	Create(ctx context.Context, u repository.User) error
	Find(ctx context.Context, username string) (repository.User, error)
}

// LinkServiceIface is what the HTTP and gRPC layers call.
type LinkServiceIface interface {
	Shorten(ctx context.Context, owner, longURL string) (ShortenResult, error)
	Remove(ctx context.Context, code string, p Principal) error
	Update(ctx context.Context, code string, p Principal, longURL string) (link.Record, error)
	ResolveAndTrack(ctx context.Context, code, ip, userAgent string) (string, error)
	ListOwned(ctx context.Context, owner string) ([]OwnedLink, error)
	Stats(ctx context.Context, code string, p Principal) (LinkStats, error)
	Dashboard(ctx context.Context) (Dashboard, error)
	PingContext(ctx context.Context) error
}

// AuthIface defines the account and token operations used by handlers and middleware.
type AuthIface interface {
	Register(ctx context.Context, username, password string) (Session, error)
	Login(ctx context.Context, username, password string) (Session, error)
	ParseRawJWT(tokenString string) (*Claims, error)
}
