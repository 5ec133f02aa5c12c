// Package link holds the link record, its lifecycle state machine and the
// pure helpers (validation, fingerprinting, legacy normalization) shared by
// the storage layer and the lifecycle engine.
package link

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// UnknownOwner is the owner assigned to records created before ownership was tracked.
const UnknownOwner = "unknown"

// Record is a stored short link.
type Record struct {
	Code      string     `json:"code"`
	LongURL   string     `json:"longUrl"`
	Owner     string     `json:"owner"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// New returns an active record created at now.
func New(code, owner, longURL string, now time.Time) Record {
	return Record{
		Code:      code,
		LongURL:   longURL,
		Owner:     owner,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnedBy reports whether user may manage the record. Admins may manage any record.
func (r Record) OwnedBy(user string, admin bool) bool {
	return admin || (user != "" && r.Owner == user)
}

// Visit is a single entry of a link's visit history.
type Visit struct {
	Timestamp time.Time `json:"ts"`
	IP        string    `json:"ip"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	UserAgent string    `json:"userAgent"`
}

// Fingerprint returns the dedup key for (owner, longURL).
func Fingerprint(owner, longURL string) string {
	sum := sha256.Sum256([]byte(owner + "\n" + longURL))
	return hex.EncodeToString(sum[:])
}
