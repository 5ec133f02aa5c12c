package link

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// storedRecord mirrors Record with optional fields so missing values can be told
// apart from zero values.
type storedRecord struct {
	Code      string     `json:"code"`
	LongURL   string     `json:"longUrl"`
	Owner     string     `json:"owner"`
	Active    *bool      `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// Normalize turns the raw stored value for code into a full Record.
//
// Older records were stored as a bare URL string; they come back owned by
// UnknownOwner, active, with timestamps backfilled to now. Structured records
// missing fields are completed the same way. changed reports whether the
// result differs from what was stored, so callers can persist it once;
// normalizing an already complete record yields changed == false.
func Normalize(code, raw string, now time.Time) (rec Record, changed bool, err error) {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return Record{}, false, fmt.Errorf("normalize %s: empty value", code)

	case strings.HasPrefix(trimmed, "{"):
		var s storedRecord
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return Record{}, false, fmt.Errorf("normalize %s: %w", code, err)
		}
		rec = Record{
			Code:      s.Code,
			LongURL:   s.LongURL,
			Owner:     s.Owner,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
			DeletedAt: s.DeletedAt,
		}
		if s.Active == nil {
			rec.Active = s.DeletedAt == nil
			changed = true
		} else {
			rec.Active = *s.Active
		}

	default:
		// Legacy value: the URL itself, possibly JSON-quoted.
		longURL := trimmed
		if strings.HasPrefix(trimmed, `"`) {
			if err := json.Unmarshal([]byte(trimmed), &longURL); err != nil {
				return Record{}, false, fmt.Errorf("normalize %s: %w", code, err)
			}
		}
		rec = Record{LongURL: longURL, Active: true}
		changed = true
	}

	if rec.Code != code {
		rec.Code = code
		changed = true
	}
	if rec.Owner == "" {
		rec.Owner = UnknownOwner
		changed = true
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
		changed = true
	}
	if rec.UpdatedAt.Before(rec.CreatedAt) {
		rec.UpdatedAt = rec.CreatedAt
		changed = true
	}
	if rec.Active && rec.DeletedAt != nil {
		rec.DeletedAt = nil
		changed = true
	}
	if !rec.Active && rec.DeletedAt == nil {
		at := rec.UpdatedAt
		rec.DeletedAt = &at
		changed = true
	}

	return rec, changed, nil
}
