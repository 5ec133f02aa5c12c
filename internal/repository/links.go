// Package repository maps the link service's records onto a storage.KV and
// provides the PostgreSQL KV backend.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/clock"
	"github.com/shorturlproject/shorturl/internal/link"
	"github.com/shorturlproject/shorturl/internal/storage"
)

const (
	shortPrefix     = "short:"
	dedupPrefix     = "dedup:"
	statsPrefix     = "stats:"
	historyPrefix   = "history:"
	userLinksPrefix = "user_links:"
)

// Links is the typed view of link records, dedup index, counters, visit
// history and owner sets.
type Links struct {
	kv     storage.KV
	clock  clock.Clock
	logger *zap.Logger
}

func NewLinks(kv storage.KV, clk clock.Clock, logger *zap.Logger) *Links {
	return &Links{
		kv:     kv,
		clock:  clk,
		logger: logger,
	}
}

// Get loads the record for code. Legacy values are normalized and written
// back once; a failed write-back is logged and the normalized record is still
// returned.
func (l *Links) Get(ctx context.Context, code string) (link.Record, error) {
	raw, err := l.kv.Get(ctx, shortPrefix+code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return link.Record{}, link.ErrNotFound
		}
		return link.Record{}, err
	}

	rec, changed, err := link.Normalize(code, raw, l.clock.Now())
	if err != nil {
		return link.Record{}, err
	}

	if changed {
		if err := l.Put(ctx, rec); err != nil {
			l.logger.Warn("failed to persist migrated record", zap.String("code", code), zap.Error(err))
		} else {
			l.logger.Info("migrated legacy record", zap.String("code", code))
		}
	}

	return rec, nil
}

// Exists reports whether code is allocated, whatever the record's state.
func (l *Links) Exists(ctx context.Context, code string) (bool, error) {
	_, err := l.kv.Get(ctx, shortPrefix+code)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Links) Put(ctx context.Context, rec link.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.Code, err)
	}
	return l.kv.Set(ctx, shortPrefix+rec.Code, string(b))
}

// Codes lists every allocated code.
func (l *Links) Codes(ctx context.Context) ([]string, error) {
	keys, err := l.kv.Keys(ctx, shortPrefix)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(keys))
	for _, k := range keys {
		codes = append(codes, strings.TrimPrefix(k, shortPrefix))
	}
	return codes, nil
}

// LookupFingerprint returns the code indexed under fp, or "" when there is none.
func (l *Links) LookupFingerprint(ctx context.Context, fp string) (string, error) {
	code, err := l.kv.Get(ctx, dedupPrefix+fp)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return code, err
}

func (l *Links) IndexFingerprint(ctx context.Context, fp, code string) error {
	return l.kv.Set(ctx, dedupPrefix+fp, code)
}

func (l *Links) DropFingerprint(ctx context.Context, fp string) error {
	return l.kv.Del(ctx, dedupPrefix+fp)
}

func (l *Links) InitCounter(ctx context.Context, code string) error {
	return l.kv.Set(ctx, statsPrefix+code, "0")
}

func (l *Links) IncrVisits(ctx context.Context, code string) (int64, error) {
	return l.kv.Incr(ctx, statsPrefix+code)
}

// Visits returns the visit counter of code; a missing counter reads as zero.
func (l *Links) Visits(ctx context.Context, code string) (int64, error) {
	v, err := l.kv.Get(ctx, statsPrefix+code)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("visits %s: %w", code, err)
	}
	return n, nil
}

func (l *Links) AppendVisit(ctx context.Context, code string, v link.Visit) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.kv.LPush(ctx, historyPrefix+code, string(b))
	return err
}

// History returns up to limit visits of code, most recent first. A limit of
// zero or less returns the whole history. Malformed entries are skipped.
func (l *Links) History(ctx context.Context, code string, limit int64) ([]link.Visit, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = limit - 1
	}

	raw, err := l.kv.LRange(ctx, historyPrefix+code, 0, stop)
	if err != nil {
		return nil, err
	}

	visits := make([]link.Visit, 0, len(raw))
	for _, r := range raw {
		var v link.Visit
		if err := json.Unmarshal([]byte(r), &v); err != nil {
			l.logger.Debug("skipping malformed history entry", zap.String("code", code), zap.Error(err))
			continue
		}
		visits = append(visits, v)
	}
	return visits, nil
}

func (l *Links) AddOwned(ctx context.Context, owner, code string) error {
	return l.kv.SAdd(ctx, userLinksPrefix+owner, code)
}

func (l *Links) RemoveOwned(ctx context.Context, owner, code string) error {
	return l.kv.SRem(ctx, userLinksPrefix+owner, code)
}

func (l *Links) Owned(ctx context.Context, owner string) ([]string, error) {
	return l.kv.SMembers(ctx, userLinksPrefix+owner)
}

func (l *Links) PingContext(ctx context.Context) error {
	return l.kv.PingContext(ctx)
}
