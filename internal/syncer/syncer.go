// Package syncer replays the pending queue against the API and implements
// the first-attempt submission path that falls back to the queue.
//
// Failures are split in two: a network error or a retryable status (5xx,
// an expired token, a timeout or a rate limit) halts the pass and leaves the
// entry queued for the next trigger, while any other 4xx removes the entry,
// reports it and moves on to the next one.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/client"
	"github.com/shorturlproject/shorturl/internal/models"
	"github.com/shorturlproject/shorturl/internal/queue"
)

// ErrSyncInProgress is returned when a pass is requested while another runs.
var ErrSyncInProgress = errors.New("sync already in progress")

// API is the remote call a queued entry is replayed with.
type API interface {
	Shorten(ctx context.Context, longURL string) (models.ShortenResponse, error)
}

// Connectivity reports whether the server is believed reachable.
type Connectivity interface {
	Online() bool
}

type alwaysOnline struct{}

func (alwaysOnline) Online() bool { return true }

// Callbacks are invoked synchronously from the sync pass. Any may be nil.
type Callbacks struct {
	OnItemSynced func(item queue.Item, resp models.ShortenResponse)
	OnItemFailed func(item queue.Item, err error)
	OnDone       func(Result)
}

// Result summarises one pass.
type Result struct {
	SyncedAny bool
	Synced    int
	Failed    int
	// LastCode is the short code of the most recently synced entry.
	LastCode  string
	Remaining int
	// Halted holds the transient error that stopped the pass early, if any.
	Halted error
}

// Syncer drains the pending queue. Passes never overlap.
type Syncer struct {
	api     API
	queue   queue.Queue
	conn    Connectivity
	cb      Callbacks
	logger  *zap.Logger
	running atomic.Bool
}

type Option func(*Syncer)

func WithConnectivity(c Connectivity) Option {
	return func(s *Syncer) { s.conn = c }
}

func WithCallbacks(cb Callbacks) Option {
	return func(s *Syncer) { s.cb = cb }
}

func New(api API, q queue.Queue, logger *zap.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		api:    api,
		queue:  q,
		conn:   alwaysOnline{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncPending replays every pending entry in creation order, one at a time.
// Once the queue has been listed the pass is always reported through OnDone,
// even when a queue write fails and the error is returned.
func (s *Syncer) SyncPending(ctx context.Context) (Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Result{}, ErrSyncInProgress
	}
	defer s.running.Store(false)

	items, err := s.queue.List()
	if err != nil {
		return Result{}, err
	}

	var res Result
	if len(items) == 0 {
		s.done(res)
		return res, nil
	}

	// failed ends the pass early; it is returned after the pass is reported.
	var failed error

	for _, item := range items {
		if ctx.Err() != nil || !s.conn.Online() {
			s.logger.Info("connectivity lost, pausing sync", zap.String("id", item.ID))
			break
		}

		resp, err := s.api.Shorten(ctx, item.LongURL)
		if err == nil {
			if err := s.queue.Remove(item.ID); err != nil {
				failed = fmt.Errorf("remove synced item %s: %w", item.ID, err)
				break
			}
			res.SyncedAny = true
			res.Synced++
			res.LastCode = resp.ShortCode
			if s.cb.OnItemSynced != nil {
				s.cb.OnItemSynced(item, resp)
			}
			continue
		}

		if client.IsPermanent(err) {
			s.logger.Warn("dropping rejected submission", zap.String("id", item.ID), zap.String("longUrl", item.LongURL), zap.Error(err))
			if rerr := s.queue.Remove(item.ID); rerr != nil {
				failed = fmt.Errorf("remove rejected item %s: %w", item.ID, rerr)
				break
			}
			res.Failed++
			if s.cb.OnItemFailed != nil {
				s.cb.OnItemFailed(item, err)
			}
			continue
		}

		s.logger.Info("transient failure, stopping sync pass", zap.String("id", item.ID), zap.Error(err))
		if merr := s.queue.MarkFailed(item.ID, err.Error()); merr != nil {
			s.logger.Error("failed to record attempt", zap.String("id", item.ID), zap.Error(merr))
		}
		res.Halted = err
		break
	}

	remaining, cerr := s.queue.Count()
	if cerr != nil {
		s.logger.Error("failed to count pending items", zap.Error(cerr))
		if failed == nil {
			failed = cerr
		}
	}
	res.Remaining = remaining

	s.done(res)
	return res, failed
}

func (s *Syncer) done(res Result) {
	s.logger.Info("sync pass finished",
		zap.Int("synced", res.Synced),
		zap.Int("failed", res.Failed),
		zap.Int("remaining", res.Remaining),
	)
	if s.cb.OnDone != nil {
		s.cb.OnDone(res)
	}
}
