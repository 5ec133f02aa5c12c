package syncer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/client"
	"github.com/shorturlproject/shorturl/internal/models"
	"github.com/shorturlproject/shorturl/internal/queue"
)

// SubmitResult is either the server response or, when Queued is set, the
// entry that was parked for a later sync.
type SubmitResult struct {
	Response models.ShortenResponse
	Queued   bool
	Item     queue.Item
	Pending  int
	// Cause is the failed attempt that sent the entry to the queue; nil
	// when the server was already known to be offline.
	Cause    error
}

// Submitter performs the first submission attempt.
type Submitter struct {
	api    API
	queue  queue.Queue
	conn   Connectivity
	logger *zap.Logger
}

func NewSubmitter(api API, q queue.Queue, conn Connectivity, logger *zap.Logger) *Submitter {
	if conn == nil {
		conn = alwaysOnline{}
	}
	return &Submitter{api: api, queue: q, conn: conn, logger: logger}
}

// Submit shortens longURL, queueing it when the server is unreachable or
// failing. A permanent 4xx answer is returned as is and nothing is queued,
// and neither is a submission whose context was cancelled.
func (s *Submitter) Submit(ctx context.Context, longURL string) (SubmitResult, error) {
	if errors.Is(ctx.Err(), context.Canceled) {
		return SubmitResult{}, ctx.Err()
	}
	if !s.conn.Online() {
		return s.enqueue(longURL, nil)
	}

	resp, err := s.api.Shorten(ctx, longURL)
	if err == nil {
		return SubmitResult{Response: resp}, nil
	}
	if client.IsPermanent(err) {
		return SubmitResult{}, err
	}
	if errors.Is(err, context.Canceled) {
		return SubmitResult{}, err
	}

	return s.enqueue(longURL, err)
}

func (s *Submitter) enqueue(longURL string, cause error) (SubmitResult, error) {
	item, n, err := s.queue.Enqueue(longURL)
	if err != nil {
		return SubmitResult{}, err
	}
	s.logger.Info("submission queued", zap.String("id", item.ID), zap.Int("pending", n), zap.NamedError("cause", cause))
	return SubmitResult{Queued: true, Item: item, Pending: n, Cause: cause}, nil
}
