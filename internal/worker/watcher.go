// Package worker runs the background connectivity watcher of the client.
package worker

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultInterval     = 10 * time.Second
	DefaultProbeTimeout = 3 * time.Second
)

// Prober checks whether the server answers.
type Prober interface {
	Health(ctx context.Context) error
}

// Watcher probes the server on a ticker and calls onOnline at startup when
// the server is reachable and on every offline to online transition. With
// RetryWhile it also calls onOnline on every online tick that finds work
// left over from a halted pass.
// It implements syncer.Connectivity.
type Watcher struct {
	prober       Prober
	interval     time.Duration
	probeTimeout time.Duration
	logger       *zap.Logger
	online       atomic.Bool
	pending      func() bool
}

func NewWatcher(logger *zap.Logger, prober Prober, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		prober:       prober,
		interval:     interval,
		probeTimeout: DefaultProbeTimeout,
		logger:       logger,
	}
}

// Online reports the result of the latest probe.
func (w *Watcher) Online() bool {
	return w.online.Load()
}

// RetryWhile makes Run retry while pending reports leftover work. It must be
// called before Run.
func (w *Watcher) RetryWhile(pending func() bool) {
	w.pending = pending
}

// Probe checks the server once and reports whether it just came online.
func (w *Watcher) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, w.probeTimeout)
	defer cancel()

	err := w.prober.Health(ctx)
	now := err == nil
	was := w.online.Swap(now)

	switch {
	case now && !was:
		w.logger.Info("server reachable")
	case !now && was:
		w.logger.Warn("server unreachable", zap.Error(err))
	}
	return now && !was
}

// Run probes immediately and then every interval until ctx is done.
// onOnline runs on the watcher goroutine, so passes never overlap.
func (w *Watcher) Run(ctx context.Context, onOnline func(context.Context)) {
	w.logger.Info("connectivity watcher started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		cameOnline := w.Probe(ctx)
		if cameOnline || (w.Online() && w.pending != nil && w.pending()) {
			onOnline(ctx)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("connectivity watcher stopped")
			return
		case <-ticker.C:
		}
	}
}
