// Command shortenctl submits links to a shorturl server and keeps the ones
// that could not be delivered in a local queue until the server is back.
//
// Usage:
//
//	shortenctl [flags] shorten <url>
//	shortenctl [flags] login <username> <password>
//	shortenctl [flags] pending
//	shortenctl [flags] sync
//	shortenctl [flags] watch
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/client"
	"github.com/shorturlproject/shorturl/internal/clock"
	"github.com/shorturlproject/shorturl/internal/config"
	"github.com/shorturlproject/shorturl/internal/logger"
	"github.com/shorturlproject/shorturl/internal/models"
	"github.com/shorturlproject/shorturl/internal/queue"
	"github.com/shorturlproject/shorturl/internal/syncer"
	"github.com/shorturlproject/shorturl/internal/worker"
)

var errUsage = errors.New("usage: shortenctl [flags] shorten <url> | login <username> <password> | pending | sync | watch")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// app bundles what every subcommand needs.
type app struct {
	opts    *config.ClientOptions
	api     *client.Client
	queue   *queue.FileQueue
	watcher *worker.Watcher
	logger  *zap.Logger
	out     io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, rest, err := config.ParseClient(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errUsage
	}

	l := logger.New()
	if err := l.InitConsole(opts.LogLevel); err != nil {
		return err
	}
	defer l.Sync()

	q, err := queue.CreateFileQueue(opts.QueueFile, clock.Real{})
	if err != nil {
		return err
	}

	api := client.New(opts.Server, opts.Token, client.WithLogger(l.Log))
	a := &app{
		opts:    opts,
		api:     api,
		queue:   q,
		watcher: worker.NewWatcher(l.Log, api, time.Duration(opts.Interval)),
		logger:  l.Log,
		out:     out,
	}

	cmd, operands := rest[0], rest[1:]
	switch {
	case cmd == "shorten" && len(operands) == 1:
		return a.shorten(ctx, operands[0])
	case cmd == "login" && len(operands) == 2:
		return a.login(ctx, operands[0], operands[1])
	case cmd == "pending" && len(operands) == 0:
		return a.pending()
	case cmd == "sync" && len(operands) == 0:
		return a.sync(ctx)
	case cmd == "watch" && len(operands) == 0:
		return a.watch(ctx)
	default:
		return errUsage
	}
}

func (a *app) shorten(ctx context.Context, longURL string) error {
	a.watcher.Probe(ctx)

	res, err := syncer.NewSubmitter(a.api, a.queue, a.watcher, a.logger).Submit(ctx, longURL)
	if err != nil {
		return err
	}

	if res.Queued {
		if res.Cause != nil {
			fmt.Fprintf(a.out, "queued %s (%d pending): %v\n", res.Item.ID, res.Pending, res.Cause)
			return nil
		}
		fmt.Fprintf(a.out, "server unreachable, queued %s (%d pending)\n", res.Item.ID, res.Pending)
		return nil
	}
	fmt.Fprintf(a.out, "%s\t%s\n", res.Response.ShortCode, describe(res.Response))
	return nil
}

func describe(r models.ShortenResponse) string {
	if r.Msg != "" {
		return r.Msg
	}
	return "created"
}

func (a *app) login(ctx context.Context, username, password string) error {
	res, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Token)
	return nil
}

func (a *app) pending() error {
	items, err := a.queue.List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "no pending submissions")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tATTEMPTS\tURL\tLAST ERROR")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.CreatedAt.Format(time.RFC3339), it.Attempts, it.LongURL, it.LastError)
	}
	return w.Flush()
}

func (a *app) newSyncer() *syncer.Syncer {
	return syncer.New(a.api, a.queue, a.logger,
		syncer.WithConnectivity(a.watcher),
		syncer.WithCallbacks(syncer.Callbacks{
			OnItemSynced: func(it queue.Item, resp models.ShortenResponse) {
				fmt.Fprintf(a.out, "synced\t%s\t%s\n", resp.ShortCode, it.LongURL)
			},
			OnItemFailed: func(it queue.Item, err error) {
				fmt.Fprintf(a.out, "dropped\t%s\t%v\n", it.LongURL, err)
			},
		}),
	)
}

func (a *app) report(res syncer.Result) {
	fmt.Fprintf(a.out, "%d synced, %d dropped, %d pending\n", res.Synced, res.Failed, res.Remaining)
	if res.Halted != nil {
		fmt.Fprintf(a.out, "paused: %v\n", res.Halted)
	}
}

func (a *app) sync(ctx context.Context) error {
	a.watcher.Probe(ctx)
	if !a.watcher.Online() {
		n, err := a.queue.Count()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "server unreachable, %d pending\n", n)
		return nil
	}

	res, err := a.newSyncer().SyncPending(ctx)
	if err != nil {
		return err
	}
	a.report(res)
	return nil
}

func (a *app) watch(ctx context.Context) error {
	s := a.newSyncer()
	a.watcher.RetryWhile(func() bool {
		n, err := a.queue.Count()
		return err == nil && n > 0
	})

	a.watcher.Run(ctx, func(ctx context.Context) {
		res, err := s.SyncPending(ctx)
		if err != nil {
			a.logger.Error("sync failed", zap.Error(err))
			return
		}
		if res.SyncedAny || res.Failed > 0 {
			a.report(res)
		}
	})
	return nil
}
