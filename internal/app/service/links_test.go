package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/clock"
	"github.com/shorturlproject/shorturl/internal/geo"
	"github.com/shorturlproject/shorturl/internal/link"
	"github.com/shorturlproject/shorturl/internal/mocks"
	"github.com/shorturlproject/shorturl/internal/repository"
	"github.com/shorturlproject/shorturl/internal/storage"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	alice = service.Principal{Username: "alice", Role: service.RoleUser}
	bob   = service.Principal{Username: "bob", Role: service.RoleUser}
	admin = service.Principal{Username: "root", Role: service.RoleAdmin}
)

// seqCodes hands out the given codes in order, then falls back to random ones.
type seqCodes struct {
	mu    sync.Mutex
	codes []string
}

func (g *seqCodes) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.codes) == 0 {
		return service.NewRandomCodes(service.CodeLength).Generate()
	}
	c := g.codes[0]
	g.codes = g.codes[1:]
	return c, nil
}

type engine struct {
	svc   *service.LinkService
	links *repository.Links
	kv    *storage.MemoryStorage
	clock *clock.Mock
}

func newEngine(t *testing.T, codes service.CodeGenerator, locator geo.Locator) engine {
	t.Helper()
	kv := storage.CreateMemoryStorage()
	clk := clock.NewMock(t0)
	links := repository.NewLinks(kv, clk, zap.NewNop())
	if codes == nil {
		codes = service.NewRandomCodes(service.CodeLength)
	}
	if locator == nil {
		locator = geo.Nop{}
	}
	return engine{
		svc:   service.NewLinkService(links, codes, locator, clk, zap.NewNop()),
		links: links,
		kv:    kv,
		clock: clk,
	}
}

func TestShorten_Idempotent(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	first, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	assert.Len(t, first.Code, service.CodeLength)
	assert.False(t, first.Existing)
	assert.False(t, first.Reactivated)

	second, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)
	assert.True(t, second.Existing)
	assert.False(t, second.Reactivated)

	other, err := e.svc.Shorten(ctx, "bob", "https://example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.Code, other.Code)
	assert.False(t, other.Existing)

	visits, err := e.links.Visits(ctx, first.Code)
	require.NoError(t, err)
	assert.Zero(t, visits)

	owned, err := e.links.Owned(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{first.Code}, owned)
}

func TestShorten_Validation(t *testing.T) {
	e := newEngine(t, nil, nil)

	for _, raw := range []string{"", "not-a-url", "ftp://example.com", "http://", "https://exa mple.com"} {
		_, err := e.svc.Shorten(context.Background(), "alice", raw)
		assert.ErrorIs(t, err, link.ErrValidation, raw)
	}

	codes, err := e.links.Codes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestShorten_ReactivationRoundTrip(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	created, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)

	e.clock.Advance(time.Minute)
	require.NoError(t, e.svc.Remove(ctx, created.Code, alice))

	items, err := e.svc.ListOwned(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)

	e.clock.Advance(time.Minute)
	again, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, created.Code, again.Code)
	assert.True(t, again.Existing)
	assert.True(t, again.Reactivated)

	rec, err := e.links.Get(ctx, created.Code)
	require.NoError(t, err)
	assert.True(t, rec.Active)
	assert.Nil(t, rec.DeletedAt)
	assert.Equal(t, t0.Add(2*time.Minute), rec.UpdatedAt)

	items, err = e.svc.ListOwned(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.Code, items[0].Code)
}

func TestShorten_PurgesDanglingIndex(t *testing.T) {
	e := newEngine(t, &seqCodes{codes: []string{"fresh1"}}, nil)
	ctx := context.Background()

	fp := link.Fingerprint("alice", "https://example.com")
	require.NoError(t, e.links.IndexFingerprint(ctx, fp, "gone00"))

	res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "fresh1", res.Code)
	assert.False(t, res.Existing)

	indexed, err := e.links.LookupFingerprint(ctx, fp)
	require.NoError(t, err)
	assert.Equal(t, "fresh1", indexed)
}

func TestShorten_IgnoresIndexForeignRecord(t *testing.T) {
	e := newEngine(t, &seqCodes{codes: []string{"fresh1"}}, nil)
	ctx := context.Background()

	require.NoError(t, e.links.Put(ctx, link.New("other1", "bob", "https://other.example.com", t0)))
	fp := link.Fingerprint("alice", "https://example.com")
	require.NoError(t, e.links.IndexFingerprint(ctx, fp, "other1"))

	res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "fresh1", res.Code)

	rec, err := e.links.Get(ctx, "other1")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com", rec.LongURL)
}

func TestShorten_RetriesOnCollision(t *testing.T) {
	e := newEngine(t, &seqCodes{codes: []string{"taken1", "taken1", "free01"}}, nil)
	ctx := context.Background()

	require.NoError(t, e.links.Put(ctx, link.New("taken1", "bob", "https://bob.example.com", t0)))

	res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "free01", res.Code)

	rec, err := e.links.Get(ctx, "taken1")
	require.NoError(t, err)
	assert.Equal(t, "bob", rec.Owner)
}

func TestShorten_CodeSpaceExhausted(t *testing.T) {
	e := newEngine(t, &seqCodes{codes: []string{"taken1", "taken1", "taken1", "taken1", "taken1"}}, nil)
	ctx := context.Background()

	require.NoError(t, e.links.Put(ctx, link.New("taken1", "bob", "https://bob.example.com", t0)))

	_, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	assert.ErrorIs(t, err, service.ErrCodeSpaceExhausted)
}

func TestRemove(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, e.svc.Remove(ctx, "nope00", alice), link.ErrNotFound)
	assert.ErrorIs(t, e.svc.Remove(ctx, res.Code, bob), link.ErrForbidden)

	require.NoError(t, e.svc.Remove(ctx, res.Code, admin))
	assert.ErrorIs(t, e.svc.Remove(ctx, res.Code, alice), link.ErrInactive)

	// Record, counter and dedup entry survive the soft delete.
	rec, err := e.links.Get(ctx, res.Code)
	require.NoError(t, err)
	assert.False(t, rec.Active)
	require.NotNil(t, rec.DeletedAt)
	assert.Equal(t, t0, *rec.DeletedAt)

	indexed, err := e.links.LookupFingerprint(ctx, link.Fingerprint("alice", "https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, res.Code, indexed)

	owned, err := e.links.Owned(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, owned)

	_, err = e.svc.ResolveAndTrack(ctx, res.Code, "8.8.8.8", "test")
	assert.ErrorIs(t, err, link.ErrInactive)
}

func TestUpdate(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	res, err := e.svc.Shorten(ctx, "alice", "https://old.example.com")
	require.NoError(t, err)

	_, err = e.svc.Update(ctx, res.Code, bob, "https://new.example.com")
	assert.ErrorIs(t, err, link.ErrForbidden)

	_, err = e.svc.Update(ctx, "nope00", alice, "https://new.example.com")
	assert.ErrorIs(t, err, link.ErrNotFound)

	_, err = e.svc.Update(ctx, res.Code, alice, "not-a-url")
	assert.ErrorIs(t, err, link.ErrValidation)

	e.clock.Advance(time.Hour)
	rec, err := e.svc.Update(ctx, res.Code, alice, "https://new.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.com", rec.LongURL)
	assert.Equal(t, t0.Add(time.Hour), rec.UpdatedAt)
	assert.Equal(t, t0, rec.CreatedAt)

	target, err := e.svc.ResolveAndTrack(ctx, res.Code, "8.8.8.8", "test")
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.com", target)

	same, err := e.svc.Shorten(ctx, "alice", "https://new.example.com")
	require.NoError(t, err)
	assert.Equal(t, res.Code, same.Code)
	assert.True(t, same.Existing)

	fresh, err := e.svc.Shorten(ctx, "alice", "https://old.example.com")
	require.NoError(t, err)
	assert.NotEqual(t, res.Code, fresh.Code)
	assert.False(t, fresh.Existing)
}

func TestUpdate_InactiveLink(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	require.NoError(t, e.svc.Remove(ctx, res.Code, alice))

	_, err = e.svc.Update(ctx, res.Code, alice, "https://new.example.com")
	assert.ErrorIs(t, err, link.ErrInactive)
}

func TestResolveAndTrack(t *testing.T) {
	ctrl := gomock.NewController(t)
	locator := mocks.NewMockLocator(ctrl)
	e := newEngine(t, nil, locator)
	ctx := context.Background()

	res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)

	locator.EXPECT().Locate(gomock.Any(), "8.8.8.8").
		Return(geo.Location{Country: "United States", City: "Mountain View"}, nil)
	locator.EXPECT().Locate(gomock.Any(), "1.1.1.1").
		Return(geo.UnknownLocation, errors.New("timeout"))

	target, err := e.svc.ResolveAndTrack(ctx, res.Code, "8.8.8.8", "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)

	e.clock.Advance(time.Second)
	_, err = e.svc.ResolveAndTrack(ctx, res.Code, "1.1.1.1", "agent-2")
	require.NoError(t, err)

	visits, err := e.links.Visits(ctx, res.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(2), visits)

	history, err := e.links.History(ctx, res.Code, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, link.Visit{Timestamp: t0.Add(time.Second), IP: "1.1.1.1", Country: geo.Unknown, City: geo.Unknown, UserAgent: "agent-2"}, history[0])
	assert.Equal(t, link.Visit{Timestamp: t0, IP: "8.8.8.8", Country: "United States", City: "Mountain View", UserAgent: "agent-1"}, history[1])

	_, err = e.svc.ResolveAndTrack(ctx, "nope00", "8.8.8.8", "")
	assert.ErrorIs(t, err, link.ErrNotFound)
}

func TestResolveAndTrack_LegacyRecord(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, e.kv.Set(ctx, "short:legacy", "https://legacy.example.com"))

	target, err := e.svc.ResolveAndTrack(ctx, "legacy", "127.0.0.1", "")
	require.NoError(t, err)
	assert.Equal(t, "https://legacy.example.com", target)

	rec, err := e.links.Get(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, link.UnknownOwner, rec.Owner)

	// Only admins can manage links without a known owner.
	_, err = e.svc.Stats(ctx, "legacy", alice)
	assert.ErrorIs(t, err, link.ErrForbidden)
	stats, err := e.svc.Stats(ctx, "legacy", admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Visits)
}

func TestStats(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)

	for i := 0; i < service.HistoryLimit+5; i++ {
		_, err := e.svc.ResolveAndTrack(ctx, res.Code, "127.0.0.1", "")
		require.NoError(t, err)
	}

	stats, err := e.svc.Stats(ctx, res.Code, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(service.HistoryLimit+5), stats.Visits)
	assert.Len(t, stats.History, service.HistoryLimit)
	assert.Equal(t, "https://example.com", stats.LongURL)

	_, err = e.svc.Stats(ctx, res.Code, bob)
	assert.ErrorIs(t, err, link.ErrForbidden)

	_, err = e.svc.Stats(ctx, "nope00", alice)
	assert.ErrorIs(t, err, link.ErrNotFound)

	// Soft-deleted links keep reporting to their owner and admins.
	require.NoError(t, e.svc.Remove(ctx, res.Code, alice))
	stats, err = e.svc.Stats(ctx, res.Code, alice)
	require.NoError(t, err)
	assert.False(t, stats.Active)
	assert.Equal(t, int64(service.HistoryLimit+5), stats.Visits)

	_, err = e.svc.Stats(ctx, res.Code, admin)
	require.NoError(t, err)
	_, err = e.svc.Stats(ctx, res.Code, bob)
	assert.ErrorIs(t, err, link.ErrForbidden)
}

func TestListOwned(t *testing.T) {
	e := newEngine(t, &seqCodes{codes: []string{"first1", "secnd2", "third3"}}, nil)
	ctx := context.Background()

	_, err := e.svc.Shorten(ctx, "alice", "https://one.example.com")
	require.NoError(t, err)
	e.clock.Advance(time.Minute)
	_, err = e.svc.Shorten(ctx, "alice", "https://two.example.com")
	require.NoError(t, err)
	_, err = e.svc.Shorten(ctx, "bob", "https://three.example.com")
	require.NoError(t, err)

	_, err = e.svc.ResolveAndTrack(ctx, "first1", "127.0.0.1", "")
	require.NoError(t, err)

	items, err := e.svc.ListOwned(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "secnd2", items[0].Code)
	assert.Equal(t, "first1", items[1].Code)
	assert.Equal(t, int64(1), items[1].Visits)

	empty, err := e.svc.ListOwned(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	locator := mocks.NewMockLocator(ctrl)
	e := newEngine(t, &seqCodes{codes: []string{"aaaaaa", "bbbbbb", "cccccc"}}, locator)
	ctx := context.Background()

	for _, u := range []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"} {
		_, err := e.svc.Shorten(ctx, "alice", u)
		require.NoError(t, err)
	}

	locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
		Return(geo.Location{Country: "Romania", City: "Bucharest"}, nil).Times(3)
	locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
		Return(geo.Location{Country: "Germany", City: "Berlin"}, nil).Times(1)
	locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
		Return(geo.UnknownLocation, errors.New("down")).Times(1)

	// Two visits ten days ago fall outside the chart window.
	e.clock.Set(t0.AddDate(0, 0, -10))
	for i := 0; i < 2; i++ {
		_, err := e.svc.ResolveAndTrack(ctx, "aaaaaa", "8.8.8.8", "")
		require.NoError(t, err)
	}
	e.clock.Set(t0.AddDate(0, 0, -1))
	_, err := e.svc.ResolveAndTrack(ctx, "bbbbbb", "8.8.8.8", "")
	require.NoError(t, err)
	e.clock.Set(t0)
	_, err = e.svc.ResolveAndTrack(ctx, "bbbbbb", "8.8.4.4", "")
	require.NoError(t, err)
	_, err = e.svc.ResolveAndTrack(ctx, "cccccc", "1.1.1.1", "")
	require.NoError(t, err)

	require.NoError(t, e.svc.Remove(ctx, "cccccc", alice))

	d, err := e.svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalLinks)
	assert.Equal(t, int64(5), d.TotalVisits)
	assert.Equal(t, []service.TopLink{
		{Code: "aaaaaa", LongURL: "https://a.example.com", Visits: 2},
		{Code: "bbbbbb", LongURL: "https://b.example.com", Visits: 2},
	}, d.TopLinks)
	assert.Equal(t, []service.CountryCount{
		{Country: "Romania", Count: 3},
		{Country: "Germany", Count: 1},
		{Country: geo.Unknown, Count: 1},
	}, d.GeoData)

	require.Len(t, d.ChartData, 7)
	assert.Equal(t, "2025-02-23", d.ChartData[0].Date)
	assert.Equal(t, "2025-03-01", d.ChartData[6].Date)
	assert.Equal(t, 2, d.ChartData[6].Visits)
	assert.Equal(t, 1, d.ChartData[5].Visits)
	assert.Zero(t, d.ChartData[0].Visits)
}

func TestShorten_ConcurrentSameURL(t *testing.T) {
	e := newEngine(t, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	codes := make([]string, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := e.svc.Shorten(ctx, "alice", "https://example.com")
			assert.NoError(t, err)
			codes[i] = res.Code
		}(i)
	}
	wg.Wait()

	// Whichever code the index settled on resolves to the URL, as does any
	// duplicate produced by the race.
	surfaced, err := e.svc.Shorten(ctx, "alice", "https://example.com")
	require.NoError(t, err)
	assert.True(t, surfaced.Existing)
	assert.Contains(t, codes, surfaced.Code)

	for _, code := range append(codes, surfaced.Code) {
		target, err := e.svc.ResolveAndTrack(ctx, code, "127.0.0.1", "")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", target)
	}
}
