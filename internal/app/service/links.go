package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/clock"
	"github.com/shorturlproject/shorturl/internal/geo"
	"github.com/shorturlproject/shorturl/internal/link"
)

const (
	// HistoryLimit caps the visit history returned with link stats.
	HistoryLimit = 50

	maxCodeAttempts   = 5
	topLinksLimit     = 5
	topCountriesLimit = 10
	chartDays         = 7
)

var ErrCodeSpaceExhausted = errors.New("unable to allocate a unique short code")

type ShortenResult struct {
	Code        string
	Existing    bool
	Reactivated bool
}

type OwnedLink struct {
	Code      string
	LongURL   string
	Visits    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LinkStats struct {
	link.Record
	Visits  int64
	History []link.Visit
}

type TopLink struct {
	Code    string
	LongURL string
	Visits  int64
}

type CountryCount struct {
	Country string
	Count   int
}

type DayCount struct {
	Date   string
	Visits int
}

type Dashboard struct {
	TotalLinks  int
	TotalVisits int64
	TopLinks    []TopLink
	GeoData     []CountryCount
	ChartData   []DayCount
}

// LinkService implements the link lifecycle: shorten with dedup and
// reactivation, soft delete, retargeting and visit tracking.
type LinkService struct {
	links   LinkStore
	codes   CodeGenerator
	locator geo.Locator
	clock   clock.Clock
	logger  *zap.Logger
}

func NewLinkService(links LinkStore, codes CodeGenerator, locator geo.Locator, clk clock.Clock, logger *zap.Logger) *LinkService {
	return &LinkService{
		links:   links,
		codes:   codes,
		locator: locator,
		clock:   clk,
		logger:  logger,
	}
}

func (s *LinkService) PingContext(ctx context.Context) error {
	return s.links.PingContext(ctx)
}

// Shorten returns the code for (owner, longURL), reusing or reactivating an
// existing link of the same owner before allocating a new one.
func (s *LinkService) Shorten(ctx context.Context, owner, longURL string) (ShortenResult, error) {
	if err := link.ValidateURL(longURL); err != nil {
		return ShortenResult{}, err
	}

	now := s.clock.Now()
	fp := link.Fingerprint(owner, longURL)

	code, err := s.links.LookupFingerprint(ctx, fp)
	if err != nil {
		return ShortenResult{}, fmt.Errorf("lookup fingerprint: %w", err)
	}

	if code != "" {
		res, ok, err := s.reuse(ctx, code, owner, longURL, now)
		if err != nil || ok {
			return res, err
		}

		s.logger.Info("purging dangling dedup entry", zap.String("code", code))
		if err := s.links.DropFingerprint(ctx, fp); err != nil {
			return ShortenResult{}, fmt.Errorf("drop fingerprint: %w", err)
		}
	}

	code, err = s.allocateCode(ctx)
	if err != nil {
		return ShortenResult{}, err
	}

	rec := link.New(code, owner, longURL, now)
	if err := s.links.Put(ctx, rec); err != nil {
		return ShortenResult{}, fmt.Errorf("save record: %w", err)
	}
	if err := s.links.IndexFingerprint(ctx, fp, code); err != nil {
		return ShortenResult{}, fmt.Errorf("index fingerprint: %w", err)
	}
	if err := s.links.InitCounter(ctx, code); err != nil {
		return ShortenResult{}, fmt.Errorf("init counter: %w", err)
	}
	if err := s.links.AddOwned(ctx, owner, code); err != nil {
		return ShortenResult{}, fmt.Errorf("add owned link: %w", err)
	}

	s.logger.Info("link created", zap.String("code", code), zap.String("owner", owner))
	return ShortenResult{Code: code}, nil
}

// reuse resolves an indexed code. ok is false when the index entry is
// dangling: the record is gone or no longer maps owner to longURL.
func (s *LinkService) reuse(ctx context.Context, code, owner, longURL string, now time.Time) (res ShortenResult, ok bool, err error) {
	rec, err := s.links.Get(ctx, code)
	if errors.Is(err, link.ErrNotFound) {
		return ShortenResult{}, false, nil
	}
	if err != nil {
		return ShortenResult{}, false, fmt.Errorf("load %s: %w", code, err)
	}
	if rec.LongURL != longURL || rec.Owner != owner {
		return ShortenResult{}, false, nil
	}

	res = ShortenResult{Code: code, Existing: true}

	if !rec.Active {
		if err := rec.Reactivate(now); err != nil {
			return ShortenResult{}, false, err
		}
		if err := s.links.Put(ctx, rec); err != nil {
			return ShortenResult{}, false, fmt.Errorf("save record: %w", err)
		}
		res.Reactivated = true
		s.logger.Info("link reactivated", zap.String("code", code))
	}

	if err := s.links.AddOwned(ctx, owner, code); err != nil {
		return ShortenResult{}, false, fmt.Errorf("add owned link: %w", err)
	}
	return res, true, nil
}

func (s *LinkService) allocateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return "", err
		}

		taken, err := s.links.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code %s: %w", code, err)
		}
		if !taken {
			return code, nil
		}
		s.logger.Debug("short code collision", zap.String("code", code))
	}
	return "", ErrCodeSpaceExhausted
}

// load fetches code and checks that p may manage it.
func (s *LinkService) load(ctx context.Context, code string, p Principal) (link.Record, error) {
	rec, err := s.links.Get(ctx, code)
	if err != nil {
		return link.Record{}, err
	}
	if !rec.OwnedBy(p.Username, p.IsAdmin()) {
		return link.Record{}, link.ErrForbidden
	}
	return rec, nil
}

// Remove soft-deletes code. The record, counter, history and dedup entry are
// kept so the same owner shortening the same URL reactivates it.
func (s *LinkService) Remove(ctx context.Context, code string, p Principal) error {
	rec, err := s.load(ctx, code, p)
	if err != nil {
		return err
	}

	if err := rec.SoftDelete(s.clock.Now()); err != nil {
		return err
	}
	if err := s.links.Put(ctx, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	if err := s.links.RemoveOwned(ctx, rec.Owner, code); err != nil {
		return fmt.Errorf("remove owned link: %w", err)
	}

	s.logger.Info("link deleted", zap.String("code", code), zap.String("by", p.Username))
	return nil
}

// Update points code at longURL. The dedup entry of the previous URL is
// released when it still refers to code, and the new URL is indexed.
func (s *LinkService) Update(ctx context.Context, code string, p Principal, longURL string) (link.Record, error) {
	rec, err := s.load(ctx, code, p)
	if err != nil {
		return link.Record{}, err
	}
	if !rec.Active {
		return link.Record{}, link.ErrInactive
	}
	if err := link.ValidateURL(longURL); err != nil {
		return link.Record{}, err
	}

	oldFP := link.Fingerprint(rec.Owner, rec.LongURL)
	indexed, err := s.links.LookupFingerprint(ctx, oldFP)
	if err != nil {
		return link.Record{}, fmt.Errorf("lookup fingerprint: %w", err)
	}
	if indexed == code {
		if err := s.links.DropFingerprint(ctx, oldFP); err != nil {
			return link.Record{}, fmt.Errorf("drop fingerprint: %w", err)
		}
	}

	rec.Retarget(longURL, s.clock.Now())
	if err := s.links.Put(ctx, rec); err != nil {
		return link.Record{}, fmt.Errorf("save record: %w", err)
	}
	if err := s.links.IndexFingerprint(ctx, link.Fingerprint(rec.Owner, longURL), code); err != nil {
		return link.Record{}, fmt.Errorf("index fingerprint: %w", err)
	}

	return rec, nil
}

// ResolveAndTrack returns the target of code and records the visit: the
// counter first, then a history entry with a best-effort location.
func (s *LinkService) ResolveAndTrack(ctx context.Context, code, ip, userAgent string) (string, error) {
	rec, err := s.links.Get(ctx, code)
	if err != nil {
		return "", err
	}
	if !rec.Active {
		return "", link.ErrInactive
	}
	if rec.LongURL == "" {
		return "", link.ErrNotFound
	}

	if _, err := s.links.IncrVisits(ctx, code); err != nil {
		return "", fmt.Errorf("count visit: %w", err)
	}

	loc := geo.Resolve(ctx, s.locator, ip, s.logger)
	visit := link.Visit{
		Timestamp: s.clock.Now(),
		IP:        ip,
		Country:   loc.Country,
		City:      loc.City,
		UserAgent: userAgent,
	}
	if err := s.links.AppendVisit(ctx, code, visit); err != nil {
		s.logger.Warn("failed to record visit", zap.String("code", code), zap.Error(err))
	}

	return rec.LongURL, nil
}

// ListOwned returns the active links of owner, newest first.
func (s *LinkService) ListOwned(ctx context.Context, owner string) ([]OwnedLink, error) {
	codes, err := s.links.Owned(ctx, owner)
	if err != nil {
		return nil, err
	}

	items := make([]OwnedLink, 0, len(codes))
	for _, code := range codes {
		rec, err := s.links.Get(ctx, code)
		if errors.Is(err, link.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !rec.Active || rec.Owner != owner {
			continue
		}

		visits, err := s.links.Visits(ctx, code)
		if err != nil {
			return nil, err
		}

		items = append(items, OwnedLink{
			Code:      code,
			LongURL:   rec.LongURL,
			Visits:    visits,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].Code < items[j].Code
	})
	return items, nil
}

// Stats returns the counter and latest history of code. Authorization is
// checked before activity, so soft-deleted links keep reporting to their
// owner and to admins.
func (s *LinkService) Stats(ctx context.Context, code string, p Principal) (LinkStats, error) {
	rec, err := s.load(ctx, code, p)
	if err != nil {
		return LinkStats{}, err
	}

	visits, err := s.links.Visits(ctx, code)
	if err != nil {
		return LinkStats{}, err
	}

	history, err := s.links.History(ctx, code, HistoryLimit)
	if err != nil {
		return LinkStats{}, err
	}

	return LinkStats{Record: rec, Visits: visits, History: history}, nil
}

// Dashboard aggregates every allocated link. TotalLinks and TopLinks only
// consider active links; visit totals, countries and the daily chart cover
// all recorded traffic.
func (s *LinkService) Dashboard(ctx context.Context) (Dashboard, error) {
	codes, err := s.links.Codes(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	now := s.clock.Now()
	firstDay := startOfDay(now).AddDate(0, 0, -(chartDays - 1))

	days := make(map[string]int, chartDays)
	countries := make(map[string]int)
	var d Dashboard
	var top []TopLink

	for _, code := range codes {
		rec, err := s.links.Get(ctx, code)
		if errors.Is(err, link.ErrNotFound) {
			continue
		}
		if err != nil {
			return Dashboard{}, err
		}

		visits, err := s.links.Visits(ctx, code)
		if err != nil {
			return Dashboard{}, err
		}
		d.TotalVisits += visits

		if rec.Active {
			d.TotalLinks++
			top = append(top, TopLink{Code: code, LongURL: rec.LongURL, Visits: visits})
		}

		history, err := s.links.History(ctx, code, 0)
		if err != nil {
			return Dashboard{}, err
		}
		for _, v := range history {
			country := v.Country
			if country == "" {
				country = geo.Unknown
			}
			countries[country]++

			if !v.Timestamp.Before(firstDay) {
				days[v.Timestamp.UTC().Format(time.DateOnly)]++
			}
		}
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Visits != top[j].Visits {
			return top[i].Visits > top[j].Visits
		}
		return top[i].Code < top[j].Code
	})
	if len(top) > topLinksLimit {
		top = top[:topLinksLimit]
	}
	d.TopLinks = top

	d.GeoData = make([]CountryCount, 0, len(countries))
	for c, n := range countries {
		d.GeoData = append(d.GeoData, CountryCount{Country: c, Count: n})
	}
	sort.Slice(d.GeoData, func(i, j int) bool {
		if d.GeoData[i].Count != d.GeoData[j].Count {
			return d.GeoData[i].Count > d.GeoData[j].Count
		}
		return d.GeoData[i].Country < d.GeoData[j].Country
	})
	if len(d.GeoData) > topCountriesLimit {
		d.GeoData = d.GeoData[:topCountriesLimit]
	}

	d.ChartData = make([]DayCount, 0, chartDays)
	for i := 0; i < chartDays; i++ {
		day := firstDay.AddDate(0, 0, i).Format(time.DateOnly)
		d.ChartData = append(d.ChartData, DayCount{Date: day, Visits: days[day]})
	}

	return d, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
