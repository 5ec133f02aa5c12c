// Package geo resolves client IP addresses to a country and city for visit
// analytics. Lookups are best effort: callers get Unknown on any failure.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Unknown is reported when a location cannot be determined.
const Unknown = "Unknown"

const DefaultTimeout = 1500 * time.Millisecond

// DefaultEndpoint is the public ip-api.com lookup URL.
const DefaultEndpoint = "http://ip-api.com/json/%s?fields=status,country,city"

var ErrLookupFailed = errors.New("geolocation lookup failed")

type Location struct {
	Country string
	City    string
}

// UnknownLocation is the placeholder stored when a lookup fails.
var UnknownLocation = Location{Country: Unknown, City: Unknown}

// Locator looks up the location of an IP address.
type Locator interface {
	Locate(ctx context.Context, ip string) (Location, error)
}

// HTTPLocator queries an ip-api compatible JSON endpoint. Endpoint must
// contain a single %s verb that is replaced by the IP address.
type HTTPLocator struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

func NewHTTPLocator(endpoint string, timeout time.Duration) *HTTPLocator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPLocator{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

type lookupResponse struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	City    string `json:"city"`
	Message string `json:"message"`
}

func (l *HTTPLocator) Locate(ctx context.Context, ip string) (Location, error) {
	if isLocal(ip) {
		return UnknownLocation, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(l.endpoint, ip), nil)
	if err != nil {
		return UnknownLocation, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return UnknownLocation, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownLocation, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return UnknownLocation, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if body.Status != "" && body.Status != "success" {
		return UnknownLocation, fmt.Errorf("%w: %s", ErrLookupFailed, body.Message)
	}

	loc := Location{Country: body.Country, City: body.City}
	if loc.Country == "" {
		loc.Country = Unknown
	}
	if loc.City == "" {
		loc.City = Unknown
	}
	return loc, nil
}

// Resolve runs loc and never fails: errors are logged at warn level and
// reported as UnknownLocation.
func Resolve(ctx context.Context, loc Locator, ip string, logger *zap.Logger) Location {
	if loc == nil {
		return UnknownLocation
	}

	l, err := loc.Locate(ctx, ip)
	if err != nil {
		logger.Warn("geolocation failed", zap.String("ip", ip), zap.Error(err))
		return UnknownLocation
	}
	return l
}

// Nop is a Locator that always reports UnknownLocation.
type Nop struct{}

func (Nop) Locate(context.Context, string) (Location, error) {
	return UnknownLocation, nil
}

func isLocal(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return true
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast()
}
