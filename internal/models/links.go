package models

import "time"

type LinkItem struct {
	Code      string    `json:"code"`
	LongURL   string    `json:"longUrl"`
	Visits    int64     `json:"visits"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LinksResponse is returned by GET /api/user/links.
type LinksResponse struct {
	Items []LinkItem `json:"items"`
}

// UpdateLinkRequest is the body of PUT /api/user/links/{code}.
type UpdateLinkRequest struct {
	LongURL string `json:"longUrl"`
}

type UpdateLinkResponse struct {
	Code      string    `json:"code"`
	LongURL   string    `json:"longUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Visit struct {
	Timestamp time.Time `json:"ts"`
	IP        string    `json:"ip"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	UserAgent string    `json:"userAgent"`
}

// StatsResponse is returned by GET /api/stats/{code}. History holds the
// latest visits, most recent first.
type StatsResponse struct {
	Code      string     `json:"code"`
	LongURL   string     `json:"longUrl"`
	Owner     string     `json:"owner"`
	Active    bool       `json:"active"`
	Visits    int64      `json:"visits"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
	History   []Visit    `json:"history"`
}

type TopLink struct {
	Code    string `json:"code"`
	LongURL string `json:"longUrl"`
	Visits  int64  `json:"visits"`
}

type GeoCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type ChartPoint struct {
	Date   string `json:"date"`
	Visits int    `json:"visits"`
}

// DashboardResponse is returned by GET /api/admin/dashboard.
type DashboardResponse struct {
	TotalLinks  int          `json:"totalLinks"`
	TotalVisits int64        `json:"totalVisits"`
	TopLinks    []TopLink    `json:"topLinks"`
	GeoData     []GeoCount   `json:"geoData"`
	ChartData   []ChartPoint `json:"chartData"`
}
