// Package models defines the request and response data structures shared by
// the HTTP API and its client.
package models

// ShortenRequest is the body of POST /api/shorten.
type ShortenRequest struct {
	LongURL string `json:"longUrl"`
}

// ShortenResponse is returned by POST /api/shorten.
type ShortenResponse struct {
	ShortCode   string `json:"shortCode"`
	Existing    bool   `json:"existing"`
	Reactivated bool   `json:"reactivated"`
	Msg         string `json:"msg,omitempty"`
}

// Credentials is the body of the register and login endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries a freshly issued bearer token.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
