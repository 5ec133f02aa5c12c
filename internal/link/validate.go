package link

import (
	"net"
	"net/url"
	"strings"
)

const invalidURLMsg = "invalid URL (use http:// or https://)"

// ValidateURL checks that raw is an absolute http(s) URL with a host.
// Hosts must be an IP literal, localhost, or carry a top-level domain.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Msg: "longUrl is required"}
	}

	if strings.ContainsAny(raw, " \t\r\n") {
		return &ValidationError{Msg: invalidURLMsg}
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return &ValidationError{Msg: invalidURLMsg}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return &ValidationError{Msg: invalidURLMsg}
	}

	host := u.Hostname()
	if host == "" {
		return &ValidationError{Msg: invalidURLMsg}
	}

	if net.ParseIP(host) == nil && host != "localhost" {
		dot := strings.LastIndex(host, ".")
		if dot <= 0 || dot == len(host)-1 {
			return &ValidationError{Msg: invalidURLMsg}
		}
	}

	return nil
}
