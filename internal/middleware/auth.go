package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/models"
)

// ContextKey is a custom type used for keys in the context.
type ContextKey string

// PrincipalKey is the context key holding the authenticated service.Principal.
const PrincipalKey ContextKey = "principal"

// InjectPrincipal returns req with p attached to its context.
func InjectPrincipal(req *http.Request, p service.Principal) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), PrincipalKey, p))
}

// PrincipalFrom returns the caller attached by WithBearer, if any.
func PrincipalFrom(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(service.Principal)
	return p, ok && p.Username != ""
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithBearer attaches the principal of a valid bearer token to the request.
// Requests without a usable token pass through anonymously; RequireAuth
// rejects them where a caller is needed.
func WithBearer(auth service.AuthIface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseRawJWT(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, InjectPrincipal(r, claims.Principal()))
		})
	}
}

// RequireAuth responds 401 unless WithBearer authenticated the request.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin responds 401 to anonymous and 403 to non-admin callers.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !p.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
