package handler

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/models"
)

// PublicHandler serves the unauthenticated endpoints.
type PublicHandler struct {
	links  service.LinkServiceIface
	logger *zap.Logger
}

func NewPublic(s service.LinkServiceIface, l *zap.Logger) *PublicHandler {
	return &PublicHandler{
		links:  s,
		logger: l,
	}
}

// Root handles GET /.
func (h *PublicHandler) Root(res http.ResponseWriter, req *http.Request) {
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.WriteHeader(http.StatusOK)
	res.Write([]byte("Backend ONLINE"))
}

// Health handles GET /api/health. It fails with 503 when the store is unreachable.
func (h *PublicHandler) Health(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.links.PingContext(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		writeError(res, http.StatusServiceUnavailable, "store unavailable")
		return
	}

	writeJSON(res, http.StatusOK, models.HealthResponse{Status: "ok"})
}

// Redirect handles GET /{code}.
func (h *PublicHandler) Redirect(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	code := chi.URLParam(req, "code")

	target, err := h.links.ResolveAndTrack(ctx, code, remoteIP(req), req.UserAgent())
	if err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	http.Redirect(res, req, target, http.StatusFound)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
