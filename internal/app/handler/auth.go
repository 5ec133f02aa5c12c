package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/middleware"
	"github.com/shorturlproject/shorturl/internal/models"
)

type AuthHandler struct {
	auth   service.AuthIface
	logger *zap.Logger
}

func NewAuth(auth service.AuthIface, l *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: l,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(res http.ResponseWriter, req *http.Request) {
	h.issue(res, req, http.StatusCreated, h.auth.Register)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(res http.ResponseWriter, req *http.Request) {
	h.issue(res, req, http.StatusOK, h.auth.Login)
}

func (h *AuthHandler) issue(res http.ResponseWriter, req *http.Request, status int, fn func(context.Context, string, string) (service.Session, error)) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var body models.Credentials
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeDecodeError(res, err, h.logger)
		return
	}

	s, err := fn(ctx, body.Username, body.Password)
	if err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	writeJSON(res, status, models.AuthResponse{Token: s.Token, Username: s.Username, Role: s.Role})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(res http.ResponseWriter, req *http.Request) {
	p, ok := middleware.PrincipalFrom(req.Context())
	if !ok {
		writeError(res, http.StatusUnauthorized, "authentication required")
		return
	}

	writeJSON(res, http.StatusOK, models.MeResponse{Username: p.Username, Role: p.Role})
}
