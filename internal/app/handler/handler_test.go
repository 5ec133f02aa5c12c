package handler_test

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/middleware"
)

var (
	nop   = zap.NewNop()
	alice = service.Principal{Username: "alice", Role: service.RoleUser}
	root  = service.Principal{Username: "root", Role: service.RoleAdmin}
)

func withCode(req *http.Request, code string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("code", code)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func asUser(req *http.Request, p service.Principal) *http.Request {
	return middleware.InjectPrincipal(req, p)
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
