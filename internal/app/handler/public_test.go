package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/shorturlproject/shorturl/internal/app/handler"
	"github.com/shorturlproject/shorturl/internal/link"
	"github.com/shorturlproject/shorturl/internal/mocks"
)

func TestPublicHandler_Root(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.NewPublic(nil, nop).Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend ONLINE", rec.Body.String())
}

func TestPublicHandler_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockLinkServiceIface(ctrl)
	h := handler.NewPublic(mockService, nop)

	mockService.EXPECT().PingContext(gomock.Any()).Return(nil)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	mockService.EXPECT().PingContext(gomock.Any()).Return(errors.New("dial tcp: refused"))
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPublicHandler_Redirect(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		mockTarget   string
		mockErr      error
		expectedCode int
		expectedLoc  string
	}{
		{name: "active", code: "abc123", mockTarget: "https://example.com", expectedCode: http.StatusFound, expectedLoc: "https://example.com"},
		{name: "unknown", code: "nope00", mockErr: link.ErrNotFound, expectedCode: http.StatusNotFound},
		{name: "soft deleted", code: "gone00", mockErr: link.ErrInactive, expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockLinkServiceIface(ctrl)
			mockService.EXPECT().
				ResolveAndTrack(gomock.Any(), tt.code, "203.0.113.9", "test-agent").
				Return(tt.mockTarget, tt.mockErr)

			req := withCode(httptest.NewRequest(http.MethodGet, "/"+tt.code, nil), tt.code)
			req.RemoteAddr = "203.0.113.9:40000"
			req.Header.Set("User-Agent", "test-agent")
			rec := httptest.NewRecorder()

			handler.NewPublic(mockService, nop).Redirect(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, tt.expectedLoc, rec.Header().Get("Location"))
		})
	}
}
