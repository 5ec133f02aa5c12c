package intercepters_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/intercepters"
	"github.com/shorturlproject/shorturl/internal/middleware"
	"github.com/shorturlproject/shorturl/internal/mocks"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/shorturl.v1.Links/Shorten"}

func TestWithBearer(t *testing.T) {
	tests := []struct {
		name     string
		md       metadata.MD
		token    string
		claims   *service.Claims
		parseErr error
		wantCode codes.Code
		wantUser string
	}{
		{name: "no metadata", wantCode: codes.Unauthenticated},
		{name: "no authorization", md: metadata.Pairs("x-real-ip", "10.0.0.1"), wantCode: codes.Unauthenticated},
		{name: "wrong scheme", md: metadata.Pairs("authorization", "Basic abc"), wantCode: codes.Unauthenticated},
		{
			name:     "rejected token",
			md:       metadata.Pairs("authorization", "Bearer expired"),
			token:    "expired",
			parseErr: errors.New("token is expired"),
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "valid token",
			md:       metadata.Pairs("authorization", "Bearer good"),
			token:    "good",
			claims:   &service.Claims{Username: "alice", Role: service.RoleUser},
			wantCode: codes.OK,
			wantUser: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthIface(ctrl)
			if tt.token != "" {
				auth.EXPECT().ParseRawJWT(tt.token).Return(tt.claims, tt.parseErr)
			}

			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			var got service.Principal
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				got, _ = middleware.PrincipalFrom(ctx)
				return "ok", nil
			}

			resp, err := intercepters.WithBearer(auth)(ctx, nil, info, handler)
			if tt.wantCode != codes.OK {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, status.Code(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ok", resp)
			assert.Equal(t, tt.wantUser, got.Username)
		})
	}
}
