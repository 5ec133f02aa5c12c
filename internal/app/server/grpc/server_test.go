package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcapi "github.com/shorturlproject/shorturl/internal/app/server/grpc"
	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/link"
	"github.com/shorturlproject/shorturl/internal/mocks"
)

var (
	alice = service.Principal{Username: "alice", Role: service.RoleUser}
	root  = service.Principal{Username: "root", Role: service.RoleAdmin}
)

type fixture struct {
	links  *mocks.MockLinkServiceIface
	auth   *mocks.MockAuthIface
	client *grpcapi.LinksClient
}

func setup(t *testing.T, subnet *net.IPNet) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		links: mocks.NewMockLinkServiceIface(ctrl),
		auth:  mocks.NewMockAuthIface(ctrl),
	}

	lis := bufconn.Listen(1 << 20)
	srv := grpcapi.New(f.links, f.auth, subnet, zap.NewNop(), 0)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	f.client = grpcapi.NewLinksClient(conn)
	return f
}

// as returns a context carrying a bearer token for p.
func (f *fixture) as(p service.Principal, kv ...string) context.Context {
	token := "token-" + p.Username
	f.auth.EXPECT().ParseRawJWT(token).Return(&service.Claims{Username: p.Username, Role: p.Role}, nil)

	pairs := append([]string{"authorization", "Bearer " + token}, kv...)
	return metadata.NewOutgoingContext(context.Background(), metadata.Pairs(pairs...))
}

func TestShorten(t *testing.T) {
	f := setup(t, nil)

	f.links.EXPECT().
		Shorten(gomock.Any(), "alice", "https://example.com").
		Return(service.ShortenResult{Code: "abc123", Existing: true}, nil)

	out, err := f.client.Shorten(f.as(alice), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", out.GetFields()["shortCode"].GetStringValue())
	assert.True(t, out.GetFields()["existing"].GetBoolValue())
	assert.False(t, out.GetFields()["reactivated"].GetBoolValue())
}

func TestShorten_Unauthenticated(t *testing.T) {
	f := setup(t, nil)

	_, err := f.client.Shorten(context.Background(), "https://example.com")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{name: "validation", err: &link.ValidationError{Msg: "invalid URL (use http:// or https://)"}, code: codes.InvalidArgument, msg: "invalid URL (use http:// or https://)"},
		{name: "forbidden", err: link.ErrForbidden, code: codes.PermissionDenied},
		{name: "inactive", err: link.ErrInactive, code: codes.NotFound, msg: "link is inactive"},
		{name: "not found", err: link.ErrNotFound, code: codes.NotFound, msg: "link not found"},
		{name: "storage", err: errors.New("redis down"), code: codes.Internal, msg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, nil)
			f.links.EXPECT().Update(gomock.Any(), "abc123", alice, "not-a-url").Return(link.Record{}, tt.err)

			_, err := f.client.UpdateLink(f.as(alice), "abc123", "not-a-url")
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			if tt.msg != "" {
				assert.Equal(t, tt.msg, st.Message())
			}
		})
	}
}

func TestListLinks(t *testing.T) {
	f := setup(t, nil)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	f.links.EXPECT().ListOwned(gomock.Any(), "alice").Return([]service.OwnedLink{
		{Code: "abc123", LongURL: "https://example.com", Visits: 3, CreatedAt: created, UpdatedAt: created},
	}, nil)

	out, err := f.client.ListLinks(f.as(alice))
	require.NoError(t, err)

	items := out.GetFields()["items"].GetListValue().GetValues()
	require.Len(t, items, 1)
	item := items[0].GetStructValue().GetFields()
	assert.Equal(t, "abc123", item["code"].GetStringValue())
	assert.Equal(t, float64(3), item["visits"].GetNumberValue())
	assert.Equal(t, "2025-03-01T12:00:00Z", item["createdAt"].GetStringValue())
}

func TestDeleteLink(t *testing.T) {
	f := setup(t, nil)
	f.links.EXPECT().Remove(gomock.Any(), "abc123", alice).Return(nil)

	out, err := f.client.DeleteLink(f.as(alice), "abc123")
	require.NoError(t, err)
	assert.True(t, out.GetFields()["ok"].GetBoolValue())
}

func TestDashboard(t *testing.T) {
	t.Run("non admin", func(t *testing.T) {
		f := setup(t, nil)

		_, err := f.client.Dashboard(f.as(alice))
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("admin", func(t *testing.T) {
		f := setup(t, nil)
		f.links.EXPECT().Dashboard(gomock.Any()).Return(service.Dashboard{
			TotalLinks:  2,
			TotalVisits: 9,
			TopLinks:    []service.TopLink{{Code: "abc123", LongURL: "https://example.com", Visits: 9}},
			GeoData:     []service.CountryCount{{Country: "Unknown", Count: 9}},
			ChartData:   []service.DayCount{{Date: "2025-03-01", Visits: 9}},
		}, nil)

		out, err := f.client.Dashboard(f.as(root))
		require.NoError(t, err)
		assert.Equal(t, float64(2), out.GetFields()["totalLinks"].GetNumberValue())
		assert.Len(t, out.GetFields()["topLinks"].GetListValue().GetValues(), 1)
	})

	t.Run("outside trusted subnet", func(t *testing.T) {
		_, subnet, _ := net.ParseCIDR("10.0.0.0/8")
		f := setup(t, subnet)

		ctx := metadata.NewOutgoingContext(context.Background(), metadata.Pairs("authorization", "Bearer token-root", "x-real-ip", "192.168.0.1"))
		_, err := f.client.Dashboard(ctx)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("inside trusted subnet", func(t *testing.T) {
		_, subnet, _ := net.ParseCIDR("10.0.0.0/8")
		f := setup(t, subnet)
		f.links.EXPECT().Dashboard(gomock.Any()).Return(service.Dashboard{}, nil)

		_, err := f.client.Dashboard(f.as(root, "x-real-ip", "10.2.3.4"))
		assert.NoError(t, err)
	})
}
