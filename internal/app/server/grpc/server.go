// Package grpc exposes the link service over gRPC as shorturl.v1.Links.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/intercepters"
	"github.com/shorturlproject/shorturl/internal/link"
	"github.com/shorturlproject/shorturl/internal/middleware"
)

// Server wraps the gRPC server and dependencies.
type Server struct {
	grpcServer *grpc.Server
	port       int
	logger     *zap.Logger
}

// New creates a gRPC server with logging, bearer authentication and, when
// trustedSubnet is set, an address check on the Dashboard method.
func New(links service.LinkServiceIface, auth service.AuthIface, trustedSubnet *net.IPNet, logger *zap.Logger, port int) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(intercepters.InterceptorLogger(logger)),
			intercepters.WithTrustedSubnet(trustedSubnet, MethodDashboard),
			intercepters.WithBearer(auth),
		),
	)

	RegisterLinksServer(s, &LinksService{Links: links, Logger: logger})

	return &Server{
		grpcServer: s,
		port:       port,
		logger:     logger,
	}
}

// Start listens on the configured port and serves until GracefulStop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		s.logger.Error("gRPC server failed to listen", zap.Error(err))
		return err
	}

	s.logger.Info("gRPC server listening", zap.Int("port", s.port))
	return s.Serve(lis)
}

// Serve accepts connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// GracefulStop shuts down the server gracefully.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// LinksService implements LinksServer on top of the link service.
type LinksService struct {
	Links  service.LinkServiceIface
	Logger *zap.Logger
}

func (s *LinksService) principal(ctx context.Context) (service.Principal, error) {
	p, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return service.Principal{}, status.Error(codes.Unauthenticated, "authentication required")
	}
	return p, nil
}

func (s *LinksService) Shorten(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.Links.Shorten(ctx, p.Username, field(in, "longUrl"))
	if err != nil {
		return nil, s.toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"shortCode":   r.Code,
		"existing":    r.Existing,
		"reactivated": r.Reactivated,
	})
}

func (s *LinksService) ListLinks(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	owned, err := s.Links.ListOwned(ctx, p.Username)
	if err != nil {
		return nil, s.toStatus(err)
	}

	items := make([]any, 0, len(owned))
	for _, l := range owned {
		items = append(items, map[string]any{
			"code":      l.Code,
			"longUrl":   l.LongURL,
			"visits":    l.Visits,
			"createdAt": l.CreatedAt.Format(time.RFC3339),
			"updatedAt": l.UpdatedAt.Format(time.RFC3339),
		})
	}

	return structpb.NewStruct(map[string]any{"items": items})
}

func (s *LinksService) UpdateLink(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.Links.Update(ctx, field(in, "code"), p, field(in, "longUrl"))
	if err != nil {
		return nil, s.toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"code":      rec.Code,
		"longUrl":   rec.LongURL,
		"updatedAt": rec.UpdatedAt.Format(time.RFC3339),
	})
}

func (s *LinksService) DeleteLink(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Links.Remove(ctx, field(in, "code"), p); err != nil {
		return nil, s.toStatus(err)
	}

	return structpb.NewStruct(map[string]any{"ok": true})
}

func (s *LinksService) Dashboard(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, status.Error(codes.PermissionDenied, "admin access required")
	}

	d, err := s.Links.Dashboard(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	top := make([]any, 0, len(d.TopLinks))
	for _, l := range d.TopLinks {
		top = append(top, map[string]any{"code": l.Code, "longUrl": l.LongURL, "visits": l.Visits})
	}
	geoData := make([]any, 0, len(d.GeoData))
	for _, g := range d.GeoData {
		geoData = append(geoData, map[string]any{"country": g.Country, "count": g.Count})
	}
	chart := make([]any, 0, len(d.ChartData))
	for _, c := range d.ChartData {
		chart = append(chart, map[string]any{"date": c.Date, "visits": c.Visits})
	}

	return structpb.NewStruct(map[string]any{
		"totalLinks":  d.TotalLinks,
		"totalVisits": d.TotalVisits,
		"topLinks":    top,
		"geoData":     geoData,
		"chartData":   chart,
	})
}

func (s *LinksService) toStatus(err error) error {
	var ve *link.ValidationError
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Msg)
	case errors.Is(err, link.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, link.ErrForbidden):
		return status.Error(codes.PermissionDenied, link.ErrForbidden.Error())
	case errors.Is(err, link.ErrInactive):
		return status.Error(codes.NotFound, link.ErrInactive.Error())
	case errors.Is(err, link.ErrNotFound):
		return status.Error(codes.NotFound, link.ErrNotFound.Error())
	default:
		s.Logger.Error("rpc failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

func field(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}
