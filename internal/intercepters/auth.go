package intercepters

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/middleware"
)

// WithBearer authenticates every call from the "authorization" metadata
// ("Bearer <token>") and stores the caller under middleware.PrincipalKey.
func WithBearer(auth service.AuthIface) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}

		token := middleware.BearerToken(values[0])
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "malformed authorization header")
		}

		claims, err := auth.ParseRawJWT(token)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}

		ctx = context.WithValue(ctx, middleware.PrincipalKey, claims.Principal())

		return handler(ctx, req)
	}
}
