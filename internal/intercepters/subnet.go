package intercepters

import (
	"context"
	"net"
	"slices"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// WithTrustedSubnet rejects calls to the guarded methods unless the client
// address lies in subnet. The address comes from the "x-real-ip" metadata,
// falling back to the transport peer. A nil subnet disables the check.
func WithTrustedSubnet(subnet *net.IPNet, guarded ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if subnet == nil || !slices.Contains(guarded, info.FullMethod) {
			return handler(ctx, req)
		}

		ip := clientIP(ctx)
		if ip == nil || !subnet.Contains(ip) {
			return nil, status.Error(codes.PermissionDenied, "address not in trusted subnet")
		}

		return handler(ctx, req)
	}
}

func clientIP(ctx context.Context) net.IP {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ips := md.Get("x-real-ip"); len(ips) > 0 {
			return net.ParseIP(strings.TrimSpace(ips[0]))
		}
	}

	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return nil
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		host = p.Addr.String()
	}
	return net.ParseIP(host)
}
