package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the link service.
const ServiceName = "shorturl.v1.Links"

// Full method names, as seen by interceptors.
const (
	MethodShorten    = "/" + ServiceName + "/Shorten"
	MethodListLinks  = "/" + ServiceName + "/ListLinks"
	MethodUpdateLink = "/" + ServiceName + "/UpdateLink"
	MethodDeleteLink = "/" + ServiceName + "/DeleteLink"
	MethodDashboard  = "/" + ServiceName + "/Dashboard"
)

// LinksServer is the server API of shorturl.v1.Links. Requests and responses
// are free-form structs whose fields mirror the JSON bodies of the HTTP API.
type LinksServer interface {
	Shorten(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLinks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateLink(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteLink(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Dashboard(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(LinksServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LinksServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LinksServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes shorturl.v1.Links for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LinksServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Shorten", LinksServer.Shorten),
		unary("ListLinks", LinksServer.ListLinks),
		unary("UpdateLink", LinksServer.UpdateLink),
		unary("DeleteLink", LinksServer.DeleteLink),
		unary("Dashboard", LinksServer.Dashboard),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shorturl/v1/links.proto",
}

// RegisterLinksServer registers srv with s.
func RegisterLinksServer(s grpc.ServiceRegistrar, srv LinksServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// LinksClient calls shorturl.v1.Links over an established connection.
type LinksClient struct {
	cc grpc.ClientConnInterface
}

func NewLinksClient(cc grpc.ClientConnInterface) *LinksClient {
	return &LinksClient{cc: cc}
}

func (c *LinksClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinksClient) Shorten(ctx context.Context, longURL string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodShorten, stringFields("longUrl", longURL), opts...)
}

func (c *LinksClient) ListLinks(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListLinks, nil, opts...)
}

func (c *LinksClient) UpdateLink(ctx context.Context, code, longURL string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateLink, stringFields("code", code, "longUrl", longURL), opts...)
}

func (c *LinksClient) DeleteLink(ctx context.Context, code string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodDeleteLink, stringFields("code", code), opts...)
}

func (c *LinksClient) Dashboard(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodDashboard, nil, opts...)
}

// stringFields builds a struct from alternating keys and values.
func stringFields(kv ...string) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		s.Fields[kv[i]] = structpb.NewStringValue(kv[i+1])
	}
	return s
}
