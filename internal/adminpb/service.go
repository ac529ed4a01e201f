// Package adminpb describes the cvmaster.admin.v1.AdminService gRPC service.
// Messages are protobuf well-known types: requests and replies carry
// domain values as structpb JSON objects.
package adminpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "cvmaster.admin.v1.AdminService"

const (
	LoginFullMethodName           = "/" + ServiceName + "/Login"
	ListLicensesFullMethodName    = "/" + ServiceName + "/ListLicenses"
	ListAccountsFullMethodName    = "/" + ServiceName + "/ListAccounts"
	GenerateLicenseFullMethodName = "/" + ServiceName + "/GenerateLicense"
	StatsFullMethodName           = "/" + ServiceName + "/Stats"
	PingFullMethodName            = "/" + ServiceName + "/Ping"
)

// Login request and reply fields.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
)

// AdminServiceServer is the server API for AdminService.
type AdminServiceServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLicenses(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	ListAccounts(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GenerateLicense(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Stats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminServiceDesc, srv)
}

// unaryHandler adapts one AdminServiceServer method to a grpc.MethodHandler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(AdminServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AdminServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AdminServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AdminServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unaryHandler(LoginFullMethodName, AdminServiceServer.Login)},
		{MethodName: "ListLicenses", Handler: unaryHandler(ListLicensesFullMethodName, AdminServiceServer.ListLicenses)},
		{MethodName: "ListAccounts", Handler: unaryHandler(ListAccountsFullMethodName, AdminServiceServer.ListAccounts)},
		{MethodName: "GenerateLicense", Handler: unaryHandler(GenerateLicenseFullMethodName, AdminServiceServer.GenerateLicense)},
		{MethodName: "Stats", Handler: unaryHandler(StatsFullMethodName, AdminServiceServer.Stats)},
		{MethodName: "Ping", Handler: unaryHandler(PingFullMethodName, AdminServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cvmaster/admin/v1/admin.proto",
}
