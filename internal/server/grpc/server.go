// Package grpc serves the operator AdminService: token login, license and
// account listings, license generation and dashboard counters.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/cvmaster/internal/adminpb"
	"github.com/dmitrijs2005/cvmaster/internal/logging"
	"github.com/dmitrijs2005/cvmaster/internal/services"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address   string
	tokens    services.TokenService
	licenses  services.LicenseRegistry
	queries   services.AdminQueries
	logger    logging.Logger
	jwtSecret []byte
	limiter   *rate.Limiter
}

var _ adminpb.AdminServiceServer = (*GRPCServer)(nil)

// NewGRPCServer returns a server for address. Login calls are throttled by
// limiter; a nil limiter disables throttling.
func NewGRPCServer(a string, l logging.Logger, tokens services.TokenService, licenses services.LicenseRegistry,
	queries services.AdminQueries, secretKey string, limiter *rate.Limiter) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		tokens:    tokens,
		licenses:  licenses,
		queries:   queries,
		jwtSecret: []byte(secretKey),
		limiter:   limiter,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loginRateInterceptor, s.accessTokenInterceptor))
	adminpb.RegisterAdminServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
