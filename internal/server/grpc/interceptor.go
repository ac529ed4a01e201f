package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cvmaster/internal/adminpb"
	"github.com/dmitrijs2005/cvmaster/internal/auth"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const operatorKey ctxKey = "operator"

// public methods skip the access token check.
var public = map[string]bool{
	adminpb.LoginFullMethodName: true,
	adminpb.PingFullMethodName:  true,
}

// operatorFromContext returns the email of the authenticated operator.
func operatorFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(operatorKey).(string)
	return v, ok && v != ""
}

func (s *GRPCServer) loginRateInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod == adminpb.LoginFullMethodName && s.limiter != nil && !s.limiter.Allow() {
		s.logger.Warn(ctx, "login throttled")
		return nil, status.Error(codes.ResourceExhausted, common.ErrTooManyRequests.Error())
	}
	return handler(ctx, req)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if public[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}
	if claims.Role != string(models.RoleAdmin) {
		return nil, status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	}

	ctx = context.WithValue(ctx, operatorKey, claims.Subject)
	return handler(ctx, req)
}
