package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/adminpb"
	"github.com/dmitrijs2005/cvmaster/internal/auth"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newInterceptorServer(limiter *rate.Limiter) *GRPCServer {
	return NewGRPCServer("", logging.Nop(), nil, nil, nil, testSecret, limiter)
}

func incoming(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestAccessTokenInterceptor(t *testing.T) {
	admin, err := auth.GenerateToken("admin@cvmaster.com", "admin", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	user, err := auth.GenerateToken("ana@x.com", "user", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("admin@cvmaster.com", "admin", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("admin@cvmaster.com", "admin", []byte("other"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		ctx      context.Context
		wantCode codes.Code
		wantMsg  string
	}{
		{name: "login is public", method: adminpb.LoginFullMethodName, ctx: context.Background(), wantCode: codes.OK},
		{name: "ping is public", method: adminpb.PingFullMethodName, ctx: context.Background(), wantCode: codes.OK},
		{name: "missing token", method: adminpb.StatsFullMethodName, ctx: context.Background(), wantCode: codes.Unauthenticated, wantMsg: "missing token"},
		{name: "garbage token", method: adminpb.StatsFullMethodName, ctx: incoming("not-a-jwt"), wantCode: codes.Unauthenticated, wantMsg: common.ErrInvalidToken.Error()},
		{name: "wrong key", method: adminpb.StatsFullMethodName, ctx: incoming(foreign), wantCode: codes.Unauthenticated, wantMsg: common.ErrInvalidToken.Error()},
		{name: "expired", method: adminpb.StatsFullMethodName, ctx: incoming(expired), wantCode: codes.Unauthenticated, wantMsg: common.ErrTokenExpired.Error()},
		{name: "not admin", method: adminpb.ListAccountsFullMethodName, ctx: incoming(user), wantCode: codes.PermissionDenied},
		{name: "admin", method: adminpb.GenerateLicenseFullMethodName, ctx: incoming(admin), wantCode: codes.OK},
	}

	s := newInterceptorServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := func(ctx context.Context, req any) (any, error) {
				called = true
				return "ok", nil
			}

			_, err := s.accessTokenInterceptor(tt.ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, h)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, tt.wantCode == codes.OK, called)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, status.Convert(err).Message())
			}
		})
	}
}

func TestAccessTokenInterceptor_PutsOperatorInContext(t *testing.T) {
	token, err := auth.GenerateToken("admin@cvmaster.com", "admin", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	s := newInterceptorServer(nil)
	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = operatorFromContext(ctx)
		return nil, nil
	}

	_, err = s.accessTokenInterceptor(incoming(token), nil, &grpc.UnaryServerInfo{FullMethod: adminpb.StatsFullMethodName}, h)
	require.NoError(t, err)
	assert.Equal(t, "admin@cvmaster.com", got)
}

func TestLoginRateInterceptor(t *testing.T) {
	s := newInterceptorServer(rate.NewLimiter(rate.Every(time.Hour), 2))
	h := func(ctx context.Context, req any) (any, error) { return nil, nil }
	login := &grpc.UnaryServerInfo{FullMethod: adminpb.LoginFullMethodName}

	for range 2 {
		_, err := s.loginRateInterceptor(context.Background(), nil, login, h)
		require.NoError(t, err)
	}

	_, err := s.loginRateInterceptor(context.Background(), nil, login, h)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// other methods are never throttled
	_, err = s.loginRateInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: adminpb.StatsFullMethodName}, h)
	require.NoError(t, err)
}

func TestLoginRateInterceptor_NilLimiter(t *testing.T) {
	s := newInterceptorServer(nil)
	h := func(ctx context.Context, req any) (any, error) { return nil, nil }
	for range 10 {
		_, err := s.loginRateInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: adminpb.LoginFullMethodName}, h)
		require.NoError(t, err)
	}
}
