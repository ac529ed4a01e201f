// Package adminclient talks to the operator AdminService.
package adminclient

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cvmaster/internal/adminpb"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if c.accessToken != "" {
		ctx = withAccessToken(ctx, c.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects to endpointURL without transport security.
// Extra options are appended, which lets tests supply a dialer.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Login exchanges admin credentials for an access token, which is sent
// with every later call.
func (c *GRPCClient) Login(ctx context.Context, email, password string) error {
	req, err := structpb.NewStruct(map[string]any{
		adminpb.FieldEmail:    email,
		adminpb.FieldPassword: password,
	})
	if err != nil {
		return err
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, adminpb.LoginFullMethodName, req, resp); err != nil {
		return mapError(err)
	}

	token := resp.GetFields()[adminpb.FieldAccessToken].GetStringValue()
	if token == "" {
		return fmt.Errorf("login: empty access token")
	}
	c.accessToken = token
	return nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	if err := c.conn.Invoke(ctx, adminpb.PingFullMethodName, &emptypb.Empty{}, &emptypb.Empty{}); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *GRPCClient) ListLicenses(ctx context.Context) ([]models.License, error) {
	resp := &structpb.ListValue{}
	if err := c.conn.Invoke(ctx, adminpb.ListLicensesFullMethodName, &emptypb.Empty{}, resp); err != nil {
		return nil, mapError(err)
	}
	return adminpb.FromList[models.License](resp)
}

func (c *GRPCClient) ListAccounts(ctx context.Context) ([]models.Account, error) {
	resp := &structpb.ListValue{}
	if err := c.conn.Invoke(ctx, adminpb.ListAccountsFullMethodName, &emptypb.Empty{}, resp); err != nil {
		return nil, mapError(err)
	}
	return adminpb.FromList[models.Account](resp)
}

func (c *GRPCClient) GenerateLicense(ctx context.Context) (*models.License, error) {
	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, adminpb.GenerateLicenseFullMethodName, &emptypb.Empty{}, resp); err != nil {
		return nil, mapError(err)
	}
	var lic models.License
	if err := adminpb.FromStruct(resp, &lic); err != nil {
		return nil, err
	}
	return &lic, nil
}

func (c *GRPCClient) Stats(ctx context.Context) (*models.Stats, error) {
	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, adminpb.StatsFullMethodName, &emptypb.Empty{}, resp); err != nil {
		return nil, mapError(err)
	}
	var st models.Stats
	if err := adminpb.FromStruct(resp, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrTokenExpired.Error() {
			return common.ErrTokenExpired
		}
		return common.ErrorUnauthorized
	case codes.PermissionDenied:
		return common.ErrorForbidden
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.ResourceExhausted:
		return common.ErrTooManyRequests
	case codes.Unavailable, codes.DeadlineExceeded:
		return common.ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
