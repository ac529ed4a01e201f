package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cvmaster/internal/adminpb"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStatus maps service errors to gRPC status codes. Internal details are
// logged, not returned.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidCredential):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email := req.GetFields()[adminpb.FieldEmail].GetStringValue()
	password := req.GetFields()[adminpb.FieldPassword].GetStringValue()
	if email == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	token, err := s.tokens.Issue(ctx, email, password)
	if err != nil {
		s.logger.Warn(ctx, "operator login rejected", "email", email)
		return nil, s.toStatus(ctx, "login", err)
	}

	s.logger.Info(ctx, "operator logged in", "email", email)
	return structpb.NewStruct(map[string]any{adminpb.FieldAccessToken: token})
}

func (s *GRPCServer) ListLicenses(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items, err := s.queries.ListLicenses(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "list licenses", err)
	}
	l, err := adminpb.ToList(items)
	if err != nil {
		return nil, s.toStatus(ctx, "list licenses", err)
	}
	return l, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items, err := s.queries.ListAccounts(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "list accounts", err)
	}
	l, err := adminpb.ToList(items)
	if err != nil {
		return nil, s.toStatus(ctx, "list accounts", err)
	}
	return l, nil
}

func (s *GRPCServer) GenerateLicense(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	issuer, ok := operatorFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}

	lic, err := s.licenses.Generate(ctx, issuer)
	if err != nil {
		return nil, s.toStatus(ctx, "generate license", err)
	}
	s.logger.Info(ctx, "license generated", "code", lic.Code, "issuer", issuer)

	out, err := adminpb.ToStruct(lic)
	if err != nil {
		return nil, s.toStatus(ctx, "generate license", err)
	}
	return out, nil
}

func (s *GRPCServer) Stats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st, err := s.queries.Stats(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "stats", err)
	}
	out, err := adminpb.ToStruct(st)
	if err != nil {
		return nil, s.toStatus(ctx, "stats", err)
	}
	return out, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}
