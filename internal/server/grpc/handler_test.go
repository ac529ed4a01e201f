package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/cvmaster/internal/adminpb"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func login(t *testing.T, conn *grpc.ClientConn, email, password string) (string, error) {
	t.Helper()
	req, err := structpb.NewStruct(map[string]any{adminpb.FieldEmail: email, adminpb.FieldPassword: password})
	require.NoError(t, err)

	out := &structpb.Struct{}
	if err := conn.Invoke(context.Background(), adminpb.LoginFullMethodName, req, out); err != nil {
		return "", err
	}
	return out.GetFields()[adminpb.FieldAccessToken].GetStringValue(), nil
}

func TestAdminService_RoundTrip(t *testing.T) {
	st := newTestStack(t, nil)
	conn := dial(t, st.srv)

	require.NoError(t, conn.Invoke(context.Background(), adminpb.PingFullMethodName, &emptypb.Empty{}, &emptypb.Empty{}))

	token, err := login(t, conn, "admin@cvmaster.com", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	ctx := withToken(context.Background(), token)

	generated := &structpb.Struct{}
	require.NoError(t, conn.Invoke(ctx, adminpb.GenerateLicenseFullMethodName, &emptypb.Empty{}, generated))
	var lic models.License
	require.NoError(t, adminpb.FromStruct(generated, &lic))
	assert.Regexp(t, `^CV-[A-Z0-9]{8}$`, lic.Code)
	assert.Equal(t, "admin@cvmaster.com", lic.CreatedBy)
	assert.Equal(t, models.LicenseActive, lic.Status)

	_, err = st.dir.Register(context.Background(), "Ana", "ana@x.com", "pw", lic.Code)
	require.NoError(t, err)

	licList := &structpb.ListValue{}
	require.NoError(t, conn.Invoke(ctx, adminpb.ListLicensesFullMethodName, &emptypb.Empty{}, licList))
	lics, err := adminpb.FromList[models.License](licList)
	require.NoError(t, err)
	require.Len(t, lics, 1)
	assert.Equal(t, "ana@x.com", lics[0].UsedBy)

	accList := &structpb.ListValue{}
	require.NoError(t, conn.Invoke(ctx, adminpb.ListAccountsFullMethodName, &emptypb.Empty{}, accList))
	accs, err := adminpb.FromList[models.Account](accList)
	require.NoError(t, err)
	require.Len(t, accs, 2)

	statsOut := &structpb.Struct{}
	require.NoError(t, conn.Invoke(ctx, adminpb.StatsFullMethodName, &emptypb.Empty{}, statsOut))
	var stats models.Stats
	require.NoError(t, adminpb.FromStruct(statsOut, &stats))
	assert.Equal(t, models.Stats{Accounts: 2, Admins: 1, ActiveLicenses: 0, UsedLicenses: 1}, stats)
}

func TestAdminService_LoginErrors(t *testing.T) {
	st := newTestStack(t, nil)
	conn := dial(t, st.srv)

	_, err := login(t, conn, "admin@cvmaster.com", "wrong")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = login(t, conn, "nobody@x.com", "pw")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = login(t, conn, "", "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	lic, err := st.licenses.Generate(context.Background(), "admin@cvmaster.com")
	require.NoError(t, err)
	_, err = st.dir.Register(context.Background(), "Ana", "ana@x.com", "pw", lic.Code)
	require.NoError(t, err)

	_, err = login(t, conn, "ana@x.com", "pw")
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Equal(t, common.ErrorForbidden.Error(), status.Convert(err).Message())
}

func TestAdminService_RequiresToken(t *testing.T) {
	st := newTestStack(t, nil)
	conn := dial(t, st.srv)

	err := conn.Invoke(context.Background(), adminpb.StatsFullMethodName, &emptypb.Empty{}, &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
