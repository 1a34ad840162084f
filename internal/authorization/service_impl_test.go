package authorization

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) Service {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	enforcer, err := NewEnforcer(gdb)
	require.NoError(t, err)

	return NewService(Params{
		Log:      zap.NewNop(),
		Enforcer: enforcer,
	})
}

func TestAuthorize_RoleHierarchy(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.AssignRole(ctx, "user:ama", RoleRegistrar))

	require.NoError(t, svc.Authorize(ctx, "user:ama", ObjectLicense, ActionCreate))
	require.NoError(t, svc.Authorize(ctx, "user:ama", ObjectRenewal, ActionRenewalResync))
	// Registrar inherits viewer, so finance objects are still readable.
	require.NoError(t, svc.Authorize(ctx, "user:ama", ObjectInvoice, ActionView))

	err := svc.Authorize(ctx, "user:ama", ObjectInvoice, ActionInvoiceVoid)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_AdminInheritsEverything(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.AssignRole(ctx, "user:kofi", RoleAdmin))

	require.NoError(t, svc.Authorize(ctx, "user:kofi", ObjectLicense, ActionLicenseSetStatus))
	require.NoError(t, svc.Authorize(ctx, "user:kofi", ObjectInvoice, ActionInvoiceVoid))
	require.NoError(t, svc.Authorize(ctx, "user:kofi", ObjectAPIKey, ActionAPIKeyRevoke))
}

func TestAuthorize_UnassignedSubjectDenied(t *testing.T) {
	svc := setupService(t)

	err := svc.Authorize(context.Background(), "user:nobody", ObjectLicense, ActionView)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAssignRole_UnknownRoleRejected(t *testing.T) {
	svc := setupService(t)

	err := svc.AssignRole(context.Background(), "user:ama", "role:superuser")
	require.ErrorIs(t, err, ErrInvalidRole)
}
