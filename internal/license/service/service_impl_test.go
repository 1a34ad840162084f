package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/internal/license/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = gdb.AutoMigrate(&domain.License{})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, gdb
}

func TestCreate_DefaultsAndGeneratedUUID(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-PN-1001",
		Type:          "practitioner",
	})
	require.NoError(t, err)

	assert.Len(t, created.UUID, 36)
	assert.Equal(t, domain.LicenseStatusActive, created.Status)
	assert.Equal(t, "", created.Name)
	assert.Nil(t, created.LastRenewalStart)
	assert.Nil(t, created.LastRenewalExpiry)
	assert.Nil(t, created.LastRenewalStatus)
}

func TestCreate_PreservesClientSuppliedUUID(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		UUID:          "11111111-2222-3333-4444-555555555555",
		LicenseNumber: "MDC-PN-1002",
		Type:          "facility",
	})
	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", created.UUID)
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-PN-1003",
		Type:          "veterinary",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLicenseType)
}

func TestCreate_RejectsBlankNumber(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "   ",
		Type:          "practitioner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLicenseNumber)
}

func TestCreate_DuplicateNumberConflicts(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-PN-1004",
		Type:          "practitioner",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-PN-1004",
		Type:          "candidate",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateLicense)
}

func TestGetByNumber_TrimsAndResolves(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-FA-2001",
		Type:          "facility",
	})
	require.NoError(t, err)

	found, err := svc.GetByNumber(context.Background(), "  MDC-FA-2001  ")
	require.NoError(t, err)
	assert.Equal(t, created.UUID, found.UUID)

	_, err = svc.GetByNumber(context.Background(), "MDC-FA-9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus_Transitions(t *testing.T) {
	svc, gdb := setupService(t)

	created, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-PN-3001",
		Type:          "practitioner",
	})
	require.NoError(t, err)

	updated, err := svc.SetStatus(context.Background(), created.UUID, domain.LicenseStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, domain.LicenseStatusSuspended, updated.Status)

	var row domain.License
	require.NoError(t, gdb.Where("uuid = ?", created.UUID).First(&row).Error)
	assert.Equal(t, domain.LicenseStatusSuspended, row.Status)
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-PN-3002",
		Type:          "practitioner",
	})
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), created.UUID, domain.LicenseStatus("misplaced"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestSetStatus_UnknownLicense(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.SetStatus(context.Background(), "00000000-0000-0000-0000-000000000000", domain.LicenseStatusRevoked)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltersByTypeAndStatus(t *testing.T) {
	svc, _ := setupService(t)

	for _, seed := range []struct {
		number string
		typ    string
	}{
		{"MDC-PN-4001", "practitioner"},
		{"MDC-PN-4002", "practitioner"},
		{"MDC-FA-4003", "facility"},
	} {
		_, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
			LicenseNumber: seed.number,
			Type:          seed.typ,
		})
		require.NoError(t, err)
	}

	suspended, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
		LicenseNumber: "MDC-PN-4004",
		Type:          "practitioner",
	})
	require.NoError(t, err)
	_, err = svc.SetStatus(context.Background(), suspended.UUID, domain.LicenseStatusSuspended)
	require.NoError(t, err)

	byType, err := svc.List(context.Background(), domain.ListLicenseRequest{Type: "facility"})
	require.NoError(t, err)
	require.Len(t, byType.Licenses, 1)
	assert.Equal(t, "MDC-FA-4003", byType.Licenses[0].LicenseNumber)

	byStatus, err := svc.List(context.Background(), domain.ListLicenseRequest{Status: "suspended"})
	require.NoError(t, err)
	require.Len(t, byStatus.Licenses, 1)
	assert.Equal(t, "MDC-PN-4004", byStatus.Licenses[0].LicenseNumber)
}

func TestList_PageTokenWalksForward(t *testing.T) {
	svc, _ := setupService(t)

	for _, number := range []string{"MDC-PN-5001", "MDC-PN-5002", "MDC-PN-5003"} {
		_, err := svc.Create(context.Background(), domain.CreateLicenseRequest{
			LicenseNumber: number,
			Type:          "practitioner",
		})
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), domain.ListLicenseRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Licenses, 2)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(context.Background(), domain.ListLicenseRequest{
		PageSize:  2,
		PageToken: first.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Licenses, 1)
	assert.NotEqual(t, first.Licenses[0].LicenseNumber, second.Licenses[0].LicenseNumber)
	assert.NotEqual(t, first.Licenses[1].LicenseNumber, second.Licenses[0].LicenseNumber)
}

func TestHolderName_JoinsNonEmptyParts(t *testing.T) {
	assert.Equal(t, "John K Doe", domain.HolderName(" John ", "K", "", "Doe"))
	assert.Equal(t, "", domain.HolderName("", "  "))
}
