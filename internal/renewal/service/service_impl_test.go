package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	licenserepository "github.com/medcouncil/registry/internal/license/repository"
	"github.com/medcouncil/registry/internal/renewal/domain"
	"github.com/medcouncil/registry/internal/renewal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB, licensedomain.License) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&licensedomain.License{}, &domain.LicenseRenewal{})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	license := licensedomain.License{
		ID:            node.Generate(),
		LicenseNumber: "L1",
		Type:          licensedomain.LicenseTypePractitioner,
		Status:        licensedomain.LicenseStatusActive,
		Metadata:      datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&license).Error)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		LicenseRepo: licenserepository.Provide(),
	})
	return svc, db, license
}

func createRenewal(t *testing.T, svc domain.Service, licenseUUID string, start, expiry time.Time) domain.LicenseRenewal {
	t.Helper()

	renewal, err := svc.Create(context.Background(), domain.CreateRenewalRequest{
		LicenseUUID: licenseUUID,
		StartDate:   start,
		Expiry:      expiry,
		Status:      "approved",
	})
	require.NoError(t, err)
	return renewal
}

func loadLicense(t *testing.T, db *gorm.DB, uuid string) licensedomain.License {
	t.Helper()

	var license licensedomain.License
	require.NoError(t, db.Where("uuid = ?", uuid).First(&license).Error)
	return license
}

func TestSnapshot_LatestByInsertionOrderNotDates(t *testing.T) {
	svc, db, license := setupService(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	createRenewal(t, svc, license.UUID, base, base.AddDate(1, 0, 0))
	createRenewal(t, svc, license.UUID, base.AddDate(1, 0, 0), base.AddDate(2, 0, 0))

	// Back-dated row inserted last still wins the snapshot.
	backStart := base.AddDate(-1, 0, 0)
	backExpiry := base
	createRenewal(t, svc, license.UUID, backStart, backExpiry)

	got := loadLicense(t, db, license.UUID)
	require.NotNil(t, got.LastRenewalStart)
	require.NotNil(t, got.LastRenewalExpiry)
	assert.True(t, got.LastRenewalStart.Equal(backStart))
	assert.True(t, got.LastRenewalExpiry.Equal(backExpiry))
}

func TestSnapshot_DeleteRevertsToPreviousRow(t *testing.T) {
	svc, db, license := setupService(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := createRenewal(t, svc, license.UUID, base, base.AddDate(1, 0, 0))
	second := createRenewal(t, svc, license.UUID, base.AddDate(1, 0, 0), base.AddDate(2, 0, 0))
	third := createRenewal(t, svc, license.UUID, base.AddDate(2, 0, 0), base.AddDate(3, 0, 0))

	require.NoError(t, svc.Delete(context.Background(), third.UUID))

	got := loadLicense(t, db, license.UUID)
	require.NotNil(t, got.LastRenewalStart)
	assert.True(t, got.LastRenewalStart.Equal(second.StartDate))

	require.NoError(t, svc.Delete(context.Background(), second.UUID))

	got = loadLicense(t, db, license.UUID)
	require.NotNil(t, got.LastRenewalStart)
	assert.True(t, got.LastRenewalStart.Equal(first.StartDate))
}

func TestSnapshot_DeletingLastRowNullsAllFields(t *testing.T) {
	svc, db, license := setupService(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	only := createRenewal(t, svc, license.UUID, base, base.AddDate(1, 0, 0))

	require.NoError(t, svc.Delete(context.Background(), only.UUID))

	got := loadLicense(t, db, license.UUID)
	assert.Nil(t, got.LastRenewalStart)
	assert.Nil(t, got.LastRenewalExpiry)
	assert.Nil(t, got.LastRenewalStatus)
}

func TestUpdate_DoesNotResyncSnapshot(t *testing.T) {
	svc, db, license := setupService(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	renewal := createRenewal(t, svc, license.UUID, base, base.AddDate(1, 0, 0))

	newExpiry := base.AddDate(5, 0, 0)
	_, err := svc.Update(context.Background(), renewal.UUID, domain.UpdateRenewalRequest{
		Expiry: &newExpiry,
	})
	require.NoError(t, err)

	got := loadLicense(t, db, license.UUID)
	require.NotNil(t, got.LastRenewalExpiry)
	assert.True(t, got.LastRenewalExpiry.Equal(base.AddDate(1, 0, 0)))

	// The explicit resync picks up the edited row.
	require.NoError(t, svc.ResyncSnapshot(context.Background(), license.UUID))

	got = loadLicense(t, db, license.UUID)
	require.NotNil(t, got.LastRenewalExpiry)
	assert.True(t, got.LastRenewalExpiry.Equal(newExpiry))
}

func TestCreate_UnknownLicenseRejected(t *testing.T) {
	svc, _, _ := setupService(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), domain.CreateRenewalRequest{
		LicenseUUID: "00000000-0000-0000-0000-000000000000",
		StartDate:   base,
		Expiry:      base.AddDate(1, 0, 0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLicense)
}
