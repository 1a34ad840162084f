package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/facility/domain"
	"github.com/medcouncil/registry/internal/facility/repository"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	licenserepository "github.com/medcouncil/registry/internal/license/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&licensedomain.License{}, &domain.Facility{})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		LicenseRepo: licenserepository.Provide(),
	})
	return svc, db, node
}

func TestCreate_PropagatesFacilityNameToLicense(t *testing.T) {
	svc, db, node := setupService(t)

	license := licensedomain.License{
		ID:            node.Generate(),
		LicenseNumber: "F100",
		Type:          licensedomain.LicenseTypeFacility,
		Status:        licensedomain.LicenseStatusActive,
		Metadata:      datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&license).Error)

	created, err := svc.Create(context.Background(), domain.CreateFacilityRequest{
		LicenseNumber: "F100",
		Name:          "Ridge Medical Centre",
		Region:        "Greater Accra",
	})
	require.NoError(t, err)
	assert.Equal(t, "ridge-medical-centre", created.Slug)

	var got licensedomain.License
	require.NoError(t, db.Where("license_number = ?", "F100").First(&got).Error)
	assert.Equal(t, "Ridge Medical Centre", got.Name)
}

func TestUpdate_RenamePropagatesAndReslugs(t *testing.T) {
	svc, db, node := setupService(t)

	license := licensedomain.License{
		ID:            node.Generate(),
		LicenseNumber: "F200",
		Type:          licensedomain.LicenseTypeFacility,
		Status:        licensedomain.LicenseStatusActive,
		Metadata:      datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&license).Error)

	created, err := svc.Create(context.Background(), domain.CreateFacilityRequest{
		LicenseNumber: "F200",
		Name:          "Old Name Clinic",
	})
	require.NoError(t, err)

	newName := "New Hope Clinic"
	updated, err := svc.Update(context.Background(), created.UUID, domain.UpdateFacilityRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-hope-clinic", updated.Slug)

	var got licensedomain.License
	require.NoError(t, db.Where("license_number = ?", "F200").First(&got).Error)
	assert.Equal(t, "New Hope Clinic", got.Name)
}
