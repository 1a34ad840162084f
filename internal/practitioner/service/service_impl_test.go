package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	licenserepository "github.com/medcouncil/registry/internal/license/repository"
	"github.com/medcouncil/registry/internal/practitioner/domain"
	"github.com/medcouncil/registry/internal/practitioner/repository"
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

	err = db.AutoMigrate(&licensedomain.License{}, &domain.Practitioner{})
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

func seedLicense(t *testing.T, db *gorm.DB, node *snowflake.Node, number string) licensedomain.License {
	t.Helper()

	license := licensedomain.License{
		ID:            node.Generate(),
		LicenseNumber: number,
		Type:          licensedomain.LicenseTypePractitioner,
		Status:        licensedomain.LicenseStatusActive,
		Metadata:      datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&license).Error)
	return license
}

func TestCreate_PropagatesNameToLicense(t *testing.T) {
	svc, db, node := setupService(t)
	seedLicense(t, db, node, "L1")

	first := "John"
	last := "Doe"
	created, err := svc.Create(context.Background(), domain.CreatePractitionerRequest{
		LicenseNumber: "L1",
		FirstName:     &first,
		LastName:      &last,
	})
	require.NoError(t, err)
	assert.Len(t, created.UUID, 36)

	var license licensedomain.License
	require.NoError(t, db.Where("license_number = ?", "L1").First(&license).Error)
	assert.Equal(t, "John Doe", license.Name)
}

func TestUpdate_MiddleNameChangesLicenseName(t *testing.T) {
	svc, db, node := setupService(t)
	seedLicense(t, db, node, "L1")

	first := "John"
	last := "Doe"
	created, err := svc.Create(context.Background(), domain.CreatePractitionerRequest{
		LicenseNumber: "L1",
		FirstName:     &first,
		LastName:      &last,
	})
	require.NoError(t, err)

	middle := "K"
	_, err = svc.Update(context.Background(), created.UUID, domain.UpdatePractitionerRequest{
		MiddleName: &middle,
	})
	require.NoError(t, err)

	var license licensedomain.License
	require.NoError(t, db.Where("license_number = ?", "L1").First(&license).Error)
	assert.Equal(t, "John K Doe", license.Name)
}

func TestUpdate_NonNameFieldLeavesLicenseNameAlone(t *testing.T) {
	svc, db, node := setupService(t)
	seedLicense(t, db, node, "L1")

	first := "Ama"
	last := "Mensah"
	created, err := svc.Create(context.Background(), domain.CreatePractitionerRequest{
		LicenseNumber: "L1",
		FirstName:     &first,
		LastName:      &last,
	})
	require.NoError(t, err)

	// Scribble on the license name so any propagation would be visible.
	require.NoError(t, db.Exec(`UPDATE licenses SET name = 'sentinel' WHERE license_number = 'L1'`).Error)

	specialty := "Dermatology"
	_, err = svc.Update(context.Background(), created.UUID, domain.UpdatePractitionerRequest{
		Specialty: &specialty,
	})
	require.NoError(t, err)

	var license licensedomain.License
	require.NoError(t, db.Where("license_number = ?", "L1").First(&license).Error)
	assert.Equal(t, "sentinel", license.Name)
}

func TestCreate_NoLicenseRowIsSilentNoOp(t *testing.T) {
	svc, _, _ := setupService(t)

	first := "Kofi"
	last := "Asante"
	_, err := svc.Create(context.Background(), domain.CreatePractitionerRequest{
		LicenseNumber: "MISSING",
		FirstName:     &first,
		LastName:      &last,
	})
	assert.NoError(t, err)
}

func TestCreate_AllNamePartsNullable(t *testing.T) {
	svc, db, node := setupService(t)
	seedLicense(t, db, node, "L2")

	_, err := svc.Create(context.Background(), domain.CreatePractitionerRequest{
		LicenseNumber: "L2",
	})
	require.NoError(t, err)

	var license licensedomain.License
	require.NoError(t, db.Where("license_number = ?", "L2").First(&license).Error)
	assert.Equal(t, "", license.Name)
}
