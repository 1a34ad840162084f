package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	facilitydomain "github.com/medcouncil/registry/internal/facility/domain"
	facilityrepository "github.com/medcouncil/registry/internal/facility/repository"
	"github.com/medcouncil/registry/internal/housemanship/domain"
	"github.com/medcouncil/registry/internal/housemanship/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&facilitydomain.Facility{},
		&domain.HousemanshipPosting{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           gdb,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repository.Provide(),
		FacilityRepo: facilityrepository.Provide(),
	})
	return svc, gdb
}

func seedFacility(t *testing.T, gdb *gorm.DB, name string) facilitydomain.Facility {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	facility := facilitydomain.Facility{
		ID:            node.Generate(),
		LicenseNumber: "FAC-" + name,
		Name:          name,
		Slug:          name,
		Metadata:      datatypes.JSONMap{},
	}
	require.NoError(t, gdb.Create(&facility).Error)
	return facility
}

func TestCreate_UnknownFacilityRejected(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), domain.CreatePostingRequest{
		InternCode:   "MDC-1001",
		FacilityUUID: "00000000-0000-0000-0000-000000000000",
		Discipline:   "Surgery",
		StartDate:    time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, domain.ErrInvalidFacility)
}

func TestListByFacility_CountsOngoing(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	facility := seedFacility(t, gdb, "korle-bu")

	first, err := svc.Create(ctx, domain.CreatePostingRequest{
		InternCode:   "MDC-1001",
		FacilityUUID: facility.UUID,
		Discipline:   "Surgery",
		StartDate:    time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreatePostingRequest{
		InternCode:   "MDC-1002",
		FacilityUUID: facility.UUID,
		Discipline:   "Internal Medicine",
		StartDate:    time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	listing, err := svc.ListByFacility(ctx, facility.UUID)
	require.NoError(t, err)
	require.Equal(t, 2, listing.OngoingCount)
	require.Len(t, listing.Postings, 2)

	completed := string(domain.PostingCompleted)
	end := time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)
	_, err = svc.Update(ctx, first.UUID, domain.UpdatePostingRequest{
		Status:  &completed,
		EndDate: &end,
	})
	require.NoError(t, err)

	listing, err = svc.ListByFacility(ctx, facility.UUID)
	require.NoError(t, err)
	require.Equal(t, 1, listing.OngoingCount)
}

func TestUpdate_EndBeforeStartRejected(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	facility := seedFacility(t, gdb, "ridge")

	posting, err := svc.Create(ctx, domain.CreatePostingRequest{
		InternCode:   "MDC-2001",
		FacilityUUID: facility.UUID,
		Discipline:   "Paediatrics",
		StartDate:    time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	end := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Update(ctx, posting.UUID, domain.UpdatePostingRequest{EndDate: &end})
	require.ErrorIs(t, err, domain.ErrInvalidDates)
}
