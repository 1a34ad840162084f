package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/config"
	"github.com/medcouncil/registry/internal/cpd/domain"
	"github.com/medcouncil/registry/internal/cpd/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&domain.CPDActivity{},
		&domain.CPDAttendance{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	rules := config.DefaultRegistryRules()
	rules.CPDMinimumPoints = 10

	return New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Rules: config.NewStaticRegistryRulesHolder(rules),
	})
}

func seedActivity(t *testing.T, svc domain.Service, title string, points int, date time.Time) domain.CPDActivity {
	t.Helper()
	activity, err := svc.CreateActivity(context.Background(), domain.CreateActivityRequest{
		Title:        title,
		Provider:     "Ghana College of Physicians",
		CreditPoints: points,
		ActivityDate: date,
	})
	require.NoError(t, err)
	return activity
}

func TestYearlySummary_SumsOnlyThatYear(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	thisYear := seedActivity(t, svc, "Sepsis Update", 6, time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC))
	alsoThisYear := seedActivity(t, svc, "Ethics Workshop", 5, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	lastYear := seedActivity(t, svc, "ACLS Refresher", 8, time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC))

	for _, activity := range []domain.CPDActivity{thisYear, alsoThisYear, lastYear} {
		_, err := svc.RecordAttendance(ctx, domain.RecordAttendanceRequest{
			ActivityUUID:  activity.UUID,
			LicenseNumber: "MDC-1001",
		})
		require.NoError(t, err)
	}

	summary, err := svc.YearlySummary(ctx, "MDC-1001", 2026)
	require.NoError(t, err)
	require.Equal(t, 11, summary.TotalPoints)
	require.Equal(t, 10, summary.RequiredPoints)
	require.True(t, summary.Compliant)

	summary, err = svc.YearlySummary(ctx, "MDC-1001", 2025)
	require.NoError(t, err)
	require.Equal(t, 8, summary.TotalPoints)
	require.False(t, summary.Compliant)
}

func TestRecordAttendance_PartialPointsOverride(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	activity := seedActivity(t, svc, "Two Day Conference", 10, time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC))

	half := 5
	attendance, err := svc.RecordAttendance(ctx, domain.RecordAttendanceRequest{
		ActivityUUID:  activity.UUID,
		LicenseNumber: "MDC-2001",
		PointsAwarded: &half,
	})
	require.NoError(t, err)
	require.Equal(t, 5, attendance.PointsAwarded)

	tooMany := 11
	_, err = svc.RecordAttendance(ctx, domain.RecordAttendanceRequest{
		ActivityUUID:  activity.UUID,
		LicenseNumber: "MDC-2001",
		PointsAwarded: &tooMany,
	})
	require.ErrorIs(t, err, domain.ErrInvalidPoints)
}

func TestRecordAttendance_UnknownActivityRejected(t *testing.T) {
	svc := setupService(t)

	_, err := svc.RecordAttendance(context.Background(), domain.RecordAttendanceRequest{
		ActivityUUID:  "00000000-0000-0000-0000-000000000000",
		LicenseNumber: "MDC-3001",
	})
	require.ErrorIs(t, err, domain.ErrInvalidActivity)
}
