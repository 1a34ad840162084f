package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/clock"
	"github.com/medcouncil/registry/internal/config"
	emailqueuedomain "github.com/medcouncil/registry/internal/emailqueue/domain"
	emailqueuerepository "github.com/medcouncil/registry/internal/emailqueue/repository"
	emailqueueservice "github.com/medcouncil/registry/internal/emailqueue/service"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	licenserepository "github.com/medcouncil/registry/internal/license/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type captureProvider struct {
	sent []string
}

func (p *captureProvider) Send(_ context.Context, to []string, _ string, _ string) error {
	p.sent = append(p.sent, to[0])
	return nil
}

func setupScheduler(t *testing.T, now time.Time) (*Scheduler, *clock.FakeClock, *gorm.DB, *captureProvider) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&licensedomain.License{},
		&emailqueuedomain.QueuedEmail{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	provider := &captureProvider{}
	emailSvc := emailqueueservice.New(emailqueueservice.Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     emailqueuerepository.Provide(),
		Provider: provider,
	})

	fake := clock.NewFakeClock(now)
	rules := config.DefaultRegistryRules()
	rules.ReminderLeadDays = 30

	sched, err := New(Params{
		DB:          gdb,
		Log:         zap.NewNop(),
		Clock:       fake,
		LicenseRepo: licenserepository.Provide(),
		EmailSvc:    emailSvc,
		Rules:       config.NewStaticRegistryRulesHolder(rules),
	})
	require.NoError(t, err)
	return sched, fake, gdb, provider
}

var seedLicenseNode *snowflake.Node

func seedLicense(t *testing.T, gdb *gorm.DB, number string, expiry time.Time, contact string) {
	t.Helper()
	if seedLicenseNode == nil {
		node, err := snowflake.NewNode(2)
		require.NoError(t, err)
		seedLicenseNode = node
	}
	node := seedLicenseNode

	metadata := datatypes.JSONMap{}
	if contact != "" {
		metadata["contact_email"] = contact
	}
	status := "approved"
	start := expiry.AddDate(-1, 0, 0)
	require.NoError(t, gdb.Create(&licensedomain.License{
		ID:                node.Generate(),
		LicenseNumber:     number,
		Type:              licensedomain.LicenseTypePractitioner,
		Name:              "Test Holder",
		Status:            licensedomain.LicenseStatusActive,
		LastRenewalStart:  &start,
		LastRenewalExpiry: &expiry,
		LastRenewalStatus: &status,
		Metadata:          metadata,
	}).Error)
}

func licenseStatus(t *testing.T, gdb *gorm.DB, number string) licensedomain.LicenseStatus {
	t.Helper()
	var lic licensedomain.License
	require.NoError(t, gdb.Where("license_number = ?", number).First(&lic).Error)
	return lic.Status
}

func TestRunOnce_ExpiresLapsedLicenses(t *testing.T) {
	now := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	sched, fake, gdb, _ := setupScheduler(t, now)

	seedLicense(t, gdb, "MDC-1001", now.AddDate(0, 0, -1), "")
	seedLicense(t, gdb, "MDC-1002", now.AddDate(0, 2, 0), "")

	require.NoError(t, sched.RunOnce(context.Background()))

	require.Equal(t, licensedomain.LicenseStatusExpired, licenseStatus(t, gdb, "MDC-1001"))
	require.Equal(t, licensedomain.LicenseStatusActive, licenseStatus(t, gdb, "MDC-1002"))

	// Advancing past the second expiry sweeps it too.
	fake.Advance(90 * 24 * time.Hour)
	require.NoError(t, sched.RunOnce(context.Background()))
	require.Equal(t, licensedomain.LicenseStatusExpired, licenseStatus(t, gdb, "MDC-1002"))
}

func TestRunOnce_QueuesReminderOncePerLicense(t *testing.T) {
	now := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	sched, _, gdb, provider := setupScheduler(t, now)

	// Inside the 30 day window, with a reachable contact.
	seedLicense(t, gdb, "MDC-2001", now.AddDate(0, 0, 14), "holder@registry.test")
	// Outside the window.
	seedLicense(t, gdb, "MDC-2002", now.AddDate(0, 6, 0), "far@registry.test")
	// In the window but no contact on file.
	seedLicense(t, gdb, "MDC-2003", now.AddDate(0, 0, 10), "")

	require.NoError(t, sched.RunOnce(context.Background()))
	require.Equal(t, []string{"holder@registry.test"}, provider.sent)

	// A second pass must not enqueue a duplicate reminder.
	require.NoError(t, sched.RunOnce(context.Background()))
	require.Equal(t, []string{"holder@registry.test"}, provider.sent)

	var total int64
	require.NoError(t, gdb.Model(&emailqueuedomain.QueuedEmail{}).Count(&total).Error)
	require.Equal(t, int64(1), total)
}
