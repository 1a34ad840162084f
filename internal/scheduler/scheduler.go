package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medcouncil/registry/internal/clock"
	"github.com/medcouncil/registry/internal/config"
	emailqueuedomain "github.com/medcouncil/registry/internal/emailqueue/domain"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	obsmetrics "github.com/medcouncil/registry/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	LicenseRepo licensedomain.Repository
	EmailSvc    emailqueuedomain.Service
	Rules       *config.RegistryRulesHolder
	Metrics     *obsmetrics.Metrics `optional:"true"`
	Config      Config              `optional:"true"`
}

// Scheduler runs the registry's periodic maintenance: expiring lapsed
// licenses, queueing renewal reminders, and draining the email queue.
type Scheduler struct {
	db          *gorm.DB
	log         *zap.Logger
	cfg         Config
	clock       clock.Clock
	licenseRepo licensedomain.Repository
	emailSvc    emailqueuedomain.Service
	rules       *config.RegistryRulesHolder
	metrics     *obsmetrics.Metrics
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.LicenseRepo == nil || p.EmailSvc == nil || p.Rules == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:          p.DB,
		log:         p.Log.Named("scheduler"),
		cfg:         p.Config.withDefaults(),
		clock:       p.Clock,
		licenseRepo: p.LicenseRepo,
		emailSvc:    p.EmailSvc,
		rules:       p.Rules,
		metrics:     p.Metrics,
	}, nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.log.Error("scheduler pass failed", zap.Error(err))
			}
		}
	}
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error
	if jobErr := s.runJob(parent, "expire_licenses", s.expireLicenses); jobErr != nil {
		err = errors.Join(err, jobErr)
	}
	if jobErr := s.runJob(parent, "renewal_reminders", s.enqueueRenewalReminders); jobErr != nil {
		err = errors.Join(err, jobErr)
	}
	if jobErr := s.runJob(parent, "drain_email_queue", s.drainEmailQueue); jobErr != nil {
		err = errors.Join(err, jobErr)
	}
	return err
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.log.Warn("job timed out", zap.String("job", name), zap.Error(err))
			return nil
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// expireLicenses marks active licenses whose renewal expiry has passed.
func (s *Scheduler) expireLicenses(ctx context.Context) error {
	now := s.clock.Now().UTC()

	lapsed, err := s.licenseRepo.ListExpiring(ctx, s.db, now)
	if err != nil {
		return err
	}
	for _, lic := range lapsed {
		if err := s.licenseRepo.SetStatus(ctx, s.db, lic.UUID, licensedomain.LicenseStatusExpired); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.RecordLicenseSweep(ctx, "expired")
		}
		s.log.Info("license expired",
			zap.String("license_number", lic.LicenseNumber),
		)
	}
	return nil
}

// enqueueRenewalReminders queues one reminder email per license entering the
// reminder window, addressed to the contact recorded in license metadata.
func (s *Scheduler) enqueueRenewalReminders(ctx context.Context) error {
	now := s.clock.Now().UTC()
	leadDays := s.rules.Get().ReminderLeadDays
	cutoff := now.AddDate(0, 0, leadDays)

	upcoming, err := s.licenseRepo.ListExpiring(ctx, s.db, cutoff)
	if err != nil {
		return err
	}

	for _, lic := range upcoming {
		if lic.LastRenewalExpiry == nil || !lic.LastRenewalExpiry.After(now) {
			// Already lapsed; the expiry sweep owns it.
			continue
		}
		contact := contactEmail(lic)
		if contact == "" {
			continue
		}

		subject := fmt.Sprintf("License %s expires on %s", lic.LicenseNumber, lic.LastRenewalExpiry.Format("2006-01-02"))
		queued, err := s.alreadyQueued(ctx, subject)
		if err != nil {
			return err
		}
		if queued {
			continue
		}

		if _, err := s.emailSvc.Enqueue(ctx, emailqueuedomain.EnqueueRequest{
			Recipient: contact,
			Subject:   subject,
			Body: fmt.Sprintf(
				"<p>Dear %s,</p><p>Your license %s expires on %s. Please renew before the expiry date to remain in good standing.</p>",
				lic.Name,
				lic.LicenseNumber,
				lic.LastRenewalExpiry.Format("2 January 2006"),
			),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) drainEmailQueue(ctx context.Context) error {
	sent, err := s.emailSvc.Drain(ctx, s.cfg.EmailBatchSize)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		for i := 0; i < sent; i++ {
			s.metrics.RecordEmailSent(ctx, "delivered")
		}
	}
	return nil
}

// alreadyQueued dedupes reminders across ticks by subject line.
func (s *Scheduler) alreadyQueued(ctx context.Context, subject string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM email_queue WHERE subject = ?`,
		subject,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func contactEmail(lic *licensedomain.License) string {
	if lic.Metadata == nil {
		return ""
	}
	if value, ok := lic.Metadata["contact_email"].(string); ok {
		return value
	}
	return ""
}
