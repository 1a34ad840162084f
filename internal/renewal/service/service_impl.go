package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/internal/renewal/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	LicenseRepo licensedomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	licenseRepo licensedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("renewal.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		licenseRepo: p.LicenseRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRenewalRequest) (domain.LicenseRenewal, error) {
	licenseUUID := strings.TrimSpace(req.LicenseUUID)
	if licenseUUID == "" {
		return domain.LicenseRenewal{}, domain.ErrInvalidLicense
	}
	if req.StartDate.IsZero() || req.Expiry.IsZero() || req.Expiry.Before(req.StartDate) {
		return domain.LicenseRenewal{}, domain.ErrInvalidDates
	}
	status, ok := parseStatus(req.Status)
	if !ok {
		return domain.LicenseRenewal{}, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	renewal := domain.LicenseRenewal{
		ID:          s.genID.Generate(),
		LicenseUUID: licenseUUID,
		StartDate:   req.StartDate.UTC(),
		Expiry:      req.Expiry.UTC(),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		license, err := s.licenseRepo.FindByUUID(ctx, tx, licenseUUID)
		if err != nil {
			return err
		}
		if license == nil {
			return domain.ErrInvalidLicense
		}

		if err := s.repo.Insert(ctx, tx, &renewal); err != nil {
			return err
		}

		// A fresh insert is always the newest row, so the snapshot takes its
		// values directly.
		statusText := string(renewal.Status)
		return s.licenseRepo.SetRenewalSnapshot(ctx, tx, licenseUUID, licensedomain.RenewalSnapshot{
			Start:  &renewal.StartDate,
			Expiry: &renewal.Expiry,
			Status: &statusText,
		})
	})
	if err != nil {
		return domain.LicenseRenewal{}, err
	}

	return renewal, nil
}

// Update edits a renewal row without touching the license snapshot, matching
// the historical propagation rules. Use ResyncSnapshot to repair the license
// afterwards when the edited row is the latest one.
func (s *Service) Update(ctx context.Context, uuid string, req domain.UpdateRenewalRequest) (domain.LicenseRenewal, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.LicenseRenewal{}, domain.ErrNotFound
	}

	current, err := s.repo.FindByUUID(ctx, s.db, trimmed)
	if err != nil {
		return domain.LicenseRenewal{}, err
	}
	if current == nil {
		return domain.LicenseRenewal{}, domain.ErrNotFound
	}

	if req.StartDate != nil {
		current.StartDate = req.StartDate.UTC()
	}
	if req.Expiry != nil {
		current.Expiry = req.Expiry.UTC()
	}
	if req.Status != nil {
		status, ok := parseStatus(*req.Status)
		if !ok {
			return domain.LicenseRenewal{}, domain.ErrInvalidStatus
		}
		current.Status = status
	}
	if current.Expiry.Before(current.StartDate) {
		return domain.LicenseRenewal{}, domain.ErrInvalidDates
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, current); err != nil {
		return domain.LicenseRenewal{}, err
	}
	return *current, nil
}

func (s *Service) Delete(ctx context.Context, uuid string) error {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		renewal, err := s.repo.FindByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if renewal == nil {
			return domain.ErrNotFound
		}

		if err := s.repo.Delete(ctx, tx, trimmed); err != nil {
			return err
		}

		return s.resyncSnapshotTx(ctx, tx, renewal.LicenseUUID)
	})
}

func (s *Service) ListByLicense(ctx context.Context, licenseUUID string) ([]domain.RenewalResponse, error) {
	trimmed := strings.TrimSpace(licenseUUID)
	if trimmed == "" {
		return nil, domain.ErrInvalidLicense
	}

	renewals, err := s.repo.ListByLicense(ctx, s.db, trimmed)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RenewalResponse, 0, len(renewals))
	for i := range renewals {
		resp = append(resp, domain.RenewalResponse{
			UUID:        renewals[i].UUID,
			LicenseUUID: renewals[i].LicenseUUID,
			StartDate:   renewals[i].StartDate,
			Expiry:      renewals[i].Expiry,
			Status:      string(renewals[i].Status),
			CreatedAt:   renewals[i].CreatedAt,
		})
	}
	return resp, nil
}

func (s *Service) ResyncSnapshot(ctx context.Context, licenseUUID string) error {
	trimmed := strings.TrimSpace(licenseUUID)
	if trimmed == "" {
		return domain.ErrInvalidLicense
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.resyncSnapshotTx(ctx, tx, trimmed)
	})
}

func (s *Service) resyncSnapshotTx(ctx context.Context, tx *gorm.DB, licenseUUID string) error {
	latest, err := s.repo.FindLatestByLicense(ctx, tx, licenseUUID)
	if err != nil {
		return err
	}

	snap := licensedomain.RenewalSnapshot{}
	if latest != nil {
		statusText := string(latest.Status)
		snap.Start = &latest.StartDate
		snap.Expiry = &latest.Expiry
		snap.Status = &statusText
	}
	return s.licenseRepo.SetRenewalSnapshot(ctx, tx, licenseUUID, snap)
}

func parseStatus(raw string) (domain.RenewalStatus, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return domain.RenewalStatusPending, true
	}
	switch domain.RenewalStatus(value) {
	case domain.RenewalStatusPending:
		return domain.RenewalStatusPending, true
	case domain.RenewalStatusApproved:
		return domain.RenewalStatusApproved, true
	case domain.RenewalStatusRejected:
		return domain.RenewalStatusRejected, true
	case domain.RenewalStatusCancelled:
		return domain.RenewalStatusCancelled, true
	default:
		return "", false
	}
}
