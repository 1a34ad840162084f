package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/pkg/db"
	"github.com/medcouncil/registry/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("license.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLicenseRequest) (domain.License, error) {
	number := strings.TrimSpace(req.LicenseNumber)
	if number == "" {
		return domain.License{}, domain.ErrInvalidLicenseNumber
	}

	licenseType, ok := parseLicenseType(req.Type)
	if !ok {
		return domain.License{}, domain.ErrInvalidLicenseType
	}

	now := time.Now().UTC()
	license := domain.License{
		ID:            s.genID.Generate(),
		UUID:          strings.TrimSpace(req.UUID),
		LicenseNumber: number,
		Type:          licenseType,
		Status:        domain.LicenseStatusActive,
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &license); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.License{}, domain.ErrDuplicateLicense
		}
		return domain.License{}, err
	}

	return license, nil
}

func (s *Service) GetByNumber(ctx context.Context, licenseNumber string) (domain.License, error) {
	number := strings.TrimSpace(licenseNumber)
	if number == "" {
		return domain.License{}, domain.ErrInvalidLicenseNumber
	}

	license, err := s.repo.FindByNumber(ctx, s.db, number)
	if err != nil {
		return domain.License{}, err
	}
	if license == nil {
		return domain.License{}, domain.ErrNotFound
	}
	return *license, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (domain.License, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.License{}, domain.ErrNotFound
	}

	license, err := s.repo.FindByUUID(ctx, s.db, trimmed)
	if err != nil {
		return domain.License{}, err
	}
	if license == nil {
		return domain.License{}, domain.ErrNotFound
	}
	return *license, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLicenseRequest) (domain.ListLicenseResponse, error) {
	licenses, err := s.repo.List(ctx, s.db, domain.ListLicenseFilter{
		Type:   strings.TrimSpace(req.Type),
		Status: strings.TrimSpace(req.Status),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return domain.ListLicenseResponse{}, err
	}

	resp := domain.ListLicenseResponse{
		Licenses: make([]domain.LicenseResponse, 0, len(licenses)),
	}
	for _, license := range licenses {
		resp.Licenses = append(resp.Licenses, toResponse(license))
	}
	if len(licenses) > 0 {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID: licenses[len(licenses)-1].ID.String(),
		})
		if err == nil {
			resp.NextPageToken = token
		}
	}
	return resp, nil
}

func (s *Service) SetStatus(ctx context.Context, uuid string, status domain.LicenseStatus) (domain.License, error) {
	switch status {
	case domain.LicenseStatusActive, domain.LicenseStatusSuspended,
		domain.LicenseStatusExpired, domain.LicenseStatusRevoked:
	default:
		return domain.License{}, domain.ErrInvalidStatus
	}

	license, err := s.GetByUUID(ctx, uuid)
	if err != nil {
		return domain.License{}, err
	}

	if err := s.repo.SetStatus(ctx, s.db, license.UUID, status); err != nil {
		return domain.License{}, err
	}
	license.Status = status
	return license, nil
}

func parseLicenseType(raw string) (domain.LicenseType, bool) {
	switch domain.LicenseType(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.LicenseTypePractitioner:
		return domain.LicenseTypePractitioner, true
	case domain.LicenseTypeFacility:
		return domain.LicenseTypeFacility, true
	case domain.LicenseTypeCandidate:
		return domain.LicenseTypeCandidate, true
	default:
		return "", false
	}
}

func toResponse(license *domain.License) domain.LicenseResponse {
	return domain.LicenseResponse{
		UUID:              license.UUID,
		LicenseNumber:     license.LicenseNumber,
		Type:              string(license.Type),
		Name:              license.Name,
		Status:            string(license.Status),
		LastRenewalStart:  license.LastRenewalStart,
		LastRenewalExpiry: license.LastRenewalExpiry,
		LastRenewalStatus: license.LastRenewalStatus,
		CreatedAt:         license.CreatedAt,
	}
}
