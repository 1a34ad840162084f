package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/internal/practitioner/domain"
	"github.com/medcouncil/registry/pkg/db"
	"github.com/medcouncil/registry/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:         p.Log.Named("practitioner.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		licenseRepo: p.LicenseRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePractitionerRequest) (domain.Practitioner, error) {
	number := strings.TrimSpace(req.LicenseNumber)
	if number == "" {
		return domain.Practitioner{}, domain.ErrInvalidLicenseNumber
	}

	now := time.Now().UTC()
	practitioner := domain.Practitioner{
		ID:            s.genID.Generate(),
		LicenseNumber: number,
		FirstName:     trimPtr(req.FirstName),
		MiddleName:    trimPtr(req.MiddleName),
		LastName:      trimPtr(req.LastName),
		Specialty:     strings.TrimSpace(req.Specialty),
		Qualification: strings.TrimSpace(req.Qualification),
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &practitioner); err != nil {
			return err
		}
		// Matching zero license rows is a silent no-op, same as the insert
		// propagation rule it replaces.
		return s.licenseRepo.SetHolderName(ctx, tx, number, holderName(&practitioner))
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Practitioner{}, domain.ErrDuplicatePractitioner
		}
		return domain.Practitioner{}, err
	}

	return practitioner, nil
}

func (s *Service) Update(ctx context.Context, uuid string, req domain.UpdatePractitionerRequest) (domain.Practitioner, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.Practitioner{}, domain.ErrNotFound
	}

	var updated domain.Practitioner
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		nameBefore := holderName(current)

		if req.FirstName != nil {
			current.FirstName = trimPtr(req.FirstName)
		}
		if req.MiddleName != nil {
			current.MiddleName = trimPtr(req.MiddleName)
		}
		if req.LastName != nil {
			current.LastName = trimPtr(req.LastName)
		}
		if req.Specialty != nil {
			current.Specialty = strings.TrimSpace(*req.Specialty)
		}
		if req.Qualification != nil {
			current.Qualification = strings.TrimSpace(*req.Qualification)
		}
		current.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, tx, current); err != nil {
			return err
		}

		// Recompute the derived license name only when a name part changed.
		if nameAfter := holderName(current); nameAfter != nameBefore {
			if err := s.licenseRepo.SetHolderName(ctx, tx, current.LicenseNumber, nameAfter); err != nil {
				return err
			}
		}

		updated = *current
		return nil
	})
	if err != nil {
		return domain.Practitioner{}, err
	}
	return updated, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (domain.Practitioner, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.Practitioner{}, domain.ErrNotFound
	}

	practitioner, err := s.repo.FindByUUID(ctx, s.db, trimmed)
	if err != nil {
		return domain.Practitioner{}, err
	}
	if practitioner == nil {
		return domain.Practitioner{}, domain.ErrNotFound
	}
	return *practitioner, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPractitionerRequest) (domain.ListPractitionerResponse, error) {
	practitioners, err := s.repo.List(ctx, s.db, domain.ListPractitionerFilter{
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Specialty:     strings.TrimSpace(req.Specialty),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return domain.ListPractitionerResponse{}, err
	}

	resp := domain.ListPractitionerResponse{
		Practitioners: make([]domain.PractitionerResponse, 0, len(practitioners)),
	}
	for _, practitioner := range practitioners {
		resp.Practitioners = append(resp.Practitioners, domain.PractitionerResponse{
			UUID:          practitioner.UUID,
			LicenseNumber: practitioner.LicenseNumber,
			FirstName:     practitioner.FirstName,
			MiddleName:    practitioner.MiddleName,
			LastName:      practitioner.LastName,
			Specialty:     practitioner.Specialty,
			Qualification: practitioner.Qualification,
			CreatedAt:     practitioner.CreatedAt,
		})
	}
	if len(practitioners) > 0 {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID: practitioners[len(practitioners)-1].ID.String(),
		})
		if err == nil {
			resp.NextPageToken = token
		}
	}
	return resp, nil
}

func holderName(p *domain.Practitioner) string {
	return licensedomain.HolderName(deref(p.FirstName), deref(p.MiddleName), deref(p.LastName))
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
