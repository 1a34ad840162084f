package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/medcouncil/registry/internal/facility/domain"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
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
		log:         p.Log.Named("facility.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		licenseRepo: p.LicenseRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateFacilityRequest) (domain.Facility, error) {
	number := strings.TrimSpace(req.LicenseNumber)
	if number == "" {
		return domain.Facility{}, domain.ErrInvalidLicenseNumber
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Facility{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	facility := domain.Facility{
		ID:            s.genID.Generate(),
		LicenseNumber: number,
		Name:          name,
		Slug:          slug.Make(name),
		Region:        strings.TrimSpace(req.Region),
		District:      strings.TrimSpace(req.District),
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &facility); err != nil {
			return err
		}
		return s.licenseRepo.SetHolderName(ctx, tx, number, name)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Facility{}, domain.ErrDuplicateFacility
		}
		return domain.Facility{}, err
	}

	return facility, nil
}

func (s *Service) Update(ctx context.Context, uuid string, req domain.UpdateFacilityRequest) (domain.Facility, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.Facility{}, domain.ErrNotFound
	}

	var updated domain.Facility
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		nameBefore := current.Name

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return domain.ErrInvalidName
			}
			current.Name = name
			current.Slug = slug.Make(name)
		}
		if req.Region != nil {
			current.Region = strings.TrimSpace(*req.Region)
		}
		if req.District != nil {
			current.District = strings.TrimSpace(*req.District)
		}
		current.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, tx, current); err != nil {
			return err
		}

		if current.Name != nameBefore {
			if err := s.licenseRepo.SetHolderName(ctx, tx, current.LicenseNumber, current.Name); err != nil {
				return err
			}
		}

		updated = *current
		return nil
	})
	if err != nil {
		return domain.Facility{}, err
	}
	return updated, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (domain.Facility, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.Facility{}, domain.ErrNotFound
	}

	facility, err := s.repo.FindByUUID(ctx, s.db, trimmed)
	if err != nil {
		return domain.Facility{}, err
	}
	if facility == nil {
		return domain.Facility{}, domain.ErrNotFound
	}
	return *facility, nil
}

func (s *Service) List(ctx context.Context, req domain.ListFacilityRequest) (domain.ListFacilityResponse, error) {
	facilities, err := s.repo.List(ctx, s.db, domain.ListFacilityFilter{
		Region:   strings.TrimSpace(req.Region),
		District: strings.TrimSpace(req.District),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return domain.ListFacilityResponse{}, err
	}

	resp := domain.ListFacilityResponse{
		Facilities: make([]domain.FacilityResponse, 0, len(facilities)),
	}
	for _, facility := range facilities {
		resp.Facilities = append(resp.Facilities, domain.FacilityResponse{
			UUID:          facility.UUID,
			LicenseNumber: facility.LicenseNumber,
			Name:          facility.Name,
			Slug:          facility.Slug,
			Region:        facility.Region,
			District:      facility.District,
			CreatedAt:     facility.CreatedAt,
		})
	}
	if len(facilities) > 0 {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID: facilities[len(facilities)-1].ID.String(),
		})
		if err == nil {
			resp.NextPageToken = token
		}
	}
	return resp, nil
}
