package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	facilitydomain "github.com/medcouncil/registry/internal/facility/domain"
	"github.com/medcouncil/registry/internal/housemanship/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	FacilityRepo facilitydomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	facilityRepo facilitydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("housemanship.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		facilityRepo: p.FacilityRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePostingRequest) (domain.HousemanshipPosting, error) {
	internCode := strings.TrimSpace(req.InternCode)
	if internCode == "" {
		return domain.HousemanshipPosting{}, domain.ErrInvalidInternCode
	}
	discipline := strings.TrimSpace(req.Discipline)
	if discipline == "" {
		return domain.HousemanshipPosting{}, domain.ErrInvalidDiscipline
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return domain.HousemanshipPosting{}, domain.ErrInvalidDates
	}

	facility, err := s.facilityRepo.FindByUUID(ctx, s.db, strings.TrimSpace(req.FacilityUUID))
	if err != nil {
		return domain.HousemanshipPosting{}, err
	}
	if facility == nil {
		return domain.HousemanshipPosting{}, domain.ErrInvalidFacility
	}

	now := time.Now().UTC()
	posting := domain.HousemanshipPosting{
		ID:           s.genID.Generate(),
		InternCode:   internCode,
		FacilityUUID: facility.UUID,
		Discipline:   discipline,
		StartDate:    req.StartDate.UTC(),
		EndDate:      req.EndDate,
		Status:       domain.PostingOngoing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, &posting); err != nil {
		return domain.HousemanshipPosting{}, err
	}
	return posting, nil
}

func (s *Service) Update(ctx context.Context, uuid string, req domain.UpdatePostingRequest) (domain.HousemanshipPosting, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.HousemanshipPosting{}, domain.ErrNotFound
	}

	var updated domain.HousemanshipPosting
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		if req.Discipline != nil {
			discipline := strings.TrimSpace(*req.Discipline)
			if discipline == "" {
				return domain.ErrInvalidDiscipline
			}
			current.Discipline = discipline
		}
		if req.EndDate != nil {
			if req.EndDate.Before(current.StartDate) {
				return domain.ErrInvalidDates
			}
			current.EndDate = req.EndDate
		}
		if req.Status != nil {
			status, err := parseStatus(*req.Status)
			if err != nil {
				return err
			}
			current.Status = status
		}
		current.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, tx, current); err != nil {
			return err
		}
		updated = *current
		return nil
	})
	if err != nil {
		return domain.HousemanshipPosting{}, err
	}
	return updated, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (domain.HousemanshipPosting, error) {
	posting, err := s.repo.FindByUUID(ctx, s.db, strings.TrimSpace(uuid))
	if err != nil {
		return domain.HousemanshipPosting{}, err
	}
	if posting == nil {
		return domain.HousemanshipPosting{}, domain.ErrNotFound
	}
	return *posting, nil
}

func (s *Service) ListByFacility(ctx context.Context, facilityUUID string) (domain.FacilityPostings, error) {
	trimmed := strings.TrimSpace(facilityUUID)
	if trimmed == "" {
		return domain.FacilityPostings{}, domain.ErrInvalidFacility
	}

	postings, err := s.repo.ListByFacility(ctx, s.db, trimmed)
	if err != nil {
		return domain.FacilityPostings{}, err
	}
	ongoing, err := s.repo.CountOngoingByFacility(ctx, s.db, trimmed)
	if err != nil {
		return domain.FacilityPostings{}, err
	}

	return domain.FacilityPostings{
		FacilityUUID: trimmed,
		OngoingCount: ongoing,
		Postings:     postings,
	}, nil
}

func (s *Service) ListByInternCode(ctx context.Context, internCode string) ([]domain.HousemanshipPosting, error) {
	trimmed := strings.TrimSpace(internCode)
	if trimmed == "" {
		return nil, domain.ErrInvalidInternCode
	}
	return s.repo.ListByInternCode(ctx, s.db, trimmed)
}

func parseStatus(value string) (domain.PostingStatus, error) {
	switch domain.PostingStatus(strings.TrimSpace(value)) {
	case domain.PostingOngoing:
		return domain.PostingOngoing, nil
	case domain.PostingCompleted:
		return domain.PostingCompleted, nil
	case domain.PostingTerminated:
		return domain.PostingTerminated, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}
