package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medcouncil/registry/internal/config"
	"github.com/medcouncil/registry/internal/cpd/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Rules *config.RegistryRulesHolder
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	rules *config.RegistryRulesHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("cpd.service"),
		genID: p.GenID,
		repo:  p.Repo,
		rules: p.Rules,
	}
}

func (s *Service) CreateActivity(ctx context.Context, req domain.CreateActivityRequest) (domain.CPDActivity, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CPDActivity{}, domain.ErrInvalidTitle
	}
	if req.CreditPoints < 0 {
		return domain.CPDActivity{}, domain.ErrInvalidPoints
	}

	now := time.Now().UTC()
	activity := domain.CPDActivity{
		ID:           s.genID.Generate(),
		Title:        title,
		Provider:     strings.TrimSpace(req.Provider),
		CreditPoints: req.CreditPoints,
		ActivityDate: req.ActivityDate.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.InsertActivity(ctx, s.db, &activity); err != nil {
		return domain.CPDActivity{}, err
	}
	return activity, nil
}

func (s *Service) RecordAttendance(ctx context.Context, req domain.RecordAttendanceRequest) (domain.CPDAttendance, error) {
	licenseNumber := strings.TrimSpace(req.LicenseNumber)
	if licenseNumber == "" {
		return domain.CPDAttendance{}, domain.ErrInvalidLicenseNumber
	}

	activity, err := s.repo.FindActivityByUUID(ctx, s.db, strings.TrimSpace(req.ActivityUUID))
	if err != nil {
		return domain.CPDAttendance{}, err
	}
	if activity == nil {
		return domain.CPDAttendance{}, domain.ErrInvalidActivity
	}

	points := activity.CreditPoints
	if req.PointsAwarded != nil {
		if *req.PointsAwarded < 0 || *req.PointsAwarded > activity.CreditPoints {
			return domain.CPDAttendance{}, domain.ErrInvalidPoints
		}
		points = *req.PointsAwarded
	}

	now := time.Now().UTC()
	attendance := domain.CPDAttendance{
		ID:            s.genID.Generate(),
		ActivityUUID:  activity.UUID,
		LicenseNumber: licenseNumber,
		PointsAwarded: points,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.InsertAttendance(ctx, s.db, &attendance); err != nil {
		return domain.CPDAttendance{}, err
	}
	return attendance, nil
}

func (s *Service) YearlySummary(ctx context.Context, licenseNumber string, year int) (domain.YearlySummary, error) {
	trimmed := strings.TrimSpace(licenseNumber)
	if trimmed == "" {
		return domain.YearlySummary{}, domain.ErrInvalidLicenseNumber
	}

	total, err := s.repo.SumPointsForYear(ctx, s.db, trimmed, year)
	if err != nil {
		return domain.YearlySummary{}, err
	}

	required := s.rules.Get().CPDMinimumPoints
	return domain.YearlySummary{
		LicenseNumber:  trimmed,
		Year:           year,
		TotalPoints:    total,
		RequiredPoints: required,
		Compliant:      total >= required,
	}, nil
}
