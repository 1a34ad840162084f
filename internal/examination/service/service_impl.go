package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medcouncil/registry/internal/examination/domain"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validResults = map[string]struct{}{
	"":                  {},
	"Pass":              {},
	"Fail":              {},
	domain.ResultAbsent: {},
}

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
		log:         p.Log.Named("examination.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		licenseRepo: p.LicenseRepo,
	}
}

func (s *Service) CreateExam(ctx context.Context, req domain.CreateExamRequest) (domain.Exam, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Exam{}, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	exam := domain.Exam{
		ID:        s.genID.Generate(),
		Title:     title,
		ExamDate:  req.ExamDate.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertExam(ctx, s.db, &exam); err != nil {
		return domain.Exam{}, err
	}
	return exam, nil
}

func (s *Service) CreateCandidate(ctx context.Context, req domain.CreateCandidateRequest) (domain.ExamCandidate, error) {
	internCode := strings.TrimSpace(req.InternCode)
	if internCode == "" {
		return domain.ExamCandidate{}, domain.ErrInvalidInternCode
	}

	now := time.Now().UTC()
	candidate := domain.ExamCandidate{
		ID:         s.genID.Generate(),
		InternCode: internCode,
		FirstName:  trimPtr(req.FirstName),
		MiddleName: trimPtr(req.MiddleName),
		LastName:   trimPtr(req.LastName),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertCandidate(ctx, tx, &candidate); err != nil {
			return err
		}
		// Candidates are joined to licenses by intern code standing in for
		// the license number.
		return s.licenseRepo.SetHolderName(ctx, tx, internCode, candidateName(&candidate))
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ExamCandidate{}, domain.ErrDuplicateCandidate
		}
		return domain.ExamCandidate{}, err
	}

	return candidate, nil
}

func (s *Service) UpdateCandidate(ctx context.Context, uuid string, req domain.UpdateCandidateRequest) (domain.ExamCandidate, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.ExamCandidate{}, domain.ErrNotFound
	}

	var updated domain.ExamCandidate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindCandidateByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		nameBefore := candidateName(current)

		if req.FirstName != nil {
			current.FirstName = trimPtr(req.FirstName)
		}
		if req.MiddleName != nil {
			current.MiddleName = trimPtr(req.MiddleName)
		}
		if req.LastName != nil {
			current.LastName = trimPtr(req.LastName)
		}
		current.UpdatedAt = time.Now().UTC()

		if err := s.repo.UpdateCandidate(ctx, tx, current); err != nil {
			return err
		}

		if nameAfter := candidateName(current); nameAfter != nameBefore {
			if err := s.licenseRepo.SetHolderName(ctx, tx, current.InternCode, nameAfter); err != nil {
				return err
			}
		}

		updated = *current
		return nil
	})
	if err != nil {
		return domain.ExamCandidate{}, err
	}
	return updated, nil
}

func (s *Service) GetCandidateByInternCode(ctx context.Context, internCode string) (domain.ExamCandidate, error) {
	trimmed := strings.TrimSpace(internCode)
	if trimmed == "" {
		return domain.ExamCandidate{}, domain.ErrInvalidInternCode
	}

	candidate, err := s.repo.FindCandidateByInternCode(ctx, s.db, trimmed)
	if err != nil {
		return domain.ExamCandidate{}, err
	}
	if candidate == nil {
		return domain.ExamCandidate{}, domain.ErrNotFound
	}
	return *candidate, nil
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.ExamRegistration, error) {
	internCode := strings.TrimSpace(req.InternCode)
	if internCode == "" {
		return domain.ExamRegistration{}, domain.ErrInvalidInternCode
	}

	var registration domain.ExamRegistration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exam, err := s.repo.FindExamByUUID(ctx, tx, strings.TrimSpace(req.ExamUUID))
		if err != nil {
			return err
		}
		if exam == nil {
			return domain.ErrInvalidExam
		}
		candidate, err := s.repo.FindCandidateByInternCode(ctx, tx, internCode)
		if err != nil {
			return err
		}
		if candidate == nil {
			return domain.ErrNotFound
		}

		now := time.Now().UTC()
		registration = domain.ExamRegistration{
			ID:         s.genID.Generate(),
			ExamID:     exam.ID,
			InternCode: internCode,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.InsertRegistration(ctx, tx, &registration); err != nil {
			return err
		}

		return s.recountCandidate(ctx, tx, internCode)
	})
	if err != nil {
		return domain.ExamRegistration{}, err
	}
	return registration, nil
}

func (s *Service) UpdateRegistration(ctx context.Context, uuid string, req domain.UpdateRegistrationRequest) (domain.ExamRegistration, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.ExamRegistration{}, domain.ErrNotFound
	}

	var updated domain.ExamRegistration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindRegistrationByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		previousInternCode := current.InternCode

		if req.Result != nil {
			result := strings.TrimSpace(*req.Result)
			if _, ok := validResults[result]; !ok {
				return domain.ErrInvalidResult
			}
			current.Result = result
		}
		if req.InternCode != nil {
			internCode := strings.TrimSpace(*req.InternCode)
			if internCode == "" {
				return domain.ErrInvalidInternCode
			}
			candidate, err := s.repo.FindCandidateByInternCode(ctx, tx, internCode)
			if err != nil {
				return err
			}
			if candidate == nil {
				return domain.ErrNotFound
			}
			current.InternCode = internCode
		}
		current.UpdatedAt = time.Now().UTC()

		if err := s.repo.UpdateRegistration(ctx, tx, current); err != nil {
			return err
		}

		// Recount both sides of a move so neither counter goes stale.
		if err := s.recountCandidate(ctx, tx, current.InternCode); err != nil {
			return err
		}
		if previousInternCode != current.InternCode {
			if err := s.recountCandidate(ctx, tx, previousInternCode); err != nil {
				return err
			}
		}

		updated = *current
		return nil
	})
	if err != nil {
		return domain.ExamRegistration{}, err
	}
	return updated, nil
}

func (s *Service) DeleteRegistration(ctx context.Context, uuid string) error {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		registration, err := s.repo.FindRegistrationByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if registration == nil {
			return domain.ErrNotFound
		}

		if err := s.repo.DeleteRegistration(ctx, tx, trimmed); err != nil {
			return err
		}

		return s.recountCandidate(ctx, tx, registration.InternCode)
	})
}

func (s *Service) ListRegistrations(ctx context.Context, internCode string) ([]domain.RegistrationResponse, error) {
	trimmed := strings.TrimSpace(internCode)
	if trimmed == "" {
		return nil, domain.ErrInvalidInternCode
	}

	registrations, err := s.repo.ListRegistrationsByInternCode(ctx, s.db, trimmed)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RegistrationResponse, 0, len(registrations))
	for i := range registrations {
		resp = append(resp, domain.RegistrationResponse{
			UUID:       registrations[i].UUID,
			InternCode: registrations[i].InternCode,
			Result:     registrations[i].Result,
			CreatedAt:  registrations[i].CreatedAt,
		})
	}
	return resp, nil
}

// recountCandidate re-derives number_of_exams from source rows instead of
// incrementing, so any mix of insert/update/delete stays correct.
func (s *Service) recountCandidate(ctx context.Context, tx *gorm.DB, internCode string) error {
	count, err := s.repo.CountNonAbsentRegistrations(ctx, tx, internCode)
	if err != nil {
		return err
	}
	return s.repo.SetCandidateExamCount(ctx, tx, internCode, count)
}

func candidateName(c *domain.ExamCandidate) string {
	return licensedomain.HolderName(deref(c.FirstName), deref(c.MiddleName), deref(c.LastName))
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
