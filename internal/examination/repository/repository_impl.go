package repository

import (
	"context"
	"time"

	"github.com/medcouncil/registry/internal/examination/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertExam(ctx context.Context, db *gorm.DB, exam *domain.Exam) error {
	return db.WithContext(ctx).Create(exam).Error
}

func (r *repo) FindExamByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.Exam, error) {
	var exam domain.Exam
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM exams WHERE uuid = ?`,
		uuid,
	).Scan(&exam).Error
	if err != nil {
		return nil, err
	}
	if exam.ID == 0 {
		return nil, nil
	}
	return &exam, nil
}

func (r *repo) InsertCandidate(ctx context.Context, db *gorm.DB, candidate *domain.ExamCandidate) error {
	return db.WithContext(ctx).Create(candidate).Error
}

func (r *repo) UpdateCandidate(ctx context.Context, db *gorm.DB, candidate *domain.ExamCandidate) error {
	return db.WithContext(ctx).Exec(
		`UPDATE exam_candidates
		 SET first_name = ?, middle_name = ?, last_name = ?, updated_at = ?
		 WHERE uuid = ?`,
		candidate.FirstName,
		candidate.MiddleName,
		candidate.LastName,
		candidate.UpdatedAt,
		candidate.UUID,
	).Error
}

func (r *repo) FindCandidateByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.ExamCandidate, error) {
	var candidate domain.ExamCandidate
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM exam_candidates WHERE uuid = ?`,
		uuid,
	).Scan(&candidate).Error
	if err != nil {
		return nil, err
	}
	if candidate.ID == 0 {
		return nil, nil
	}
	return &candidate, nil
}

func (r *repo) FindCandidateByInternCode(ctx context.Context, db *gorm.DB, internCode string) (*domain.ExamCandidate, error) {
	var candidate domain.ExamCandidate
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM exam_candidates WHERE intern_code = ?`,
		internCode,
	).Scan(&candidate).Error
	if err != nil {
		return nil, err
	}
	if candidate.ID == 0 {
		return nil, nil
	}
	return &candidate, nil
}

func (r *repo) InsertRegistration(ctx context.Context, db *gorm.DB, registration *domain.ExamRegistration) error {
	return db.WithContext(ctx).Create(registration).Error
}

func (r *repo) UpdateRegistration(ctx context.Context, db *gorm.DB, registration *domain.ExamRegistration) error {
	return db.WithContext(ctx).Exec(
		`UPDATE exam_registrations
		 SET intern_code = ?, result = ?, updated_at = ?
		 WHERE uuid = ?`,
		registration.InternCode,
		registration.Result,
		registration.UpdatedAt,
		registration.UUID,
	).Error
}

func (r *repo) DeleteRegistration(ctx context.Context, db *gorm.DB, uuid string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM exam_registrations WHERE uuid = ?`,
		uuid,
	).Error
}

func (r *repo) FindRegistrationByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.ExamRegistration, error) {
	var registration domain.ExamRegistration
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM exam_registrations WHERE uuid = ?`,
		uuid,
	).Scan(&registration).Error
	if err != nil {
		return nil, err
	}
	if registration.ID == 0 {
		return nil, nil
	}
	return &registration, nil
}

func (r *repo) ListRegistrationsByInternCode(ctx context.Context, db *gorm.DB, internCode string) ([]domain.ExamRegistration, error) {
	var registrations []domain.ExamRegistration
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM exam_registrations WHERE intern_code = ? ORDER BY id DESC`,
		internCode,
	).Scan(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *repo) CountNonAbsentRegistrations(ctx context.Context, db *gorm.DB, internCode string) (int, error) {
	var count int
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM exam_registrations WHERE intern_code = ? AND result != ?`,
		internCode,
		domain.ResultAbsent,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) SetCandidateExamCount(ctx context.Context, db *gorm.DB, internCode string, count int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE exam_candidates SET number_of_exams = ?, updated_at = ? WHERE intern_code = ?`,
		count,
		time.Now().UTC(),
		internCode,
	).Error
}
