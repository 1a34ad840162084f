package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertExam(ctx context.Context, db *gorm.DB, exam *Exam) error
	FindExamByUUID(ctx context.Context, db *gorm.DB, uuid string) (*Exam, error)

	InsertCandidate(ctx context.Context, db *gorm.DB, candidate *ExamCandidate) error
	UpdateCandidate(ctx context.Context, db *gorm.DB, candidate *ExamCandidate) error
	FindCandidateByUUID(ctx context.Context, db *gorm.DB, uuid string) (*ExamCandidate, error)
	FindCandidateByInternCode(ctx context.Context, db *gorm.DB, internCode string) (*ExamCandidate, error)

	InsertRegistration(ctx context.Context, db *gorm.DB, registration *ExamRegistration) error
	UpdateRegistration(ctx context.Context, db *gorm.DB, registration *ExamRegistration) error
	DeleteRegistration(ctx context.Context, db *gorm.DB, uuid string) error
	FindRegistrationByUUID(ctx context.Context, db *gorm.DB, uuid string) (*ExamRegistration, error)
	ListRegistrationsByInternCode(ctx context.Context, db *gorm.DB, internCode string) ([]ExamRegistration, error)

	// CountNonAbsentRegistrations recomputes the candidate's exam counter
	// from source rows.
	CountNonAbsentRegistrations(ctx context.Context, db *gorm.DB, internCode string) (int, error)

	// SetCandidateExamCount writes the derived counter column.
	SetCandidateExamCount(ctx context.Context, db *gorm.DB, internCode string, count int) error
}
