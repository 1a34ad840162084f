package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateExam(ctx context.Context, req CreateExamRequest) (Exam, error)
	CreateCandidate(ctx context.Context, req CreateCandidateRequest) (ExamCandidate, error)
	UpdateCandidate(ctx context.Context, uuid string, req UpdateCandidateRequest) (ExamCandidate, error)
	GetCandidateByInternCode(ctx context.Context, internCode string) (ExamCandidate, error)

	Register(ctx context.Context, req RegisterRequest) (ExamRegistration, error)
	UpdateRegistration(ctx context.Context, uuid string, req UpdateRegistrationRequest) (ExamRegistration, error)
	DeleteRegistration(ctx context.Context, uuid string) error
	ListRegistrations(ctx context.Context, internCode string) ([]RegistrationResponse, error)
}

type CreateExamRequest struct {
	Title    string    `json:"title"`
	ExamDate time.Time `json:"exam_date"`
}

type CreateCandidateRequest struct {
	InternCode string  `json:"intern_code"`
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
}

type UpdateCandidateRequest struct {
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
}

type RegisterRequest struct {
	ExamUUID   string `json:"exam_uuid"`
	InternCode string `json:"intern_code"`
}

// UpdateRegistrationRequest can publish a result or move the registration to
// another candidate's intern code.
type UpdateRegistrationRequest struct {
	Result     *string `json:"result"`
	InternCode *string `json:"intern_code"`
}

type RegistrationResponse struct {
	UUID       string    `json:"uuid"`
	ExamUUID   string    `json:"exam_uuid"`
	InternCode string    `json:"intern_code"`
	Result     string    `json:"result"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrInvalidInternCode  = errors.New("invalid_intern_code")
	ErrInvalidExam        = errors.New("invalid_exam")
	ErrInvalidResult      = errors.New("invalid_result")
	ErrDuplicateCandidate = errors.New("duplicate_candidate")
	ErrNotFound           = errors.New("not_found")
)
