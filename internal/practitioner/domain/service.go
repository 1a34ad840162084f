package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreatePractitionerRequest) (Practitioner, error)
	Update(ctx context.Context, uuid string, req UpdatePractitionerRequest) (Practitioner, error)
	GetByUUID(ctx context.Context, uuid string) (Practitioner, error)
	List(ctx context.Context, req ListPractitionerRequest) (ListPractitionerResponse, error)
}

type CreatePractitionerRequest struct {
	LicenseNumber string  `json:"license_number"`
	FirstName     *string `json:"first_name"`
	MiddleName    *string `json:"middle_name"`
	LastName      *string `json:"last_name"`
	Specialty     string  `json:"specialty"`
	Qualification string  `json:"qualification"`
}

// UpdatePractitionerRequest carries partial updates; nil leaves a field as is,
// a pointer to "" clears it.
type UpdatePractitionerRequest struct {
	FirstName     *string `json:"first_name"`
	MiddleName    *string `json:"middle_name"`
	LastName      *string `json:"last_name"`
	Specialty     *string `json:"specialty"`
	Qualification *string `json:"qualification"`
}

type ListPractitionerRequest struct {
	PageToken     string
	PageSize      int
	LicenseNumber string
	Specialty     string
}

type ListPractitionerResponse struct {
	Practitioners []PractitionerResponse `json:"practitioners"`
	NextPageToken string                 `json:"next_page_token,omitempty"`
}

type PractitionerResponse struct {
	UUID          string    `json:"uuid"`
	LicenseNumber string    `json:"license_number"`
	FirstName     *string   `json:"first_name"`
	MiddleName    *string   `json:"middle_name"`
	LastName      *string   `json:"last_name"`
	Specialty     string    `json:"specialty"`
	Qualification string    `json:"qualification"`
	CreatedAt     time.Time `json:"created_at"`
}

var (
	ErrInvalidLicenseNumber = errors.New("invalid_license_number")
	ErrDuplicatePractitioner = errors.New("duplicate_practitioner")
	ErrNotFound              = errors.New("not_found")
)
