package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreatePostingRequest) (HousemanshipPosting, error)
	Update(ctx context.Context, uuid string, req UpdatePostingRequest) (HousemanshipPosting, error)
	GetByUUID(ctx context.Context, uuid string) (HousemanshipPosting, error)
	ListByFacility(ctx context.Context, facilityUUID string) (FacilityPostings, error)
	ListByInternCode(ctx context.Context, internCode string) ([]HousemanshipPosting, error)
}

type CreatePostingRequest struct {
	InternCode   string     `json:"intern_code"`
	FacilityUUID string     `json:"facility_uuid"`
	Discipline   string     `json:"discipline"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

type UpdatePostingRequest struct {
	Discipline *string    `json:"discipline"`
	EndDate    *time.Time `json:"end_date"`
	Status     *string    `json:"status"`
}

// FacilityPostings is the per-facility capacity view: every posting at the
// facility plus how many are still ongoing.
type FacilityPostings struct {
	FacilityUUID string                `json:"facility_uuid"`
	OngoingCount int                   `json:"ongoing_count"`
	Postings     []HousemanshipPosting `json:"postings"`
}

var (
	ErrInvalidInternCode = errors.New("invalid_intern_code")
	ErrInvalidFacility   = errors.New("invalid_facility")
	ErrInvalidDiscipline = errors.New("invalid_discipline")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidDates      = errors.New("invalid_dates")
	ErrNotFound          = errors.New("not_found")
)
