package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateFacilityRequest) (Facility, error)
	Update(ctx context.Context, uuid string, req UpdateFacilityRequest) (Facility, error)
	GetByUUID(ctx context.Context, uuid string) (Facility, error)
	List(ctx context.Context, req ListFacilityRequest) (ListFacilityResponse, error)
}

type CreateFacilityRequest struct {
	LicenseNumber string `json:"license_number"`
	Name          string `json:"name"`
	Region        string `json:"region"`
	District      string `json:"district"`
}

type UpdateFacilityRequest struct {
	Name     *string `json:"name"`
	Region   *string `json:"region"`
	District *string `json:"district"`
}

type ListFacilityRequest struct {
	PageToken string
	PageSize  int
	Region    string
	District  string
}

type ListFacilityResponse struct {
	Facilities    []FacilityResponse `json:"facilities"`
	NextPageToken string             `json:"next_page_token,omitempty"`
}

type FacilityResponse struct {
	UUID          string    `json:"uuid"`
	LicenseNumber string    `json:"license_number"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Region        string    `json:"region"`
	District      string    `json:"district"`
	CreatedAt     time.Time `json:"created_at"`
}

var (
	ErrInvalidLicenseNumber = errors.New("invalid_license_number")
	ErrInvalidName          = errors.New("invalid_name")
	ErrDuplicateFacility    = errors.New("duplicate_facility")
	ErrNotFound             = errors.New("not_found")
)
