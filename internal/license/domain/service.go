package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateLicenseRequest) (License, error)
	GetByNumber(ctx context.Context, licenseNumber string) (License, error)
	GetByUUID(ctx context.Context, uuid string) (License, error)
	List(ctx context.Context, req ListLicenseRequest) (ListLicenseResponse, error)
	SetStatus(ctx context.Context, uuid string, status LicenseStatus) (License, error)
}

type CreateLicenseRequest struct {
	LicenseNumber string `json:"license_number"`
	Type          string `json:"type"`
	UUID          string `json:"uuid,omitempty"`
}

type ListLicenseRequest struct {
	PageToken string
	PageSize  int
	Type      string
	Status    string
}

type ListLicenseResponse struct {
	Licenses      []LicenseResponse `json:"licenses"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

type LicenseResponse struct {
	UUID              string     `json:"uuid"`
	LicenseNumber     string     `json:"license_number"`
	Type              string     `json:"type"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
	LastRenewalStart  *time.Time `json:"last_renewal_start"`
	LastRenewalExpiry *time.Time `json:"last_renewal_expiry"`
	LastRenewalStatus *string    `json:"last_renewal_status"`
	CreatedAt         time.Time  `json:"created_at"`
}

var (
	ErrInvalidLicenseNumber = errors.New("invalid_license_number")
	ErrInvalidLicenseType   = errors.New("invalid_license_type")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrDuplicateLicense     = errors.New("duplicate_license")
	ErrNotFound             = errors.New("not_found")
)
