package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRenewalRequest) (LicenseRenewal, error)
	Update(ctx context.Context, uuid string, req UpdateRenewalRequest) (LicenseRenewal, error)
	Delete(ctx context.Context, uuid string) error
	ListByLicense(ctx context.Context, licenseUUID string) ([]RenewalResponse, error)

	// ResyncSnapshot recomputes the license's last_renewal_* columns from the
	// newest surviving renewal row. Updates do not re-sync automatically, so
	// this is the administrative repair path.
	ResyncSnapshot(ctx context.Context, licenseUUID string) error
}

type CreateRenewalRequest struct {
	LicenseUUID string    `json:"license_uuid"`
	StartDate   time.Time `json:"start_date"`
	Expiry      time.Time `json:"expiry"`
	Status      string    `json:"status"`
}

type UpdateRenewalRequest struct {
	StartDate *time.Time `json:"start_date"`
	Expiry    *time.Time `json:"expiry"`
	Status    *string    `json:"status"`
}

type RenewalResponse struct {
	UUID        string    `json:"uuid"`
	LicenseUUID string    `json:"license_uuid"`
	StartDate   time.Time `json:"start_date"`
	Expiry      time.Time `json:"expiry"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrInvalidLicense = errors.New("invalid_license")
	ErrInvalidDates   = errors.New("invalid_dates")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrNotFound       = errors.New("not_found")
)
