package domain

import (
	"context"
	"time"

	"github.com/medcouncil/registry/pkg/db/pagination"
	"gorm.io/gorm"
)

// RenewalSnapshot is the denormalized view of the newest renewal row.
type RenewalSnapshot struct {
	Start  *time.Time
	Expiry *time.Time
	Status *string
}

type ListLicenseFilter struct {
	Type   string
	Status string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, license *License) error
	FindByNumber(ctx context.Context, db *gorm.DB, licenseNumber string) (*License, error)
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*License, error)
	List(ctx context.Context, db *gorm.DB, filter ListLicenseFilter, page pagination.Pagination) ([]*License, error)

	// SetHolderName overwrites the derived name column for the license with
	// the given number. Matching zero rows is not an error.
	SetHolderName(ctx context.Context, db *gorm.DB, licenseNumber, name string) error

	// SetRenewalSnapshot overwrites the last_renewal_* columns for the
	// license with the given uuid. Nil fields null the columns.
	SetRenewalSnapshot(ctx context.Context, db *gorm.DB, licenseUUID string, snap RenewalSnapshot) error

	// SetStatus transitions the license status by uuid.
	SetStatus(ctx context.Context, db *gorm.DB, licenseUUID string, status LicenseStatus) error

	// ListExpiring returns active licenses whose snapshot expiry falls on or
	// before the cutoff.
	ListExpiring(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]*License, error)
}
