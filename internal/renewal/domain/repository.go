package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, renewal *LicenseRenewal) error
	Update(ctx context.Context, db *gorm.DB, renewal *LicenseRenewal) error
	Delete(ctx context.Context, db *gorm.DB, uuid string) error
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*LicenseRenewal, error)
	ListByLicense(ctx context.Context, db *gorm.DB, licenseUUID string) ([]LicenseRenewal, error)

	// FindLatestByLicense returns the highest-id renewal for the license, or
	// nil when none remain.
	FindLatestByLicense(ctx context.Context, db *gorm.DB, licenseUUID string) (*LicenseRenewal, error)
}
