package repository

import (
	"context"

	"github.com/medcouncil/registry/internal/renewal/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, renewal *domain.LicenseRenewal) error {
	return db.WithContext(ctx).Create(renewal).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, renewal *domain.LicenseRenewal) error {
	return db.WithContext(ctx).Exec(
		`UPDATE license_renewals
		 SET start_date = ?, expiry = ?, status = ?, updated_at = ?
		 WHERE uuid = ?`,
		renewal.StartDate,
		renewal.Expiry,
		renewal.Status,
		renewal.UpdatedAt,
		renewal.UUID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, uuid string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM license_renewals WHERE uuid = ?`,
		uuid,
	).Error
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.LicenseRenewal, error) {
	var renewal domain.LicenseRenewal
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM license_renewals WHERE uuid = ?`,
		uuid,
	).Scan(&renewal).Error
	if err != nil {
		return nil, err
	}
	if renewal.ID == 0 {
		return nil, nil
	}
	return &renewal, nil
}

func (r *repo) ListByLicense(ctx context.Context, db *gorm.DB, licenseUUID string) ([]domain.LicenseRenewal, error) {
	var renewals []domain.LicenseRenewal
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM license_renewals WHERE license_uuid = ? ORDER BY id DESC`,
		licenseUUID,
	).Scan(&renewals).Error
	if err != nil {
		return nil, err
	}
	return renewals, nil
}

func (r *repo) FindLatestByLicense(ctx context.Context, db *gorm.DB, licenseUUID string) (*domain.LicenseRenewal, error) {
	var renewal domain.LicenseRenewal
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM license_renewals WHERE license_uuid = ? ORDER BY id DESC LIMIT 1`,
		licenseUUID,
	).Scan(&renewal).Error
	if err != nil {
		return nil, err
	}
	if renewal.ID == 0 {
		return nil, nil
	}
	return &renewal, nil
}
