package repository

import (
	"context"
	"time"

	"github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, license *domain.License) error {
	return db.WithContext(ctx).Create(license).Error
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, licenseNumber string) (*domain.License, error) {
	var license domain.License
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM licenses WHERE license_number = ?`,
		licenseNumber,
	).Scan(&license).Error
	if err != nil {
		return nil, err
	}
	if license.ID == 0 {
		return nil, nil
	}
	return &license, nil
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.License, error) {
	var license domain.License
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM licenses WHERE uuid = ?`,
		uuid,
	).Scan(&license).Error
	if err != nil {
		return nil, err
	}
	if license.ID == 0 {
		return nil, nil
	}
	return &license, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListLicenseFilter, page pagination.Pagination) ([]*domain.License, error) {
	var licenses []*domain.License
	stmt := db.WithContext(ctx).Model(&domain.License{})
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = page.Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&licenses).Error
	if err != nil {
		return nil, err
	}
	return licenses, nil
}

func (r *repo) SetHolderName(ctx context.Context, db *gorm.DB, licenseNumber, name string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE licenses SET name = ?, updated_at = ? WHERE license_number = ?`,
		name,
		time.Now().UTC(),
		licenseNumber,
	).Error
}

func (r *repo) SetRenewalSnapshot(ctx context.Context, db *gorm.DB, licenseUUID string, snap domain.RenewalSnapshot) error {
	return db.WithContext(ctx).Exec(
		`UPDATE licenses
		 SET last_renewal_start = ?, last_renewal_expiry = ?, last_renewal_status = ?, updated_at = ?
		 WHERE uuid = ?`,
		snap.Start,
		snap.Expiry,
		snap.Status,
		time.Now().UTC(),
		licenseUUID,
	).Error
}

func (r *repo) SetStatus(ctx context.Context, db *gorm.DB, licenseUUID string, status domain.LicenseStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE licenses SET status = ?, updated_at = ? WHERE uuid = ?`,
		status,
		time.Now().UTC(),
		licenseUUID,
	).Error
}

func (r *repo) ListExpiring(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]*domain.License, error) {
	var licenses []*domain.License
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM licenses
		 WHERE status = ? AND last_renewal_expiry IS NOT NULL AND last_renewal_expiry <= ?
		 ORDER BY last_renewal_expiry ASC`,
		domain.LicenseStatusActive,
		cutoff,
	).Scan(&licenses).Error
	if err != nil {
		return nil, err
	}
	return licenses, nil
}
