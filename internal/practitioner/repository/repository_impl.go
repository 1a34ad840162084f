package repository

import (
	"context"

	"github.com/medcouncil/registry/internal/practitioner/domain"
	"github.com/medcouncil/registry/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, practitioner *domain.Practitioner) error {
	return db.WithContext(ctx).Create(practitioner).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, practitioner *domain.Practitioner) error {
	return db.WithContext(ctx).Exec(
		`UPDATE practitioners
		 SET first_name = ?, middle_name = ?, last_name = ?, specialty = ?, qualification = ?, updated_at = ?
		 WHERE uuid = ?`,
		practitioner.FirstName,
		practitioner.MiddleName,
		practitioner.LastName,
		practitioner.Specialty,
		practitioner.Qualification,
		practitioner.UpdatedAt,
		practitioner.UUID,
	).Error
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.Practitioner, error) {
	var practitioner domain.Practitioner
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM practitioners WHERE uuid = ?`,
		uuid,
	).Scan(&practitioner).Error
	if err != nil {
		return nil, err
	}
	if practitioner.ID == 0 {
		return nil, nil
	}
	return &practitioner, nil
}

func (r *repo) FindByLicenseNumber(ctx context.Context, db *gorm.DB, licenseNumber string) (*domain.Practitioner, error) {
	var practitioner domain.Practitioner
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM practitioners WHERE license_number = ?`,
		licenseNumber,
	).Scan(&practitioner).Error
	if err != nil {
		return nil, err
	}
	if practitioner.ID == 0 {
		return nil, nil
	}
	return &practitioner, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPractitionerFilter, page pagination.Pagination) ([]*domain.Practitioner, error) {
	var practitioners []*domain.Practitioner
	stmt := db.WithContext(ctx).Model(&domain.Practitioner{})
	if filter.LicenseNumber != "" {
		stmt = stmt.Where("license_number = ?", filter.LicenseNumber)
	}
	if filter.Specialty != "" {
		stmt = stmt.Where("specialty = ?", filter.Specialty)
	}
	stmt = page.Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&practitioners).Error
	if err != nil {
		return nil, err
	}
	return practitioners, nil
}
