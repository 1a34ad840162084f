package repository

import (
	"context"

	"github.com/medcouncil/registry/internal/facility/domain"
	"github.com/medcouncil/registry/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, facility *domain.Facility) error {
	return db.WithContext(ctx).Create(facility).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, facility *domain.Facility) error {
	return db.WithContext(ctx).Exec(
		`UPDATE facilities
		 SET name = ?, slug = ?, region = ?, district = ?, updated_at = ?
		 WHERE uuid = ?`,
		facility.Name,
		facility.Slug,
		facility.Region,
		facility.District,
		facility.UpdatedAt,
		facility.UUID,
	).Error
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.Facility, error) {
	var facility domain.Facility
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM facilities WHERE uuid = ?`,
		uuid,
	).Scan(&facility).Error
	if err != nil {
		return nil, err
	}
	if facility.ID == 0 {
		return nil, nil
	}
	return &facility, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFacilityFilter, page pagination.Pagination) ([]*domain.Facility, error) {
	var facilities []*domain.Facility
	stmt := db.WithContext(ctx).Model(&domain.Facility{})
	if filter.Region != "" {
		stmt = stmt.Where("region = ?", filter.Region)
	}
	if filter.District != "" {
		stmt = stmt.Where("district = ?", filter.District)
	}
	stmt = page.Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&facilities).Error
	if err != nil {
		return nil, err
	}
	return facilities, nil
}
