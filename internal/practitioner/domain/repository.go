package domain

import (
	"context"

	"github.com/medcouncil/registry/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListPractitionerFilter struct {
	LicenseNumber string
	Specialty     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, practitioner *Practitioner) error
	Update(ctx context.Context, db *gorm.DB, practitioner *Practitioner) error
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*Practitioner, error)
	FindByLicenseNumber(ctx context.Context, db *gorm.DB, licenseNumber string) (*Practitioner, error)
	List(ctx context.Context, db *gorm.DB, filter ListPractitionerFilter, page pagination.Pagination) ([]*Practitioner, error)
}
