package domain

import (
	"context"

	"github.com/medcouncil/registry/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFacilityFilter struct {
	Region   string
	District string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, facility *Facility) error
	Update(ctx context.Context, db *gorm.DB, facility *Facility) error
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*Facility, error)
	List(ctx context.Context, db *gorm.DB, filter ListFacilityFilter, page pagination.Pagination) ([]*Facility, error)
}
