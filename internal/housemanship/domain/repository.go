package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, posting *HousemanshipPosting) error
	Update(ctx context.Context, db *gorm.DB, posting *HousemanshipPosting) error
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*HousemanshipPosting, error)
	ListByFacility(ctx context.Context, db *gorm.DB, facilityUUID string) ([]HousemanshipPosting, error)
	ListByInternCode(ctx context.Context, db *gorm.DB, internCode string) ([]HousemanshipPosting, error)
	CountOngoingByFacility(ctx context.Context, db *gorm.DB, facilityUUID string) (int, error)
}
