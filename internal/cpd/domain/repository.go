package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertActivity(ctx context.Context, db *gorm.DB, activity *CPDActivity) error
	FindActivityByUUID(ctx context.Context, db *gorm.DB, uuid string) (*CPDActivity, error)

	InsertAttendance(ctx context.Context, db *gorm.DB, attendance *CPDAttendance) error

	// SumPointsForYear totals points awarded to a license holder for
	// activities dated within the given calendar year.
	SumPointsForYear(ctx context.Context, db *gorm.DB, licenseNumber string, year int) (int, error)
}
