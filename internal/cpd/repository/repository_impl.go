package repository

import (
	"context"
	"time"

	"github.com/medcouncil/registry/internal/cpd/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertActivity(ctx context.Context, db *gorm.DB, activity *domain.CPDActivity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) FindActivityByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.CPDActivity, error) {
	var activity domain.CPDActivity
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM cpd_activities WHERE uuid = ?`,
		uuid,
	).Scan(&activity).Error
	if err != nil {
		return nil, err
	}
	if activity.ID == 0 {
		return nil, nil
	}
	return &activity, nil
}

func (r *repo) InsertAttendance(ctx context.Context, db *gorm.DB, attendance *domain.CPDAttendance) error {
	return db.WithContext(ctx).Create(attendance).Error
}

func (r *repo) SumPointsForYear(ctx context.Context, db *gorm.DB, licenseNumber string, year int) (int, error) {
	// Half-open date range keeps the year filter portable across dialects.
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var total int
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(att.points_awarded), 0)
		 FROM cpd_attendances att
		 JOIN cpd_activities act ON act.uuid = att.activity_uuid
		 WHERE att.license_number = ?
		   AND act.activity_date >= ?
		   AND act.activity_date < ?`,
		licenseNumber,
		from,
		to,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
