package repository

import (
	"context"

	"github.com/medcouncil/registry/internal/housemanship/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, posting *domain.HousemanshipPosting) error {
	return db.WithContext(ctx).Create(posting).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, posting *domain.HousemanshipPosting) error {
	return db.WithContext(ctx).Exec(
		`UPDATE housemanship_postings
		 SET discipline = ?, end_date = ?, status = ?, updated_at = ?
		 WHERE uuid = ?`,
		posting.Discipline,
		posting.EndDate,
		posting.Status,
		posting.UpdatedAt,
		posting.UUID,
	).Error
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.HousemanshipPosting, error) {
	var posting domain.HousemanshipPosting
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM housemanship_postings WHERE uuid = ?`,
		uuid,
	).Scan(&posting).Error
	if err != nil {
		return nil, err
	}
	if posting.ID == 0 {
		return nil, nil
	}
	return &posting, nil
}

func (r *repo) ListByFacility(ctx context.Context, db *gorm.DB, facilityUUID string) ([]domain.HousemanshipPosting, error) {
	var postings []domain.HousemanshipPosting
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM housemanship_postings WHERE facility_uuid = ? ORDER BY start_date DESC, id DESC`,
		facilityUUID,
	).Scan(&postings).Error
	if err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *repo) ListByInternCode(ctx context.Context, db *gorm.DB, internCode string) ([]domain.HousemanshipPosting, error) {
	var postings []domain.HousemanshipPosting
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM housemanship_postings WHERE intern_code = ? ORDER BY start_date DESC, id DESC`,
		internCode,
	).Scan(&postings).Error
	if err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *repo) CountOngoingByFacility(ctx context.Context, db *gorm.DB, facilityUUID string) (int, error) {
	var count int
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM housemanship_postings WHERE facility_uuid = ? AND status = ?`,
		facilityUUID,
		domain.PostingOngoing,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
