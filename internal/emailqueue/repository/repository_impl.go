package repository

import (
	"context"

	"github.com/medcouncil/registry/internal/emailqueue/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, email *domain.QueuedEmail) error {
	return db.WithContext(ctx).Create(email).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, email *domain.QueuedEmail) error {
	return db.WithContext(ctx).Exec(
		`UPDATE email_queue
		 SET status = ?, attempts = ?, last_error = ?, updated_at = ?
		 WHERE uuid = ?`,
		email.Status,
		email.Attempts,
		email.LastError,
		email.UpdatedAt,
		email.UUID,
	).Error
}

func (r *repo) ListPending(ctx context.Context, db *gorm.DB, limit int) ([]domain.QueuedEmail, error) {
	var emails []domain.QueuedEmail
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM email_queue WHERE status = ? ORDER BY id ASC LIMIT ?`,
		domain.EmailPending,
		limit,
	).Scan(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
