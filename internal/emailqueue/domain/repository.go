package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, email *QueuedEmail) error
	Update(ctx context.Context, db *gorm.DB, email *QueuedEmail) error
	ListPending(ctx context.Context, db *gorm.DB, limit int) ([]QueuedEmail, error)
}
