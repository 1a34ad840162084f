package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	SetStatus(ctx context.Context, db *gorm.DB, uuid string, status PaymentStatus) error
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*Payment, error)
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Payment, error)

	// SumCompleted totals completed payments against one invoice.
	SumCompleted(ctx context.Context, db *gorm.DB, invoiceUUID string) (int64, error)

	Summary(ctx context.Context, db *gorm.DB, invoiceUUID string) (*PaymentSummary, error)
}
