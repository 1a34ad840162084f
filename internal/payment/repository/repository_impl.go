package repository

import (
	"context"
	"time"

	"github.com/medcouncil/registry/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) SetStatus(ctx context.Context, db *gorm.DB, uuid string, status domain.PaymentStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE payments SET status = ?, updated_at = ? WHERE uuid = ?`,
		status,
		time.Now().UTC(),
		uuid,
	).Error
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM payments WHERE uuid = ?`,
		uuid,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM payments WHERE reference = ?`,
		reference,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) SumCompleted(ctx context.Context, db *gorm.DB, invoiceUUID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_uuid = ? AND status = ?`,
		invoiceUUID,
		domain.PaymentCompleted,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) Summary(ctx context.Context, db *gorm.DB, invoiceUUID string) (*domain.PaymentSummary, error) {
	var summary domain.PaymentSummary
	err := db.WithContext(ctx).Raw(
		`SELECT i.uuid AS invoice_uuid,
		        i.invoice_number,
		        i.amount AS invoice_amount,
		        COALESCE(SUM(CASE WHEN p.status = 'completed' THEN p.amount ELSE 0 END), 0) AS completed_total,
		        COUNT(p.id) AS payment_count,
		        MAX(p.updated_at) AS last_payment_at
		 FROM invoices i
		 LEFT JOIN payments p ON p.invoice_uuid = i.uuid
		 WHERE i.uuid = ?
		 GROUP BY i.uuid, i.invoice_number, i.amount`,
		invoiceUUID,
	).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	if summary.InvoiceUUID == "" {
		return nil, nil
	}
	return &summary, nil
}
