package repository

import (
	"context"
	"time"

	"github.com/medcouncil/registry/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertInvoice(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindInvoiceByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE uuid = ?`,
		uuid,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) SetInvoiceStatus(ctx context.Context, db *gorm.DB, uuid string, status domain.InvoiceStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, updated_at = ? WHERE uuid = ?`,
		status,
		time.Now().UTC(),
		uuid,
	).Error
}

func (r *repo) SetInvoiceAmount(ctx context.Context, db *gorm.DB, uuid string, amount int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices SET amount = ?, updated_at = ? WHERE uuid = ?`,
		amount,
		time.Now().UTC(),
		uuid,
	).Error
}

func (r *repo) InsertLineItem(ctx context.Context, db *gorm.DB, item *domain.InvoiceLineItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) UpdateLineItem(ctx context.Context, db *gorm.DB, item *domain.InvoiceLineItem) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoice_line_items
		 SET description = ?, quantity = ?, unit_amount = ?, line_total = ?, updated_at = ?
		 WHERE uuid = ?`,
		item.Description,
		item.Quantity,
		item.UnitAmount,
		item.LineTotal,
		item.UpdatedAt,
		item.UUID,
	).Error
}

func (r *repo) DeleteLineItem(ctx context.Context, db *gorm.DB, uuid string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM invoice_line_items WHERE uuid = ?`,
		uuid,
	).Error
}

func (r *repo) FindLineItemByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.InvoiceLineItem, error) {
	var item domain.InvoiceLineItem
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM invoice_line_items WHERE uuid = ?`,
		uuid,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) ListLineItems(ctx context.Context, db *gorm.DB, invoiceUUID string) ([]domain.InvoiceLineItem, error) {
	var items []domain.InvoiceLineItem
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM invoice_line_items WHERE invoice_uuid = ? ORDER BY id ASC`,
		invoiceUUID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SumLineTotals(ctx context.Context, db *gorm.DB, invoiceUUID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(line_total), 0) FROM invoice_line_items WHERE invoice_uuid = ?`,
		invoiceUUID,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) ListOutstanding(ctx context.Context, db *gorm.DB) ([]domain.OutstandingInvoice, error) {
	var rows []domain.OutstandingInvoice
	err := db.WithContext(ctx).Raw(
		`SELECT i.uuid,
		        i.invoice_number,
		        i.license_number,
		        i.amount,
		        COALESCE(p.paid, 0) AS paid_amount,
		        i.amount - COALESCE(p.paid, 0) AS outstanding_amount,
		        i.currency,
		        i.status,
		        i.due_date
		 FROM invoices i
		 LEFT JOIN (
		     SELECT invoice_uuid, SUM(amount) AS paid
		     FROM payments
		     WHERE status = 'completed'
		     GROUP BY invoice_uuid
		 ) p ON p.invoice_uuid = i.uuid
		 WHERE i.status = 'pending'
		   AND i.amount - COALESCE(p.paid, 0) > 0
		 ORDER BY i.due_date ASC, i.id ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
