package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindInvoiceByUUID(ctx context.Context, db *gorm.DB, uuid string) (*Invoice, error)
	SetInvoiceStatus(ctx context.Context, db *gorm.DB, uuid string, status InvoiceStatus) error

	// SetInvoiceAmount writes the derived amount column.
	SetInvoiceAmount(ctx context.Context, db *gorm.DB, uuid string, amount int64) error

	InsertLineItem(ctx context.Context, db *gorm.DB, item *InvoiceLineItem) error
	UpdateLineItem(ctx context.Context, db *gorm.DB, item *InvoiceLineItem) error
	DeleteLineItem(ctx context.Context, db *gorm.DB, uuid string) error
	FindLineItemByUUID(ctx context.Context, db *gorm.DB, uuid string) (*InvoiceLineItem, error)
	ListLineItems(ctx context.Context, db *gorm.DB, invoiceUUID string) ([]InvoiceLineItem, error)

	// SumLineTotals recomputes the invoice amount from source rows.
	SumLineTotals(ctx context.Context, db *gorm.DB, invoiceUUID string) (int64, error)

	ListOutstanding(ctx context.Context, db *gorm.DB) ([]OutstandingInvoice, error)
}
