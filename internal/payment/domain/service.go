package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (Payment, error)
	// Complete marks a payment completed and settles the parent invoice
	// status from the completed-payment total.
	Complete(ctx context.Context, uuid string) (Payment, error)
	Fail(ctx context.Context, uuid string) (Payment, error)
	GetByReference(ctx context.Context, reference string) (Payment, error)
	SummaryByInvoice(ctx context.Context, invoiceUUID string) (PaymentSummary, error)
}

type CreatePaymentRequest struct {
	InvoiceUUID string `json:"invoice_uuid"`
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
}

// PaymentSummary mirrors the reporting view: per-invoice payment totals.
type PaymentSummary struct {
	InvoiceUUID    string     `json:"invoice_uuid"`
	InvoiceNumber  string     `json:"invoice_number"`
	InvoiceAmount  int64      `json:"invoice_amount"`
	CompletedTotal int64      `json:"completed_total"`
	PaymentCount   int        `json:"payment_count"`
	LastPaymentAt  *time.Time `json:"last_payment_at"`
}

var (
	ErrInvalidInvoice = errors.New("invalid_invoice")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidMethod  = errors.New("invalid_method")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrNotFound       = errors.New("not_found")
)
