package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetByUUID(ctx context.Context, uuid string) (InvoiceResponse, error)

	AddLineItem(ctx context.Context, invoiceUUID string, item LineItemInput) (InvoiceResponse, error)
	UpdateLineItem(ctx context.Context, lineItemUUID string, req UpdateLineItemRequest) (InvoiceResponse, error)
	DeleteLineItem(ctx context.Context, lineItemUUID string) (InvoiceResponse, error)

	Finalize(ctx context.Context, uuid string) (InvoiceResponse, error)
	Void(ctx context.Context, uuid string) (InvoiceResponse, error)

	ListOutstanding(ctx context.Context) ([]OutstandingInvoice, error)
}

type LineItemInput struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"`
}

type CreateInvoiceRequest struct {
	LicenseNumber string          `json:"license_number"`
	Currency      string          `json:"currency"`
	DueDate       *time.Time      `json:"due_date"`
	LineItems     []LineItemInput `json:"line_items"`
}

type UpdateLineItemRequest struct {
	Description *string `json:"description"`
	Quantity    *int64  `json:"quantity"`
	UnitAmount  *int64  `json:"unit_amount"`
}

type InvoiceResponse struct {
	Invoice   Invoice           `json:"invoice"`
	LineItems []InvoiceLineItem `json:"line_items"`
}

// OutstandingInvoice is one row of the outstanding listing: a non-settled
// invoice and how much of it remains unpaid.
type OutstandingInvoice struct {
	UUID              string        `json:"uuid"`
	InvoiceNumber     string        `json:"invoice_number"`
	LicenseNumber     string        `json:"license_number"`
	Amount            int64         `json:"amount"`
	PaidAmount        int64         `json:"paid_amount"`
	OutstandingAmount int64         `json:"outstanding_amount"`
	Currency          string        `json:"currency"`
	Status            InvoiceStatus `json:"status"`
	DueDate           *time.Time    `json:"due_date"`
}

var (
	ErrInvalidLicenseNumber = errors.New("invalid_license_number")
	ErrInvalidLineItem      = errors.New("invalid_line_item")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrNotFound             = errors.New("not_found")
)
