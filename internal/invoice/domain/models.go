package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceVoid    InvoiceStatus = "void"
)

// Invoice amounts are integer minor units (pesewas, cents). Amount is derived
// from the line items and never authored directly.
type Invoice struct {
	ID            snowflake.ID  `json:"id,string" gorm:"primaryKey"`
	UUID          string        `json:"uuid" gorm:"type:char(36);uniqueIndex;not null"`
	InvoiceNumber string        `json:"invoice_number" gorm:"type:varchar(255);uniqueIndex;not null"`
	LicenseNumber string        `json:"license_number" gorm:"type:varchar(255);index;not null"`
	Amount        int64         `json:"amount" gorm:"not null;default:0"`
	Currency      string        `json:"currency" gorm:"type:varchar(10);not null;default:'GHS'"`
	Status        InvoiceStatus `json:"status" gorm:"type:varchar(50);not null;default:'draft'"`
	DueDate       *time.Time    `json:"due_date"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(i.UUID) == "" {
		i.UUID = uuid.NewString()
	}
	return nil
}

type InvoiceLineItem struct {
	ID          snowflake.ID `json:"id,string" gorm:"primaryKey"`
	UUID        string       `json:"uuid" gorm:"type:char(36);uniqueIndex;not null"`
	InvoiceUUID string       `json:"invoice_uuid" gorm:"type:char(36);index;not null"`
	Description string       `json:"description" gorm:"type:text;not null"`
	Quantity    int64        `json:"quantity" gorm:"not null;default:1"`
	UnitAmount  int64        `json:"unit_amount" gorm:"not null;default:0"`
	LineTotal   int64        `json:"line_total" gorm:"not null;default:0"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (InvoiceLineItem) TableName() string { return "invoice_line_items" }

func (l *InvoiceLineItem) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(l.UUID) == "" {
		l.UUID = uuid.NewString()
	}
	return nil
}
