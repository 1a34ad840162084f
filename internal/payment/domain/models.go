package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCard         PaymentMethod = "card"
)

// Payment amounts are integer minor units, same as invoices. Reference is a
// ULID assigned at insert and used on receipts.
type Payment struct {
	ID          snowflake.ID  `json:"id,string" gorm:"primaryKey"`
	UUID        string        `json:"uuid" gorm:"type:char(36);uniqueIndex;not null"`
	InvoiceUUID string        `json:"invoice_uuid" gorm:"type:char(36);index;not null"`
	Reference   string        `json:"reference" gorm:"type:varchar(255);uniqueIndex;not null"`
	Amount      int64         `json:"amount" gorm:"not null"`
	Method      PaymentMethod `json:"method" gorm:"type:varchar(50);not null"`
	Status      PaymentStatus `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(p.UUID) == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}
