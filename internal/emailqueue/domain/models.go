package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// maxAttempts before a queued email is parked as failed.
const MaxAttempts = 5

type QueuedEmail struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	UUID      string       `json:"uuid" gorm:"type:char(36);uniqueIndex;not null"`
	Recipient string       `json:"recipient" gorm:"type:text;not null"`
	Subject   string       `json:"subject" gorm:"type:text;not null"`
	Body      string       `json:"body" gorm:"type:text;not null"`
	Status    EmailStatus  `json:"status" gorm:"type:varchar(50);not null;default:'pending';index"`
	Attempts  int          `json:"attempts" gorm:"not null;default:0"`
	LastError *string      `json:"last_error" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (QueuedEmail) TableName() string { return "email_queue" }

func (e *QueuedEmail) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(e.UUID) == "" {
		e.UUID = uuid.NewString()
	}
	return nil
}
