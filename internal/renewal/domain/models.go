// Package domain contains persistence models for license renewals.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RenewalStatus represents renewal lifecycle states.
type RenewalStatus string

const (
	RenewalStatusPending   RenewalStatus = "pending"
	RenewalStatusApproved  RenewalStatus = "approved"
	RenewalStatusRejected  RenewalStatus = "rejected"
	RenewalStatusCancelled RenewalStatus = "cancelled"
)

// LicenseRenewal is one renewal cycle for a license. History is append-only;
// "latest" means highest id (insertion order), never the business dates. A
// renewal back-dated after the fact still counts as latest.
type LicenseRenewal struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	UUID        string        `gorm:"type:char(36);uniqueIndex;not null"`
	LicenseUUID string        `gorm:"column:license_uuid;type:char(36);not null;index"`
	StartDate   time.Time     `gorm:"column:start_date;not null"`
	Expiry      time.Time     `gorm:"not null"`
	Status      RenewalStatus `gorm:"type:text;not null;default:'pending'"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (LicenseRenewal) TableName() string { return "license_renewals" }

// BeforeCreate assigns the uuid surrogate key when the caller did not supply one.
func (r *LicenseRenewal) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(r.UUID) == "" {
		r.UUID = uuid.NewString()
	}
	return nil
}
