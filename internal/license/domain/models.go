// Package domain contains persistence models for the license register.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LicenseType identifies the kind of regulated party behind a license.
type LicenseType string

const (
	LicenseTypePractitioner LicenseType = "practitioner"
	LicenseTypeFacility     LicenseType = "facility"
	LicenseTypeCandidate    LicenseType = "candidate"
)

// LicenseStatus represents license lifecycle states.
type LicenseStatus string

const (
	LicenseStatusActive    LicenseStatus = "active"
	LicenseStatusSuspended LicenseStatus = "suspended"
	LicenseStatusExpired   LicenseStatus = "expired"
	LicenseStatusRevoked   LicenseStatus = "revoked"
)

// License is the master regulatory record for one regulated party. Name and
// the last_renewal_* columns are derived: name mirrors the holder's identity
// fields and the snapshot mirrors the newest renewal row.
type License struct {
	ID                snowflake.ID      `gorm:"primaryKey"`
	UUID              string            `gorm:"type:char(36);uniqueIndex;not null"`
	LicenseNumber     string            `gorm:"column:license_number;type:varchar(255);uniqueIndex;not null"`
	Type              LicenseType       `gorm:"type:text;not null"`
	Name              string            `gorm:"type:text;not null;default:''"`
	Status            LicenseStatus     `gorm:"type:text;not null;default:'active'"`
	LastRenewalStart  *time.Time        `gorm:"column:last_renewal_start"`
	LastRenewalExpiry *time.Time        `gorm:"column:last_renewal_expiry"`
	LastRenewalStatus *string           `gorm:"column:last_renewal_status;type:text"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (License) TableName() string { return "licenses" }

// BeforeCreate assigns the uuid surrogate key when the caller did not supply
// one. A client-supplied value is preserved.
func (l *License) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(l.UUID) == "" {
		l.UUID = uuid.NewString()
	}
	return nil
}

// HolderName joins identity name parts into the derived license name: parts
// are trimmed, empty parts dropped, remainder joined with single spaces.
func HolderName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, " ")
}
