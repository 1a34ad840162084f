// Package domain contains persistence models for the practitioner register.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Practitioner owns the identity fields that feed the derived license name.
type Practitioner struct {
	ID            snowflake.ID      `gorm:"primaryKey"`
	UUID          string            `gorm:"type:char(36);uniqueIndex;not null"`
	LicenseNumber string            `gorm:"column:license_number;type:varchar(255);uniqueIndex;not null"`
	FirstName     *string           `gorm:"column:first_name;type:text"`
	MiddleName    *string           `gorm:"column:middle_name;type:text"`
	LastName      *string           `gorm:"column:last_name;type:text"`
	Specialty     string            `gorm:"type:text"`
	Qualification string            `gorm:"type:text"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Practitioner) TableName() string { return "practitioners" }

// BeforeCreate assigns the uuid surrogate key when the caller did not supply one.
func (p *Practitioner) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(p.UUID) == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}
