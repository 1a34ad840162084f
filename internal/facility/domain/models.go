// Package domain contains persistence models for the facility register.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Facility is a licensed health facility. Its name is the source of truth for
// the matching license's derived name column.
type Facility struct {
	ID            snowflake.ID      `gorm:"primaryKey"`
	UUID          string            `gorm:"type:char(36);uniqueIndex;not null"`
	LicenseNumber string            `gorm:"column:license_number;type:varchar(255);uniqueIndex;not null"`
	Name          string            `gorm:"type:text;not null"`
	Slug          string            `gorm:"type:text;not null;index"`
	Region        string            `gorm:"type:text"`
	District      string            `gorm:"type:text"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Facility) TableName() string { return "facilities" }

// BeforeCreate assigns the uuid surrogate key when the caller did not supply one.
func (f *Facility) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(f.UUID) == "" {
		f.UUID = uuid.NewString()
	}
	return nil
}
