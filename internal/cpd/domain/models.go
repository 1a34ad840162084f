package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CPDActivity is an accredited continuing professional development event.
type CPDActivity struct {
	ID           snowflake.ID `json:"id,string" gorm:"primaryKey"`
	UUID         string       `json:"uuid" gorm:"type:char(36);uniqueIndex;not null"`
	Title        string       `json:"title" gorm:"type:text;not null"`
	Provider     string       `json:"provider" gorm:"type:text"`
	CreditPoints int          `json:"credit_points" gorm:"not null;default:0"`
	ActivityDate time.Time    `json:"activity_date" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (CPDActivity) TableName() string { return "cpd_activities" }

func (a *CPDActivity) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(a.UUID) == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}

// CPDAttendance records a practitioner's attendance at an activity. Points
// awarded default to the activity's credit points but may be overridden for
// partial attendance.
type CPDAttendance struct {
	ID            snowflake.ID `json:"id,string" gorm:"primaryKey"`
	UUID          string       `json:"uuid" gorm:"type:char(36);uniqueIndex;not null"`
	ActivityUUID  string       `json:"activity_uuid" gorm:"type:char(36);index;not null"`
	LicenseNumber string       `json:"license_number" gorm:"type:varchar(255);index;not null"`
	PointsAwarded int          `json:"points_awarded" gorm:"not null;default:0"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (CPDAttendance) TableName() string { return "cpd_attendances" }

func (a *CPDAttendance) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(a.UUID) == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}
