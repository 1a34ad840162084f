package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostingStatus string

const (
	PostingOngoing    PostingStatus = "ongoing"
	PostingCompleted  PostingStatus = "completed"
	PostingTerminated PostingStatus = "terminated"
)

type HousemanshipPosting struct {
	ID           snowflake.ID  `json:"id,string" gorm:"primaryKey"`
	UUID         string        `json:"uuid" gorm:"type:char(36);uniqueIndex"`
	InternCode   string        `json:"intern_code" gorm:"type:varchar(255);index;not null"`
	FacilityUUID string        `json:"facility_uuid" gorm:"type:char(36);index;not null"`
	Discipline   string        `json:"discipline" gorm:"type:varchar(255);not null"`
	StartDate    time.Time     `json:"start_date" gorm:"not null"`
	EndDate      *time.Time    `json:"end_date"`
	Status       PostingStatus `json:"status" gorm:"type:varchar(50);default:'ongoing'"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (p *HousemanshipPosting) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}
