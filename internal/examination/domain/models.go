// Package domain contains persistence models for the examination register.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResultAbsent is excluded from the candidate's exam counter.
const ResultAbsent = "Absent"

// Exam is one sitting of a council examination.
type Exam struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UUID      string       `gorm:"type:char(36);uniqueIndex;not null"`
	Title     string       `gorm:"type:text;not null"`
	ExamDate  time.Time    `gorm:"column:exam_date;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Exam) TableName() string { return "exams" }

// BeforeCreate assigns the uuid surrogate key when the caller did not supply one.
func (e *Exam) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(e.UUID) == "" {
		e.UUID = uuid.NewString()
	}
	return nil
}

// ExamCandidate is a person sitting council exams, keyed by intern code.
// NumberOfExams is derived: the live count of this candidate's non-absent
// registrations.
type ExamCandidate struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	UUID          string       `gorm:"type:char(36);uniqueIndex;not null"`
	InternCode    string       `gorm:"column:intern_code;type:varchar(255);uniqueIndex;not null"`
	FirstName     *string      `gorm:"column:first_name;type:text"`
	MiddleName    *string      `gorm:"column:middle_name;type:text"`
	LastName      *string      `gorm:"column:last_name;type:text"`
	NumberOfExams int          `gorm:"column:number_of_exams;not null;default:0"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ExamCandidate) TableName() string { return "exam_candidates" }

// BeforeCreate assigns the uuid surrogate key when the caller did not supply one.
func (c *ExamCandidate) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(c.UUID) == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}

// ExamRegistration joins one candidate to one exam. Result stays empty until
// results are published.
type ExamRegistration struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	UUID       string       `gorm:"type:char(36);uniqueIndex;not null"`
	ExamID     snowflake.ID `gorm:"column:exam_id;not null;index"`
	InternCode string       `gorm:"column:intern_code;type:varchar(255);not null;index"`
	Result     string       `gorm:"type:text;not null;default:''"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ExamRegistration) TableName() string { return "exam_registrations" }

// BeforeCreate assigns the uuid surrogate key when the caller did not supply one.
func (r *ExamRegistration) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(r.UUID) == "" {
		r.UUID = uuid.NewString()
	}
	return nil
}
