package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateActivity(ctx context.Context, req CreateActivityRequest) (CPDActivity, error)
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (CPDAttendance, error)
	YearlySummary(ctx context.Context, licenseNumber string, year int) (YearlySummary, error)
}

type CreateActivityRequest struct {
	Title        string    `json:"title"`
	Provider     string    `json:"provider"`
	CreditPoints int       `json:"credit_points"`
	ActivityDate time.Time `json:"activity_date"`
}

type RecordAttendanceRequest struct {
	ActivityUUID  string `json:"activity_uuid"`
	LicenseNumber string `json:"license_number"`
	// PointsAwarded overrides the activity's credit points when set.
	PointsAwarded *int `json:"points_awarded"`
}

// YearlySummary reports a license holder's CPD points for a calendar year
// against the configured minimum.
type YearlySummary struct {
	LicenseNumber  string `json:"license_number"`
	Year           int    `json:"year"`
	TotalPoints    int    `json:"total_points"`
	RequiredPoints int    `json:"required_points"`
	Compliant      bool   `json:"compliant"`
}

var (
	ErrInvalidTitle         = errors.New("invalid_title")
	ErrInvalidPoints        = errors.New("invalid_points")
	ErrInvalidActivity      = errors.New("invalid_activity")
	ErrInvalidLicenseNumber = errors.New("invalid_license_number")
	ErrNotFound             = errors.New("not_found")
)
