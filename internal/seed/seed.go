package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medcouncil/registry/internal/authorization"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Setting is a key/value row read by operational tooling.
type Setting struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Setting) TableName() string { return "settings" }

// Permission names the grantable capabilities; they mirror the casbin
// policy objects and actions.
type Permission struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null;uniqueIndex"`
	Description string       `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Permission) TableName() string { return "permissions" }

// AdminUser is a staff credential for the admin surface.
type AdminUser struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string       `gorm:"column:password_hash;type:text;not null"`
	Role         string       `gorm:"type:text;not null;default:'role:admin'"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AdminUser) TableName() string { return "admin_users" }

var defaultSettings = map[string]string{
	"registry.name":     "Medical and Dental Council Registry",
	"registry.currency": "GHS",
	"registry.timezone": "Africa/Accra",
}

var defaultPermissions = []Permission{
	{Name: authorization.ObjectLicense + "." + authorization.ActionView, Description: "View licenses"},
	{Name: authorization.ObjectLicense + "." + authorization.ActionCreate, Description: "Create licenses"},
	{Name: authorization.ActionLicenseSetStatus, Description: "Suspend, revoke, or reinstate a license"},
	{Name: authorization.ObjectRenewal + "." + authorization.ActionCreate, Description: "Record license renewals"},
	{Name: authorization.ActionRenewalResync, Description: "Repair a license renewal snapshot"},
	{Name: authorization.ObjectExamination + "." + authorization.ActionCreate, Description: "Manage examinations"},
	{Name: authorization.ActionExaminationPublish, Description: "Publish examination results"},
	{Name: authorization.ActionHousemanshipAssign, Description: "Assign housemanship postings"},
	{Name: authorization.ActionCPDRecordAttendance, Description: "Record CPD attendance"},
	{Name: authorization.ActionInvoiceFinalize, Description: "Finalize invoices"},
	{Name: authorization.ActionInvoiceVoid, Description: "Void invoices"},
	{Name: authorization.ActionPaymentComplete, Description: "Complete payments"},
	{Name: authorization.ActionAPIKeyRotate, Description: "Rotate API keys"},
	{Name: authorization.ActionAPIKeyRevoke, Description: "Revoke API keys"},
}

// Ensure applies the idempotent seed data: settings, permissions, and the
// bootstrap admin when credentials are configured.
func Ensure(db *gorm.DB, adminEmail, adminPassword string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSettings(ctx, tx); err != nil {
			return err
		}
		if err := ensurePermissions(ctx, tx, node); err != nil {
			return err
		}
		return ensureBootstrapAdmin(ctx, tx, node, adminEmail, adminPassword)
	})
}

func ensureSettings(ctx context.Context, tx *gorm.DB) error {
	for key, value := range defaultSettings {
		var existing Setting
		err := tx.WithContext(ctx).Where("key = ?", key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		setting := Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
		if err := tx.WithContext(ctx).Create(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensurePermissions(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	for _, permission := range defaultPermissions {
		var existing Permission
		err := tx.WithContext(ctx).Where("name = ?", permission.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		permission.ID = node.Generate()
		permission.CreatedAt = time.Now().UTC()
		if err := tx.WithContext(ctx).Create(&permission).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureBootstrapAdmin(ctx context.Context, tx *gorm.DB, node *snowflake.Node, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var existing AdminUser
	err := tx.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := AdminUser{
		ID:           node.Generate(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         authorization.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&admin).Error
}
