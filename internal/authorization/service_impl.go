package authorization

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectLicense      = "license"
	ObjectPractitioner = "practitioner"
	ObjectFacility     = "facility"
	ObjectRenewal      = "renewal"
	ObjectExamination  = "examination"
	ObjectHousemanship = "housemanship"
	ObjectCPD          = "cpd"
	ObjectInvoice      = "invoice"
	ObjectPayment      = "payment"
	ObjectAPIKey       = "api_key"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	ActionLicenseSetStatus    = "license.set_status"
	ActionRenewalResync       = "renewal.resync"
	ActionInvoiceFinalize     = "invoice.finalize"
	ActionInvoiceVoid         = "invoice.void"
	ActionPaymentComplete     = "payment.complete"
	ActionAPIKeyRotate        = "api_key.rotate"
	ActionAPIKeyRevoke        = "api_key.revoke"
	ActionExaminationPublish  = "examination.publish"
	ActionHousemanshipAssign  = "housemanship.assign"
	ActionCPDRecordAttendance = "cpd.record_attendance"
)

const (
	RoleAdmin     = "role:admin"
	RoleRegistrar = "role:registrar"
	RoleFinance   = "role:finance"
	RoleViewer    = "role:viewer"
	RoleSystem    = "role:system"
)

type Service interface {
	Authorize(ctx context.Context, subject, object, action string) error
	AssignRole(ctx context.Context, subject, role string) error
}

var (
	ErrInvalidSubject = errors.New("invalid_subject")
	ErrInvalidObject  = errors.New("invalid_object")
	ErrInvalidAction  = errors.New("invalid_action")
	ErrInvalidRole    = errors.New("invalid_role")
	ErrForbidden      = errors.New("forbidden")
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, subject, object, action string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ErrInvalidSubject
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) AssignRole(ctx context.Context, subject, role string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ErrInvalidSubject
	}
	switch role {
	case RoleAdmin, RoleRegistrar, RoleFinance, RoleViewer, RoleSystem:
	default:
		return ErrInvalidRole
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, role)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, role)
	return err
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	viewObjects := []string{
		ObjectLicense, ObjectPractitioner, ObjectFacility, ObjectRenewal,
		ObjectExamination, ObjectHousemanship, ObjectCPD, ObjectInvoice,
		ObjectPayment,
	}

	policies := [][]string{}

	for _, object := range viewObjects {
		policies = append(policies, []string{RoleViewer, object, ActionView})
	}

	// Registrar owns the register itself.
	for _, object := range []string{ObjectLicense, ObjectPractitioner, ObjectFacility, ObjectRenewal, ObjectExamination, ObjectHousemanship, ObjectCPD} {
		policies = append(policies,
			[]string{RoleRegistrar, object, ActionView},
			[]string{RoleRegistrar, object, ActionCreate},
			[]string{RoleRegistrar, object, ActionUpdate},
			[]string{RoleRegistrar, object, ActionDelete},
		)
	}
	policies = append(policies,
		[]string{RoleRegistrar, ObjectLicense, ActionLicenseSetStatus},
		[]string{RoleRegistrar, ObjectRenewal, ActionRenewalResync},
		[]string{RoleRegistrar, ObjectExamination, ActionExaminationPublish},
		[]string{RoleRegistrar, ObjectHousemanship, ActionHousemanshipAssign},
		[]string{RoleRegistrar, ObjectCPD, ActionCPDRecordAttendance},
	)

	// Finance owns invoicing and receipts.
	for _, object := range []string{ObjectInvoice, ObjectPayment} {
		policies = append(policies,
			[]string{RoleFinance, object, ActionView},
			[]string{RoleFinance, object, ActionCreate},
			[]string{RoleFinance, object, ActionUpdate},
		)
	}
	policies = append(policies,
		[]string{RoleFinance, ObjectInvoice, ActionInvoiceFinalize},
		[]string{RoleFinance, ObjectInvoice, ActionInvoiceVoid},
		[]string{RoleFinance, ObjectPayment, ActionPaymentComplete},
	)

	// Admin gets everything the other roles have plus key management.
	policies = append(policies,
		[]string{RoleAdmin, ObjectAPIKey, ActionView},
		[]string{RoleAdmin, ObjectAPIKey, ActionCreate},
		[]string{RoleAdmin, ObjectAPIKey, ActionAPIKeyRotate},
		[]string{RoleAdmin, ObjectAPIKey, ActionAPIKeyRevoke},
	)

	// System role backs scheduler jobs and API keys.
	policies = append(policies,
		[]string{RoleSystem, ObjectLicense, ActionLicenseSetStatus},
		[]string{RoleSystem, ObjectInvoice, ActionInvoiceFinalize},
		[]string{RoleSystem, ObjectPayment, ActionPaymentComplete},
	)

	for _, policy := range policies {
		has, err := enforcer.HasPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}

	groupings := [][]string{
		{RoleAdmin, RoleRegistrar},
		{RoleAdmin, RoleFinance},
		{RoleRegistrar, RoleViewer},
		{RoleFinance, RoleViewer},
	}
	for _, grouping := range groupings {
		has, err := enforcer.HasGroupingPolicy(grouping[0], grouping[1])
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddGroupingPolicy(grouping[0], grouping[1]); err != nil {
			return err
		}
	}

	return nil
}
