package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/medcouncil/registry/internal/invoice/domain"
	"github.com/medcouncil/registry/internal/payment/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validMethods = map[domain.PaymentMethod]struct{}{
	domain.MethodCash:         {},
	domain.MethodBankTransfer: {},
	domain.MethodMobileMoney:  {},
	domain.MethodCard:         {},
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	InvoiceRepo invoicedomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	invoiceRepo invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		invoiceRepo: p.InvoiceRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	if req.Amount <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	method := domain.PaymentMethod(strings.TrimSpace(req.Method))
	if _, ok := validMethods[method]; !ok {
		return domain.Payment{}, domain.ErrInvalidMethod
	}

	invoice, err := s.invoiceRepo.FindInvoiceByUUID(ctx, s.db, strings.TrimSpace(req.InvoiceUUID))
	if err != nil {
		return domain.Payment{}, err
	}
	if invoice == nil || invoice.Status == invoicedomain.InvoiceVoid {
		return domain.Payment{}, domain.ErrInvalidInvoice
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:          s.genID.Generate(),
		InvoiceUUID: invoice.UUID,
		Reference:   ulid.Make().String(),
		Amount:      req.Amount,
		Method:      method,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

func (s *Service) Complete(ctx context.Context, uuid string) (domain.Payment, error) {
	return s.transition(ctx, uuid, domain.PaymentCompleted)
}

func (s *Service) Fail(ctx context.Context, uuid string) (domain.Payment, error) {
	return s.transition(ctx, uuid, domain.PaymentFailed)
}

func (s *Service) transition(ctx context.Context, uuid string, to domain.PaymentStatus) (domain.Payment, error) {
	trimmed := strings.TrimSpace(uuid)
	if trimmed == "" {
		return domain.Payment{}, domain.ErrNotFound
	}

	var updated domain.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.repo.FindByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
		if payment.Status != domain.PaymentPending {
			return domain.ErrInvalidStatus
		}

		if err := s.repo.SetStatus(ctx, tx, trimmed, to); err != nil {
			return err
		}

		if to == domain.PaymentCompleted {
			if err := s.settleInvoice(ctx, tx, payment.InvoiceUUID); err != nil {
				return err
			}
		}

		payment.Status = to
		updated = *payment
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return updated, nil
}

// settleInvoice re-derives the invoice status from the completed-payment
// total inside the completing transaction.
func (s *Service) settleInvoice(ctx context.Context, tx *gorm.DB, invoiceUUID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByUUID(ctx, tx, invoiceUUID)
	if err != nil {
		return err
	}
	if invoice == nil || invoice.Status == invoicedomain.InvoiceVoid {
		return nil
	}

	completed, err := s.repo.SumCompleted(ctx, tx, invoiceUUID)
	if err != nil {
		return err
	}

	status := invoicedomain.InvoicePending
	if completed >= invoice.Amount {
		status = invoicedomain.InvoicePaid
	}
	if invoice.Status == status {
		return nil
	}
	return s.invoiceRepo.SetInvoiceStatus(ctx, tx, invoiceUUID, status)
}

func (s *Service) GetByReference(ctx context.Context, reference string) (domain.Payment, error) {
	payment, err := s.repo.FindByReference(ctx, s.db, strings.TrimSpace(reference))
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *payment, nil
}

func (s *Service) SummaryByInvoice(ctx context.Context, invoiceUUID string) (domain.PaymentSummary, error) {
	summary, err := s.repo.Summary(ctx, s.db, strings.TrimSpace(invoiceUUID))
	if err != nil {
		return domain.PaymentSummary{}, err
	}
	if summary == nil {
		return domain.PaymentSummary{}, domain.ErrInvalidInvoice
	}
	return *summary, nil
}
