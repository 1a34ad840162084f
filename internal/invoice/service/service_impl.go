package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medcouncil/registry/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.InvoiceResponse, error) {
	licenseNumber := strings.TrimSpace(req.LicenseNumber)
	if licenseNumber == "" {
		return domain.InvoiceResponse{}, domain.ErrInvalidLicenseNumber
	}
	for _, item := range req.LineItems {
		if err := validateLineItem(item); err != nil {
			return domain.InvoiceResponse{}, err
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "GHS"
	}

	now := time.Now().UTC()
	id := s.genID.Generate()
	invoice := domain.Invoice{
		ID:            id,
		InvoiceNumber: fmt.Sprintf("INV-%s", id.Base36()),
		LicenseNumber: licenseNumber,
		Currency:      currency,
		Status:        domain.InvoiceDraft,
		DueDate:       req.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var resp domain.InvoiceResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertInvoice(ctx, tx, &invoice); err != nil {
			return err
		}
		for _, input := range req.LineItems {
			item := s.buildLineItem(invoice.UUID, input, now)
			if err := s.repo.InsertLineItem(ctx, tx, &item); err != nil {
				return err
			}
		}
		return s.recomputeAmount(ctx, tx, invoice.UUID)
	})
	if err != nil {
		return domain.InvoiceResponse{}, err
	}

	resp, err = s.GetByUUID(ctx, invoice.UUID)
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return resp, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (domain.InvoiceResponse, error) {
	trimmed := strings.TrimSpace(uuid)
	invoice, err := s.repo.FindInvoiceByUUID(ctx, s.db, trimmed)
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	if invoice == nil {
		return domain.InvoiceResponse{}, domain.ErrNotFound
	}
	items, err := s.repo.ListLineItems(ctx, s.db, trimmed)
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return domain.InvoiceResponse{Invoice: *invoice, LineItems: items}, nil
}

func (s *Service) AddLineItem(ctx context.Context, invoiceUUID string, input domain.LineItemInput) (domain.InvoiceResponse, error) {
	if err := validateLineItem(input); err != nil {
		return domain.InvoiceResponse{}, err
	}
	trimmed := strings.TrimSpace(invoiceUUID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindInvoiceByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		item := s.buildLineItem(invoice.UUID, input, time.Now().UTC())
		if err := s.repo.InsertLineItem(ctx, tx, &item); err != nil {
			return err
		}
		return s.recomputeAmount(ctx, tx, invoice.UUID)
	})
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return s.GetByUUID(ctx, trimmed)
}

func (s *Service) UpdateLineItem(ctx context.Context, lineItemUUID string, req domain.UpdateLineItemRequest) (domain.InvoiceResponse, error) {
	trimmed := strings.TrimSpace(lineItemUUID)

	var invoiceUUID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindLineItemByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		if req.Description != nil {
			description := strings.TrimSpace(*req.Description)
			if description == "" {
				return domain.ErrInvalidLineItem
			}
			item.Description = description
		}
		if req.Quantity != nil {
			if *req.Quantity <= 0 {
				return domain.ErrInvalidLineItem
			}
			item.Quantity = *req.Quantity
		}
		if req.UnitAmount != nil {
			if *req.UnitAmount < 0 {
				return domain.ErrInvalidLineItem
			}
			item.UnitAmount = *req.UnitAmount
		}
		item.LineTotal = item.Quantity * item.UnitAmount
		item.UpdatedAt = time.Now().UTC()

		if err := s.repo.UpdateLineItem(ctx, tx, item); err != nil {
			return err
		}
		invoiceUUID = item.InvoiceUUID
		return s.recomputeAmount(ctx, tx, item.InvoiceUUID)
	})
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return s.GetByUUID(ctx, invoiceUUID)
}

func (s *Service) DeleteLineItem(ctx context.Context, lineItemUUID string) (domain.InvoiceResponse, error) {
	trimmed := strings.TrimSpace(lineItemUUID)

	var invoiceUUID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindLineItemByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.DeleteLineItem(ctx, tx, trimmed); err != nil {
			return err
		}
		invoiceUUID = item.InvoiceUUID
		return s.recomputeAmount(ctx, tx, item.InvoiceUUID)
	})
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return s.GetByUUID(ctx, invoiceUUID)
}

func (s *Service) Finalize(ctx context.Context, uuid string) (domain.InvoiceResponse, error) {
	return s.transition(ctx, uuid, domain.InvoiceDraft, domain.InvoicePending)
}

func (s *Service) Void(ctx context.Context, uuid string) (domain.InvoiceResponse, error) {
	trimmed := strings.TrimSpace(uuid)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindInvoiceByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status == domain.InvoicePaid {
			return domain.ErrInvalidStatus
		}
		return s.repo.SetInvoiceStatus(ctx, tx, trimmed, domain.InvoiceVoid)
	})
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return s.GetByUUID(ctx, trimmed)
}

func (s *Service) ListOutstanding(ctx context.Context) ([]domain.OutstandingInvoice, error) {
	return s.repo.ListOutstanding(ctx, s.db)
}

func (s *Service) transition(ctx context.Context, uuid string, from, to domain.InvoiceStatus) (domain.InvoiceResponse, error) {
	trimmed := strings.TrimSpace(uuid)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindInvoiceByUUID(ctx, tx, trimmed)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status != from {
			return domain.ErrInvalidStatus
		}
		return s.repo.SetInvoiceStatus(ctx, tx, trimmed, to)
	})
	if err != nil {
		return domain.InvoiceResponse{}, err
	}
	return s.GetByUUID(ctx, trimmed)
}

func (s *Service) buildLineItem(invoiceUUID string, input domain.LineItemInput, now time.Time) domain.InvoiceLineItem {
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return domain.InvoiceLineItem{
		ID:          s.genID.Generate(),
		InvoiceUUID: invoiceUUID,
		Description: strings.TrimSpace(input.Description),
		Quantity:    quantity,
		UnitAmount:  input.UnitAmount,
		LineTotal:   quantity * input.UnitAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// recomputeAmount re-derives the invoice amount from its line items so that
// insert, update, and delete all settle to the same value.
func (s *Service) recomputeAmount(ctx context.Context, tx *gorm.DB, invoiceUUID string) error {
	total, err := s.repo.SumLineTotals(ctx, tx, invoiceUUID)
	if err != nil {
		return err
	}
	return s.repo.SetInvoiceAmount(ctx, tx, invoiceUUID, total)
}

func validateLineItem(input domain.LineItemInput) error {
	if strings.TrimSpace(input.Description) == "" {
		return domain.ErrInvalidLineItem
	}
	if input.Quantity < 0 || input.UnitAmount < 0 {
		return domain.ErrInvalidLineItem
	}
	return nil
}
