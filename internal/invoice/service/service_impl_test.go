package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/invoice/domain"
	"github.com/medcouncil/registry/internal/invoice/repository"
	paymentdomain "github.com/medcouncil/registry/internal/payment/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&domain.Invoice{},
		&domain.InvoiceLineItem{},
		&paymentdomain.Payment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, gdb
}

func TestCreate_AmountIsSumOfLineTotals(t *testing.T) {
	svc, _ := setupService(t)

	// 10.00 + 25.50 in minor units.
	resp, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		LicenseNumber: "MDC-1001",
		LineItems: []domain.LineItemInput{
			{Description: "Annual renewal fee", Quantity: 1, UnitAmount: 1000},
			{Description: "Late penalty", Quantity: 1, UnitAmount: 2550},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3550), resp.Invoice.Amount)
	require.Equal(t, "GHS", resp.Invoice.Currency)
	require.Len(t, resp.LineItems, 2)
	require.NotEmpty(t, resp.Invoice.InvoiceNumber)
}

func TestCreate_NoLineItemsAmountZero(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		LicenseNumber: "MDC-1002",
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.Invoice.Amount)
}

func TestLineItemMutations_RecomputeAmount(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		LicenseNumber: "MDC-2001",
		LineItems: []domain.LineItemInput{
			{Description: "Registration", Quantity: 1, UnitAmount: 5000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(5000), resp.Invoice.Amount)

	resp, err = svc.AddLineItem(ctx, resp.Invoice.UUID, domain.LineItemInput{
		Description: "Certificate copies",
		Quantity:    3,
		UnitAmount:  200,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5600), resp.Invoice.Amount)

	var added domain.InvoiceLineItem
	for _, item := range resp.LineItems {
		if item.Description == "Certificate copies" {
			added = item
		}
	}
	require.NotEmpty(t, added.UUID)

	two := int64(2)
	resp, err = svc.UpdateLineItem(ctx, added.UUID, domain.UpdateLineItemRequest{Quantity: &two})
	require.NoError(t, err)
	require.Equal(t, int64(5400), resp.Invoice.Amount)

	resp, err = svc.DeleteLineItem(ctx, added.UUID)
	require.NoError(t, err)
	require.Equal(t, int64(5000), resp.Invoice.Amount)
}

func TestListOutstanding_ExcludesSettledAndDraft(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		LicenseNumber: "MDC-3001",
		LineItems:     []domain.LineItemInput{{Description: "Renewal", Quantity: 1, UnitAmount: 3500}},
	})
	require.NoError(t, err)

	pending, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		LicenseNumber: "MDC-3002",
		LineItems:     []domain.LineItemInput{{Description: "Renewal", Quantity: 1, UnitAmount: 3500}},
	})
	require.NoError(t, err)
	_, err = svc.Finalize(ctx, pending.Invoice.UUID)
	require.NoError(t, err)

	settled, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		LicenseNumber: "MDC-3003",
		LineItems:     []domain.LineItemInput{{Description: "Renewal", Quantity: 1, UnitAmount: 2000}},
	})
	require.NoError(t, err)
	_, err = svc.Finalize(ctx, settled.Invoice.UUID)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&paymentdomain.Payment{
		ID:          snowflake.ID(999001),
		InvoiceUUID: settled.Invoice.UUID,
		Reference:   "01TESTREF00000000000000001",
		Amount:      2000,
		Method:      paymentdomain.MethodMobileMoney,
		Status:      paymentdomain.PaymentCompleted,
	}).Error)

	outstanding, err := svc.ListOutstanding(ctx)
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	require.Equal(t, pending.Invoice.UUID, outstanding[0].UUID)
	require.Equal(t, int64(3500), outstanding[0].OutstandingAmount)

	_ = draft
}

func TestVoid_PaidInvoiceRejected(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		LicenseNumber: "MDC-4001",
		LineItems:     []domain.LineItemInput{{Description: "Renewal", Quantity: 1, UnitAmount: 1000}},
	})
	require.NoError(t, err)

	require.NoError(t, gdb.Model(&domain.Invoice{}).
		Where("uuid = ?", resp.Invoice.UUID).
		Update("status", domain.InvoicePaid).Error)

	_, err = svc.Void(ctx, resp.Invoice.UUID)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}
