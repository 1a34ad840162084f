package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	invoicedomain "github.com/medcouncil/registry/internal/invoice/domain"
	invoicerepository "github.com/medcouncil/registry/internal/invoice/repository"
	invoiceservice "github.com/medcouncil/registry/internal/invoice/service"
	"github.com/medcouncil/registry/internal/payment/domain"
	"github.com/medcouncil/registry/internal/payment/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, invoicedomain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLineItem{},
		&domain.Payment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	invoiceRepo := invoicerepository.Provide()
	invoiceSvc := invoiceservice.New(invoiceservice.Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  invoiceRepo,
	})
	paymentSvc := New(Params{
		DB:          gdb,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		InvoiceRepo: invoiceRepo,
	})
	return paymentSvc, invoiceSvc, gdb
}

func seedPendingInvoice(t *testing.T, invoiceSvc invoicedomain.Service, amount int64) invoicedomain.Invoice {
	t.Helper()
	ctx := context.Background()
	resp, err := invoiceSvc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		LicenseNumber: "MDC-1001",
		LineItems: []invoicedomain.LineItemInput{
			{Description: "Annual renewal fee", Quantity: 1, UnitAmount: amount},
		},
	})
	require.NoError(t, err)
	resp, err = invoiceSvc.Finalize(ctx, resp.Invoice.UUID)
	require.NoError(t, err)
	return resp.Invoice
}

func invoiceStatus(t *testing.T, gdb *gorm.DB, uuid string) invoicedomain.InvoiceStatus {
	t.Helper()
	var invoice invoicedomain.Invoice
	require.NoError(t, gdb.Where("uuid = ?", uuid).First(&invoice).Error)
	return invoice.Status
}

func TestComplete_FlipsInvoiceToPaidAtThreshold(t *testing.T) {
	paymentSvc, invoiceSvc, gdb := setupService(t)
	ctx := context.Background()

	invoice := seedPendingInvoice(t, invoiceSvc, 5000)

	first, err := paymentSvc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceUUID: invoice.UUID,
		Amount:      3000,
		Method:      string(domain.MethodMobileMoney),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.Reference)

	_, err = paymentSvc.Complete(ctx, first.UUID)
	require.NoError(t, err)
	require.Equal(t, invoicedomain.InvoicePending, invoiceStatus(t, gdb, invoice.UUID))

	second, err := paymentSvc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceUUID: invoice.UUID,
		Amount:      2000,
		Method:      string(domain.MethodBankTransfer),
	})
	require.NoError(t, err)

	_, err = paymentSvc.Complete(ctx, second.UUID)
	require.NoError(t, err)
	require.Equal(t, invoicedomain.InvoicePaid, invoiceStatus(t, gdb, invoice.UUID))
}

func TestComplete_FailedPaymentsDoNotCount(t *testing.T) {
	paymentSvc, invoiceSvc, gdb := setupService(t)
	ctx := context.Background()

	invoice := seedPendingInvoice(t, invoiceSvc, 4000)

	failed, err := paymentSvc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceUUID: invoice.UUID,
		Amount:      4000,
		Method:      string(domain.MethodCard),
	})
	require.NoError(t, err)
	_, err = paymentSvc.Fail(ctx, failed.UUID)
	require.NoError(t, err)

	require.Equal(t, invoicedomain.InvoicePending, invoiceStatus(t, gdb, invoice.UUID))

	summary, err := paymentSvc.SummaryByInvoice(ctx, invoice.UUID)
	require.NoError(t, err)
	require.Equal(t, int64(0), summary.CompletedTotal)
	require.Equal(t, 1, summary.PaymentCount)
}

func TestCreate_VoidInvoiceRejected(t *testing.T) {
	paymentSvc, invoiceSvc, _ := setupService(t)
	ctx := context.Background()

	resp, err := invoiceSvc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		LicenseNumber: "MDC-2001",
		LineItems: []invoicedomain.LineItemInput{
			{Description: "Renewal", Quantity: 1, UnitAmount: 1000},
		},
	})
	require.NoError(t, err)
	_, err = invoiceSvc.Void(ctx, resp.Invoice.UUID)
	require.NoError(t, err)

	_, err = paymentSvc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceUUID: resp.Invoice.UUID,
		Amount:      1000,
		Method:      string(domain.MethodCash),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInvoice)
}

func TestComplete_AlreadyCompletedRejected(t *testing.T) {
	paymentSvc, invoiceSvc, _ := setupService(t)
	ctx := context.Background()

	invoice := seedPendingInvoice(t, invoiceSvc, 2500)

	payment, err := paymentSvc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceUUID: invoice.UUID,
		Amount:      2500,
		Method:      string(domain.MethodCash),
	})
	require.NoError(t, err)

	_, err = paymentSvc.Complete(ctx, payment.UUID)
	require.NoError(t, err)

	_, err = paymentSvc.Complete(ctx, payment.UUID)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}
