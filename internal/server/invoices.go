package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/medcouncil/registry/internal/invoice/domain"
	"github.com/medcouncil/registry/internal/providers/pdf"
)

type createInvoiceRequest struct {
	LicenseNumber string                        `json:"license_number"`
	Currency      string                        `json:"currency"`
	DueDate       *time.Time                    `json:"due_date"`
	LineItems     []invoicedomain.LineItemInput `json:"line_items"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Currency:      strings.TrimSpace(req.Currency),
		DueDate:       req.DueDate,
		LineItems:     req.LineItems,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByUUID(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.GetByUUID(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddInvoiceLineItem(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))

	var req invoicedomain.LineItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.AddLineItem(c.Request.Context(), uuid, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoiceLineItem(c *gin.Context) {
	lineItemUUID := strings.TrimSpace(c.Param("id"))

	var req invoicedomain.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.UpdateLineItem(c.Request.Context(), lineItemUUID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoiceLineItem(c *gin.Context) {
	lineItemUUID := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.DeleteLineItem(c.Request.Context(), lineItemUUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) FinalizeInvoice(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.Finalize(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) VoidInvoice(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.Void(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOutstandingInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.ListOutstanding(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DownloadInvoicePDF renders the invoice with its line items and the
// completed-payment total to date.
func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.GetByUUID(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.paymentSvc.SummaryByInvoice(c.Request.Context(), resp.Invoice.UUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	inv := resp.Invoice
	items := make([]pdf.InvoiceItem, 0, len(resp.LineItems))
	for _, item := range resp.LineItems {
		items = append(items, pdf.InvoiceItem{
			Description: item.Description,
			Qty:         item.Quantity,
			UnitPrice:   formatMinorUnits(item.UnitAmount, inv.Currency),
			Amount:      formatMinorUnits(item.LineTotal, inv.Currency),
		})
	}

	data := pdf.InvoiceData{
		CouncilName:   s.councilName,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.CreatedAt.Format(certificateDateLayout),
		DueDate:       formatCertificateDate(inv.DueDate),
		BillToName:    inv.LicenseNumber,
		LicenseNumber: inv.LicenseNumber,
		Items:         items,
		Total:         formatMinorUnits(inv.Amount, inv.Currency),
		AmountPaid:    formatMinorUnits(summary.CompletedTotal, inv.Currency),
		AmountDue:     formatMinorUnits(inv.Amount-summary.CompletedTotal, inv.Currency),
	}

	reader, err := s.pdfProvider.GenerateInvoice(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+inv.InvoiceNumber+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

// formatMinorUnits renders an int64 minor-unit amount as a display string.
func formatMinorUnits(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, amount/100, amount%100)
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidLicenseNumber,
		invoicedomain.ErrInvalidLineItem,
		invoicedomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
