package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/medcouncil/registry/internal/payment/domain"
)

func (s *Server) CreatePayment(c *gin.Context) {
	var req paymentdomain.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CompletePayment(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.paymentSvc.Complete(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordPaymentEvent(c.Request.Context(), string(resp.Status))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) FailPayment(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.paymentSvc.Fail(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordPaymentEvent(c.Request.Context(), string(resp.Status))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentByReference(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("id"))
	resp, err := s.paymentSvc.GetByReference(c.Request.Context(), reference)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentSummary(c *gin.Context) {
	invoiceUUID := strings.TrimSpace(c.Param("id"))
	resp, err := s.paymentSvc.SummaryByInvoice(c.Request.Context(), invoiceUUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidInvoice,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidMethod,
		paymentdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
