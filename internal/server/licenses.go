package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/internal/providers/pdf"
)

const certificateDateLayout = "2 January 2006"

type createLicenseRequest struct {
	LicenseNumber string `json:"license_number"`
	Type          string `json:"type"`
}

type setLicenseStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) CreateLicense(c *gin.Context) {
	var req createLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.licenseSvc.Create(c.Request.Context(), licensedomain.CreateLicenseRequest{
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Type:          strings.TrimSpace(req.Type),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLicenses(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
		Type      string `form:"type"`
		Status    string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.licenseSvc.List(c.Request.Context(), licensedomain.ListLicenseRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Type:      strings.TrimSpace(query.Type),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLicenseByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("id"))
	resp, err := s.licenseSvc.GetByNumber(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetLicenseStatus(c *gin.Context) {
	number := strings.TrimSpace(c.Param("id"))

	var req setLicenseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	lic, err := s.licenseSvc.GetByNumber(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.licenseSvc.SetStatus(c.Request.Context(), lic.UUID, licensedomain.LicenseStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DownloadLicenseCertificate renders the current registration certificate for
// an active license.
func (s *Server) DownloadLicenseCertificate(c *gin.Context) {
	number := strings.TrimSpace(c.Param("id"))
	lic, err := s.licenseSvc.GetByNumber(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.CertificateData{
		CouncilName:   s.councilName,
		HolderName:    lic.Name,
		LicenseNumber: lic.LicenseNumber,
		LicenseType:   string(lic.Type),
		Status:        string(lic.Status),
		ValidFrom:     formatCertificateDate(lic.LastRenewalStart),
		ValidTo:       formatCertificateDate(lic.LastRenewalExpiry),
		IssuedOn:      time.Now().UTC().Format(certificateDateLayout),
	}

	reader, err := s.pdfProvider.GenerateCertificate(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="certificate-`+lic.LicenseNumber+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func formatCertificateDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(certificateDateLayout)
}

func isLicenseValidationError(err error) bool {
	switch err {
	case licensedomain.ErrInvalidLicenseNumber,
		licensedomain.ErrInvalidLicenseType,
		licensedomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
