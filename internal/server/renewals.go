package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	renewaldomain "github.com/medcouncil/registry/internal/renewal/domain"
)

func (s *Server) CreateRenewal(c *gin.Context) {
	var req renewaldomain.CreateRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.renewalSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRenewal(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))

	var req renewaldomain.UpdateRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.renewalSvc.Update(c.Request.Context(), uuid, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRenewal(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	if err := s.renewalSvc.Delete(c.Request.Context(), uuid); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListRenewalsByLicense lists the renewal history for the license identified
// by its number.
func (s *Server) ListRenewalsByLicense(c *gin.Context) {
	number := strings.TrimSpace(c.Param("id"))
	lic, err := s.licenseSvc.GetByNumber(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.renewalSvc.ListByLicense(c.Request.Context(), lic.UUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ResyncRenewalSnapshot is the administrative repair path for the
// last_renewal_* columns on a license.
func (s *Server) ResyncRenewalSnapshot(c *gin.Context) {
	number := strings.TrimSpace(c.Param("id"))
	lic, err := s.licenseSvc.GetByNumber(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.renewalSvc.ResyncSnapshot(c.Request.Context(), lic.UUID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "resynced"})
}

func isRenewalValidationError(err error) bool {
	switch err {
	case renewaldomain.ErrInvalidLicense,
		renewaldomain.ErrInvalidDates,
		renewaldomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
