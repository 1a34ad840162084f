package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	practitionerdomain "github.com/medcouncil/registry/internal/practitioner/domain"
)

func (s *Server) CreatePractitioner(c *gin.Context) {
	var req practitionerdomain.CreatePractitionerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.practitionerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePractitioner(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))

	var req practitionerdomain.UpdatePractitionerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.practitionerSvc.Update(c.Request.Context(), uuid, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPractitionerByUUID(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.practitionerSvc.GetByUUID(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPractitioners(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
		Specialty string `form:"specialty"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.practitionerSvc.List(c.Request.Context(), practitionerdomain.ListPractitionerRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Specialty: strings.TrimSpace(query.Specialty),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPractitionerValidationError(err error) bool {
	switch err {
	case practitionerdomain.ErrInvalidLicenseNumber:
		return true
	default:
		return false
	}
}
