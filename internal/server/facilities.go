package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	facilitydomain "github.com/medcouncil/registry/internal/facility/domain"
)

func (s *Server) CreateFacility(c *gin.Context) {
	var req facilitydomain.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.facilitySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateFacility(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))

	var req facilitydomain.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.facilitySvc.Update(c.Request.Context(), uuid, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetFacilityByUUID(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.facilitySvc.GetByUUID(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListFacilities(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
		Region    string `form:"region"`
		District  string `form:"district"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.facilitySvc.List(c.Request.Context(), facilitydomain.ListFacilityRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Region:    strings.TrimSpace(query.Region),
		District:  strings.TrimSpace(query.District),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isFacilityValidationError(err error) bool {
	switch err {
	case facilitydomain.ErrInvalidLicenseNumber,
		facilitydomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
