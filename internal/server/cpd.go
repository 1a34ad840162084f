package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	cpddomain "github.com/medcouncil/registry/internal/cpd/domain"
)

func (s *Server) CreateCPDActivity(c *gin.Context) {
	var req cpddomain.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.cpdSvc.CreateActivity(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RecordCPDAttendance(c *gin.Context) {
	var req cpddomain.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.cpdSvc.RecordAttendance(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCPDSummary(c *gin.Context) {
	licenseNumber := strings.TrimSpace(c.Param("id"))

	year, err := parseYear(c.Query("year"), time.Now().UTC().Year())
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	resp, err := s.cpdSvc.YearlySummary(c.Request.Context(), licenseNumber, year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCPDValidationError(err error) bool {
	switch err {
	case cpddomain.ErrInvalidTitle,
		cpddomain.ErrInvalidPoints,
		cpddomain.ErrInvalidActivity,
		cpddomain.ErrInvalidLicenseNumber:
		return true
	default:
		return false
	}
}
