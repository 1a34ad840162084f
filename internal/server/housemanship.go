package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	housemanshipdomain "github.com/medcouncil/registry/internal/housemanship/domain"
)

func (s *Server) CreatePosting(c *gin.Context) {
	var req housemanshipdomain.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.housemanshipSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePosting(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))

	var req housemanshipdomain.UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.housemanshipSvc.Update(c.Request.Context(), uuid, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPostingByUUID(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	resp, err := s.housemanshipSvc.GetByUUID(c.Request.Context(), uuid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPostingsByFacility(c *gin.Context) {
	facilityUUID := strings.TrimSpace(c.Param("id"))
	resp, err := s.housemanshipSvc.ListByFacility(c.Request.Context(), facilityUUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPostingsByInternCode(c *gin.Context) {
	internCode := strings.TrimSpace(c.Param("id"))
	resp, err := s.housemanshipSvc.ListByInternCode(c.Request.Context(), internCode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isHousemanshipValidationError(err error) bool {
	switch err {
	case housemanshipdomain.ErrInvalidInternCode,
		housemanshipdomain.ErrInvalidFacility,
		housemanshipdomain.ErrInvalidDiscipline,
		housemanshipdomain.ErrInvalidStatus,
		housemanshipdomain.ErrInvalidDates:
		return true
	default:
		return false
	}
}
