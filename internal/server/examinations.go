package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	examinationdomain "github.com/medcouncil/registry/internal/examination/domain"
)

func (s *Server) CreateExam(c *gin.Context) {
	var req examinationdomain.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.examinationSvc.CreateExam(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateExamCandidate(c *gin.Context) {
	var req examinationdomain.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.examinationSvc.CreateCandidate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateExamCandidate(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))

	var req examinationdomain.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.examinationSvc.UpdateCandidate(c.Request.Context(), uuid, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetExamCandidate(c *gin.Context) {
	internCode := strings.TrimSpace(c.Param("id"))
	resp, err := s.examinationSvc.GetCandidateByInternCode(c.Request.Context(), internCode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RegisterForExam(c *gin.Context) {
	var req examinationdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.examinationSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateExamRegistration(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))

	var req examinationdomain.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.examinationSvc.UpdateRegistration(c.Request.Context(), uuid, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteExamRegistration(c *gin.Context) {
	uuid := strings.TrimSpace(c.Param("id"))
	if err := s.examinationSvc.DeleteRegistration(c.Request.Context(), uuid); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ListExamRegistrations(c *gin.Context) {
	internCode := strings.TrimSpace(c.Param("id"))
	resp, err := s.examinationSvc.ListRegistrations(c.Request.Context(), internCode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isExaminationValidationError(err error) bool {
	switch err {
	case examinationdomain.ErrInvalidTitle,
		examinationdomain.ErrInvalidInternCode,
		examinationdomain.ErrInvalidExam,
		examinationdomain.ErrInvalidResult:
		return true
	default:
		return false
	}
}
