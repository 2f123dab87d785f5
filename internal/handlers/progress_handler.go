package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-service/internal/models"
	"progress-service/internal/repository"
	"progress-service/internal/scoring"
	"progress-service/internal/service"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

type submitAnswerRequest struct {
	QuestionID    string `json:"questionId" binding:"required"`
	SelectedIndex *int   `json:"selectedIndex" binding:"required"`
	Type          string `json:"type"`
}

func (h *ProgressHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activityType := models.ActivityPractice
	switch models.ActivityType(req.Type) {
	case models.ActivityDaily:
		activityType = models.ActivityDaily
	case models.ActivityInterview:
		activityType = models.ActivityInterview
	}

	result, err := h.Service.SubmitAnswer(context.Background(), userID, req.QuestionID, *req.SelectedIndex, activityType)
	switch {
	case errors.Is(err, scoring.ErrInvalidAnswerIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
	case errors.Is(err, repository.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, result)
	}
}
