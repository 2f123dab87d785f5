package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-service/internal/repository"
	"progress-service/internal/service"
)

type DailyHandler struct {
	Service *service.DailyService
}

func NewDailyHandler(s *service.DailyService) *DailyHandler {
	return &DailyHandler{Service: s}
}

// GetToday returns the caller's question of the day, assigning one when
// needed.
func (h *DailyHandler) GetToday(c *gin.Context) {
	today, err := h.Service.Today(context.Background(), c.GetHeader("X-User-ID"))
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}
	if errors.Is(err, repository.ErrQuestionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No questions available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, today)
}
