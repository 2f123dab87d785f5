package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-service/internal/repository"
	"progress-service/internal/service"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

type provisionRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// Provision creates the progress document for a freshly authenticated
// identity. Called once from the account-creation flow.
func (h *UserHandler) Provision(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")

	var req provisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Service.Provision(context.Background(), userID, req.Email, req.Name)
	if errors.Is(err, repository.ErrProfileExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "User profile already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.Service.Get(context.Background(), c.GetHeader("X-User-ID"))
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetHistory(c *gin.Context) {
	history, err := h.Service.History(context.Background(), c.GetHeader("X-User-ID"))
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetQuestionStatus answers "did I try this already, and how did it go" for
// one question.
func (h *UserHandler) GetQuestionStatus(c *gin.Context) {
	status, err := h.Service.QuestionStatus(context.Background(), c.GetHeader("X-User-ID"), c.Param("id"))
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	err := h.Service.AddFavorite(context.Background(), c.GetHeader("X-User-ID"), c.Param("id"))
	h.favoriteResponse(c, err)
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	err := h.Service.RemoveFavorite(context.Background(), c.GetHeader("X-User-ID"), c.Param("id"))
	h.favoriteResponse(c, err)
}

func (h *UserHandler) favoriteResponse(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}
