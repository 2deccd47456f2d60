package reputation

import (
	"errors"
	"net/http"
	"strconv"

	"jobmarket/internal/account"
	"jobmarket/internal/auth"
	"jobmarket/internal/job"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SubmitReview(c *gin.Context) {
	clientID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.service.SubmitReview(c.Request.Context(), jobID, clientID, req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, review)
	case errors.Is(err, job.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, job.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the job's client can leave a review"})
	case errors.Is(err, job.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Job is not completed yet"})
	case errors.Is(err, ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "Job has already been reviewed"})
	case errors.Is(err, ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
	}
}

func (h *Handler) ListReviews(c *gin.Context) {
	specialistID, err := strconv.Atoi(c.Param("specialistID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specialist ID"})
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), specialistID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) GetSummary(c *gin.Context) {
	specialistID, err := strconv.Atoi(c.Param("specialistID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specialist ID"})
		return
	}

	summary, err := h.service.SummaryFor(c.Request.Context(), specialistID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, summary)
	case errors.Is(err, account.ErrAccountNotFound), errors.Is(err, account.ErrNotSpecialist):
		c.JSON(http.StatusNotFound, gin.H{"error": "Specialist not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reputation"})
	}
}
