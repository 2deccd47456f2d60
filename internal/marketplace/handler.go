package marketplace

import (
	"errors"
	"net/http"
	"strconv"

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

// BrowseJobs lists open jobs, optionally narrowed by ?category=.
func (h *Handler) BrowseJobs(c *gin.Context) {
	jobs, err := h.service.ListOpenJobs(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch open jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) AcceptJob(c *gin.Context) {
	specialistID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	j, err := h.service.AcceptJob(c.Request.Context(), jobID, specialistID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, j)
	case errors.Is(err, job.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, job.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Job is no longer available"})
	case errors.Is(err, job.ErrIneligibleActor):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Top up your wallet to accept jobs"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept job"})
	}
}
