package job

import (
	"errors"
	"net/http"
	"strconv"

	"jobmarket/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateJob(c *gin.Context) {
	clientID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	j, err := h.service.Create(c.Request.Context(), clientID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job details"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, j)
}

func (h *Handler) GetJob(c *gin.Context) {
	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	j, err := h.service.GetByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		return
	}

	accountID, _ := auth.GetAccountID(c)
	role, _ := auth.GetRole(c)
	if !isParticipant(j, accountID) && role != auth.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this job"})
		return
	}

	c.JSON(http.StatusOK, j)
}

func (h *Handler) ListMyJobs(c *gin.Context) {
	clientID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobs, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) ListMySchedule(c *gin.Context) {
	specialistID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobs, err := h.service.ListBySpecialist(c.Request.Context(), specialistID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) CompleteJob(c *gin.Context) {
	actorID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	j, err := h.service.Complete(c.Request.Context(), jobID, actorID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, j)
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Job is not in progress"})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the assigned specialist can complete this job"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete job"})
	}
}

func isParticipant(j *Job, accountID int) bool {
	if j.ClientID == accountID {
		return true
	}
	return j.SpecialistID != nil && *j.SpecialistID == accountID
}
