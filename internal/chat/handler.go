package chat

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"jobmarket/internal/auth"
	"jobmarket/internal/feed"
	"jobmarket/internal/job"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	broker  *feed.Broker
}

func NewHandler(service Service, broker *feed.Broker) *Handler {
	return &Handler{service: service, broker: broker}
}

func (h *Handler) SendMessage(c *gin.Context) {
	senderID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.Send(c.Request.Context(), jobID, senderID, req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, m)
	case errors.Is(err, job.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, job.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Chat opens once a specialist is assigned"})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this job"})
	case errors.Is(err, job.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
	}
}

func (h *Handler) ListMessages(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	messages, err := h.service.ListForJob(c.Request.Context(), jobID, accountID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, messages)
	case errors.Is(err, job.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this job"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
	}
}

// StreamMessages pushes the job's message feed over a server-sent
// event stream. Participant access is checked up front with the same
// read the list endpoint uses.
func (h *Handler) StreamMessages(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	if _, err := h.service.ListForJob(c.Request.Context(), jobID, accountID); err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this job"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open stream"})
		}
		return
	}

	sub := h.broker.Subscribe(feed.And(
		feed.FilterEntity(feed.EntityMessage),
		feed.FilterJob(jobID),
	))
	defer sub.Close()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("message", event.Row)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
