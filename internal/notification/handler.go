package notification

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"jobmarket/internal/auth"
	"jobmarket/internal/feed"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	broker  *feed.Broker
}

func NewHandler(service Service, broker *feed.Broker) *Handler {
	return &Handler{service: service, broker: broker}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, err := h.service.List(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkRead(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("notificationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	err = h.service.MarkRead(c.Request.Context(), id, accountID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
	}
}

func (h *Handler) UnreadCount(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// StreamNotifications pushes the account's notification feed events
// over a server-sent event stream until the client disconnects.
func (h *Handler) StreamNotifications(c *gin.Context) {
	accountID, exists := auth.GetAccountID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	sub := h.broker.Subscribe(feed.And(
		feed.FilterEntity(feed.EntityNotification),
		feed.FilterRecipient(accountID),
	))
	defer sub.Close()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("notification", event.Row)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
