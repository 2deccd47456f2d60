package wallet

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

func (h *Handler) GetBalance(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_id": accountID, "balance": balance})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.service.ListTransactions(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

func (h *Handler) TopUp(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not authenticated"})
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive and method is required"})
		return
	}

	settlement, err := h.service.TopUp(c.Request.Context(), accountID, req.Amount, req.Method)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create top-up"})
		return
	}

	c.JSON(http.StatusCreated, settlement)
}

// SettleTopUp is the confirmation callback for an out-of-band payment.
// Replayed confirmations are accepted and credit nothing.
func (h *Handler) SettleTopUp(c *gin.Context) {
	settlementID := c.Param("settlementID")

	settlement, err := h.service.SettleTopUp(c.Request.Context(), settlementID)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
			return
		}
		if errors.Is(err, ErrConflictRetryable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Temporary conflict, please retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle top-up"})
		return
	}

	c.JSON(http.StatusOK, settlement)
}

// GetAccountTransactions is the admin view of any account's ledger.
func (h *Handler) GetAccountTransactions(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("accountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.service.ListTransactions(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}
