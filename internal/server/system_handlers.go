package server

import (
	"net/http"
	"strconv"

	"jobmarket/internal/api"
	"jobmarket/internal/notification"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// TestPush queues a push job so operators can verify the dispatcher
// end to end.
func TestPush(push *notification.PushDispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if push == nil {
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "push dispatcher not configured"})
			return
		}

		accountID, err := strconv.Atoi(c.Query("account_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "account_id parameter required"})
			return
		}

		if err := push.Enqueue(c.Request.Context(), accountID, "test", "Push delivery is working"); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, api.MessageResponse{Message: "Push queued successfully"})
	}
}
