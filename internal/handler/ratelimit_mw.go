package handler

import (
	"net/http"

	"github.com/Twinen/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

const (
	ACTION_FEED        = "feed"
	ACTION_CREATE_POST = "create_post"
	ACTION_ENGAGEMENT  = "engagement"
)

// rateLimitMiddleware throttles by action and client identity before any
// service work happens.
func (h *Handler) rateLimitMiddleware(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := c.ClientIP() + "|" + c.Request.UserAgent()

		if !h.limiter.Allow(action, clientKey) {
			c.JSON(http.StatusTooManyRequests, dto.NewBasicResponse(false, errTooManyRequests.Error()))
			c.Abort()
			return
		}

		c.Next()
	}
}
