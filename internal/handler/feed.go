package handler

import (
	"net/http"
	"strconv"

	"github.com/Twinen/feed-service/internal/dto"
	"github.com/Twinen/feed-service/internal/feed"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) feedGet(c *gin.Context) {
	h.serveFeed(c, c.DefaultQuery("type", "all"))
}

func (h *Handler) feedTrending(c *gin.Context) {
	h.serveFeed(c, string(feed.ModeTrending))
}

func (h *Handler) serveFeed(c *gin.Context, feedType string) {
	user := h.getCachedUserFromRequest(c)

	page, err := parseQueryInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errPageAndLimitMustBeInt.Error()))
		return
	}
	limit, err := parseQueryInt(c, "limit", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errPageAndLimitMustBeInt.Error()))
		return
	}

	timeRange := c.DefaultQuery("timeRange", "all")

	// "all" asks for the unscoped reverse-chronological feed.
	var mode feed.Mode
	if feedType == "all" {
		mode = feed.ModeLatest
	} else {
		mode = feed.ParseMode(feedType)
	}

	var viewerID *uuid.UUID
	if user != nil {
		viewerID = &user.ID
	}

	resp, err := h.services.Feed.GetFeed(c.Request.Context(), viewerID, mode, timeRange, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parseQueryInt(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
