package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Twinen/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	postID, err := parsePostID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errPostNotFound.Error()))
		return
	}

	postDto := dto.GetPost{
		Post: *post,
	}

	if user != nil {
		postDto.IsLiked = h.services.Post.IsLiked(c.Request.Context(), post.Post.ID, user.ID)
	}

	c.JSON(http.StatusOK, postDto)
}

func (h *Handler) postsIsLiked(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	postID, err := parsePostID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	isLiked := h.services.Post.IsLiked(c.Request.Context(), postID, user.ID)

	c.JSON(http.StatusOK, gin.H{"isLiked": isLiked})
}

func (h *Handler) postsLike(c *gin.Context) {
	h.engage(c, func(postID int64, c *gin.Context) error {
		user := h.getCachedUserFromRequest(c)
		return h.services.Post.Like(c.Request.Context(), postID, user.ID, false)
	})
}

func (h *Handler) postsUnlike(c *gin.Context) {
	h.engage(c, func(postID int64, c *gin.Context) error {
		user := h.getCachedUserFromRequest(c)
		return h.services.Post.Like(c.Request.Context(), postID, user.ID, true)
	})
}

func (h *Handler) postsRepost(c *gin.Context) {
	h.engage(c, func(postID int64, c *gin.Context) error {
		user := h.getCachedUserFromRequest(c)
		return h.services.Post.Repost(c.Request.Context(), postID, user.ID)
	})
}

func (h *Handler) postsBookmark(c *gin.Context) {
	h.engage(c, func(postID int64, c *gin.Context) error {
		user := h.getCachedUserFromRequest(c)
		return h.services.Post.Bookmark(c.Request.Context(), postID, user.ID)
	})
}

func (h *Handler) engage(c *gin.Context, action func(postID int64, c *gin.Context) error) {
	postID, err := parsePostID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	if err := action(postID, c); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func parsePostID(c *gin.Context) (int64, error) {
	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.Atoi(postIDString)
	return int64(postID), err
}
