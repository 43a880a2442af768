package handler

import (
	"github.com/Twinen/feed-service/internal/model"
	"github.com/Twinen/feed-service/internal/ratelimit"
	"github.com/Twinen/feed-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
	limiter  *ratelimit.Limiter
}

func New(services *service.Service, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		services: services,
		limiter:  limiter,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "DELETE"},
		AllowCredentials: true,
	}))

	r.GET("/health", h.health)

	v1 := r.Group("/api/v1")
	{
		feed := v1.Group("/feed")
		{
			feed.GET("", h.notRequiredAuthMiddleware, h.rateLimitMiddleware(ACTION_FEED), h.feedGet)
			feed.GET("/trending", h.notRequiredAuthMiddleware, h.rateLimitMiddleware(ACTION_FEED), h.feedTrending)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", h.authMiddleware, h.rateLimitMiddleware(ACTION_CREATE_POST), h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.POST("/like", h.authMiddleware, h.rateLimitMiddleware(ACTION_ENGAGEMENT), h.postsLike)
				post.DELETE("/unlike", h.authMiddleware, h.rateLimitMiddleware(ACTION_ENGAGEMENT), h.postsUnlike)
				post.POST("/repost", h.authMiddleware, h.rateLimitMiddleware(ACTION_ENGAGEMENT), h.postsRepost)
				post.POST("/bookmark", h.authMiddleware, h.rateLimitMiddleware(ACTION_ENGAGEMENT), h.postsBookmark)
				post.GET("/isLiked", h.authMiddleware, h.postsIsLiked)
			}
		}
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func (h *Handler) getCachedUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, _ := c.Get("cached-user")

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}
